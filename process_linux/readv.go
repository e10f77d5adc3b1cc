//go:build linux

package process_linux

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/vitormarinhofaria/proc-memory/process"
)

// readProcessMemory transfers size bytes from addr in the target process
// into a freshly allocated local buffer using process_vm_readv. A partial
// transfer is reported as a failure, never as a truncated buffer.
func readProcessMemory(pid process.PID, addr process.Address, size process.Size) ([]byte, error) {
	buf := make([]byte, size)

	localIov := []unix.Iovec{{
		Base: &buf[0],
		Len:  uint64(size),
	}}
	remoteIov := []unix.RemoteIovec{{
		Base: uintptr(addr),
		Len:  int(size),
	}}

	n, err := unix.ProcessVMReadv(int(pid), localIov, remoteIov, 0)
	if err != nil {
		// EFAULT: unmapped, EPERM: denied, ESRCH: target gone. The caller
		// treats them all the same way.
		return nil, fmt.Errorf("%w: process_vm_readv at %v: %v", process.ErrReadFailed, addr, err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("%w: short read at %v: %d of %v", process.ErrReadFailed, addr, n, size)
	}

	return buf, nil
}

// ReadMemory reads size bytes at addr in the target process. The address is
// not checked against the memory map; the syscall outcome is authoritative.
func (p *LinuxProcess) ReadMemory(addr process.Address, size process.Size) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	pid := p.pid
	p.mu.Unlock()

	if pid == 0 {
		return nil, fmt.Errorf("%w: %w", process.ErrReadFailed, process.ErrProcessNotOpen)
	}

	// The syscall runs outside the lock so independent reads proceed in
	// parallel.
	return readProcessMemory(pid, addr, size)
}
