//go:build windows

// Package process_windows implements process resolution and memory reads on
// Windows, using the toolhelp snapshot API for enumeration and
// ReadProcessMemory for transfers.
package process_windows

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/vitormarinhofaria/proc-memory/process"
	"github.com/vitormarinhofaria/proc-memory/process/memory_map"
)

var (
	modkernel32           = syscall.NewLazyDLL("kernel32.dll")
	procOpenProcess       = modkernel32.NewProc("OpenProcess")
	procReadProcessMemory = modkernel32.NewProc("ReadProcessMemory")
	procCloseHandle       = modkernel32.NewProc("CloseHandle")
	procVirtualQueryEx    = modkernel32.NewProc("VirtualQueryEx")
)

const (
	PROCESS_VM_READ           = 0x0010
	PROCESS_QUERY_INFORMATION = 0x0400
)

// WindowsProcess implements the process.Process interface for Windows
// systems. The handle is opened with read access only; this package never
// writes to the target.
type WindowsProcess struct {
	pid    process.PID
	handle syscall.Handle
	log    *logger.Logger
	mm     []memory_map.Region
	mu     sync.Mutex
}

// New creates a new, unopened WindowsProcess instance.
func New() process.Process {
	return &WindowsProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPID creates a new WindowsProcess instance and opens it with the given PID.
func NewWithPID(pid process.PID) (process.Process, error) {
	p := &WindowsProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *WindowsProcess) Open(pid process.PID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	handle, _, err := procOpenProcess.Call(
		uintptr(PROCESS_VM_READ|PROCESS_QUERY_INFORMATION),
		0,
		uintptr(pid),
	)
	if handle == 0 {
		return fmt.Errorf("%w: OpenProcess(%d): %v", process.ErrProcessNotFound, pid, err)
	}

	p.pid = pid
	p.handle = syscall.Handle(handle)
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))

	// The region list is advisory; reads work without it.
	if err := p.updateMemoryMapLocked(); err != nil {
		p.log.Warn("Failed to read memory map: ", err)
	}

	p.log.Infoln("Process opened")
	return nil
}

// Close releases the process handle. The handle is released exactly once;
// further Close calls are no-ops.
func (p *WindowsProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle != 0 {
		ret, _, err := procCloseHandle.Call(uintptr(p.handle))
		if ret == 0 {
			return fmt.Errorf("CloseHandle: %v", err)
		}
		p.handle = 0
	}

	p.pid = 0
	p.mm = nil
	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))

	return nil
}

func (p *WindowsProcess) PID() process.PID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

// ReadMemory reads size bytes at addr in the target process. The address is
// not checked against the memory map; the syscall outcome is authoritative.
// A partial transfer is reported as a failure, never as a truncated buffer.
func (p *WindowsProcess) ReadMemory(addr process.Address, size process.Size) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}

	p.mu.Lock()
	handle := p.handle
	p.mu.Unlock()

	if handle == 0 {
		return nil, fmt.Errorf("%w: %w", process.ErrReadFailed, process.ErrProcessNotOpen)
	}

	// The syscall runs outside the lock so independent reads proceed in
	// parallel.
	buf := make([]byte, size)
	var bytesRead uintptr
	ret, _, err := procReadProcessMemory.Call(
		uintptr(handle),
		uintptr(addr),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(size),
		uintptr(unsafe.Pointer(&bytesRead)),
	)
	if ret == 0 {
		return nil, fmt.Errorf("%w: ReadProcessMemory at %v: %v", process.ErrReadFailed, addr, err)
	}
	if bytesRead != uintptr(size) {
		return nil, fmt.Errorf("%w: short read at %v: %d of %v", process.ErrReadFailed, addr, bytesRead, size)
	}

	return buf, nil
}

func (p *WindowsProcess) UpdateMemoryMap() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updateMemoryMapLocked()
}

func (p *WindowsProcess) updateMemoryMapLocked() error {
	if p.handle == 0 {
		return process.ErrProcessNotOpen
	}

	mm, err := queryMemoryRegions(p.handle)
	if err != nil {
		return err
	}

	// FindRegion requires the list sorted by address; VirtualQueryEx walks
	// in ascending order already, but sorting keeps the invariant explicit.
	memory_map.Sort(mm)
	p.mm = mm
	return nil
}

// IsValidAddress reports whether addr falls in a readable region of the last
// refreshed memory map. Heuristic only; ReadMemory never consults it.
func (p *WindowsProcess) IsValidAddress(addr process.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return memory_map.IsValidAddress(uint64(addr), p.mm)
}

func (p *WindowsProcess) MemoryMap() ([]memory_map.Region, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == 0 {
		return nil, process.ErrProcessNotOpen
	}

	result := make([]memory_map.Region, len(p.mm))
	copy(result, p.mm)
	return result, nil
}
