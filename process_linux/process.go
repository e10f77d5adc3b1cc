//go:build linux

// Package process_linux implements process resolution and memory reads on
// Linux, using /proc for enumeration and the process_vm_readv syscall for
// transfers.
package process_linux

import (
	"fmt"
	"os"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"github.com/vitormarinhofaria/proc-memory/process"
	"github.com/vitormarinhofaria/proc-memory/process/memory_map"
)

// LinuxProcess implements the process.Process interface for Linux systems.
type LinuxProcess struct {
	pid process.PID
	log *logger.Logger
	mm  []memory_map.Region
	mu  sync.Mutex
}

// New creates a new, unopened LinuxProcess instance.
func New() process.Process {
	return &LinuxProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
}

// NewWithPID creates a new LinuxProcess instance and opens it with the given PID.
func NewWithPID(pid process.PID) (process.Process, error) {
	p := &LinuxProcess{
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open")),
	}
	if err := p.Open(pid); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *LinuxProcess) Open(pid process.PID) error {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
	}

	p.mu.Lock()
	p.pid = pid
	p.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid)))
	p.mu.Unlock()

	// The region list is advisory; reads work without it.
	if err := p.UpdateMemoryMap(); err != nil {
		p.log.Warn("Failed to read memory map: ", err)
	}

	p.log.Infoln("Process opened")
	return nil
}

// Close drops the attachment. Linux holds no kernel handle between reads, so
// this only resets state, but callers should still close on every exit path
// for symmetry with the Windows implementation.
func (p *LinuxProcess) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pid = 0
	p.mm = nil
	p.log.Infoln("Process closed")
	p.log = logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "process-not-open"))

	return nil
}

func (p *LinuxProcess) PID() process.PID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid
}

func (p *LinuxProcess) UpdateMemoryMap() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pid == 0 {
		return process.ErrProcessNotOpen
	}

	mm, err := memory_map.ReadMemoryMap(int(p.pid))
	if err != nil {
		return fmt.Errorf("read memory map: %w", err)
	}

	// FindRegion requires the list sorted by address.
	memory_map.Sort(mm)
	p.mm = mm
	return nil
}

// IsValidAddress reports whether addr falls in a readable region of the last
// refreshed memory map. Heuristic only; ReadMemory never consults it.
func (p *LinuxProcess) IsValidAddress(addr process.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return memory_map.IsValidAddress(uint64(addr), p.mm)
}

func (p *LinuxProcess) MemoryMap() ([]memory_map.Region, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pid == 0 {
		return nil, process.ErrProcessNotOpen
	}

	result := make([]memory_map.Region, len(p.mm))
	copy(result, p.mm)
	return result, nil
}
