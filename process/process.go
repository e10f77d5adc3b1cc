// Package process defines the shared types and interfaces for opening another
// process and reading its virtual memory. Concrete implementations live in
// process_linux and process_windows.
package process

import (
	"errors"

	"github.com/vitormarinhofaria/proc-memory/process/memory_map"
)

var (
	// ErrProcessNotFound is returned when no running process matches a name,
	// or when a matching process could not be opened with read access.
	// The two causes are deliberately collapsed: from the caller's point of
	// view a process it cannot read from might as well not exist.
	ErrProcessNotFound = errors.New("process not found")

	// ErrProcessNotOpen is returned when an operation requiring an open
	// process is attempted before Open succeeded or after Close.
	ErrProcessNotOpen = errors.New("process not open")

	// ErrReadFailed is the uniform failure for a memory read: unmapped
	// address, access denial, short transfer, or an invalid handle. The
	// underlying cause is carried in the wrapped error text but callers are
	// expected to treat all of them the same way.
	ErrReadFailed = errors.New("process memory read failed")
)

// MemoryReader is the minimal surface needed to fetch raw bytes from a
// target process. Each call is one blocking syscall into a freshly allocated
// buffer; implementations are safe for concurrent use with independent
// addresses.
type MemoryReader interface {
	// ReadMemory reads exactly size bytes starting at addr in the target
	// process. A transfer of fewer bytes than requested is an error, never a
	// truncated result. All failures wrap ErrReadFailed.
	ReadMemory(addr Address, size Size) ([]byte, error)
}

// Process is an opened handle to a running process. The handle is a shared,
// read-only resource: many reads may use it concurrently, and it is released
// exactly once by Close.
type Process interface {
	MemoryReader

	// Open attaches to the process with the given PID for memory reads.
	Open(pid PID) error

	// Close releases the underlying OS handle. Safe to call once on every
	// exit path; reads issued after Close fail with ErrProcessNotOpen.
	Close() error

	// PID returns the process ID, or zero when not open.
	PID() PID

	// UpdateMemoryMap refreshes the cached region list for the process.
	UpdateMemoryMap() error

	// IsValidAddress reports whether addr falls inside a known readable
	// region. This is a pre-flight heuristic for callers only; the read path
	// never consults it, the syscall outcome is authoritative.
	IsValidAddress(addr Address) bool

	// MemoryMap returns a copy of the current region list.
	MemoryMap() ([]memory_map.Region, error)
}
