package process

import (
	"fmt"
)

// PID is the operating system identifier of a running process.
type PID int

// Address is a virtual address inside the target process's address space.
// Addresses are never validated up front; whether one is readable is decided
// by the outcome of the read syscall.
type Address uint64

func (a Address) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Size is a byte count for a single memory transfer.
type Size uint

func (s Size) String() string {
	return fmt.Sprintf("%d bytes", uint(s))
}

// ProcessInfo describes a running process as seen by enumeration.
type ProcessInfo struct {
	PID  PID    // Process ID
	Name string // Short name (comm on Linux, executable file name on Windows)
	Exe  string // Path to the executable, best effort
}
