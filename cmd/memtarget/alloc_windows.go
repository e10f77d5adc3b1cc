//go:build windows

package main

import (
	"syscall"
	"unsafe"
)

var (
	modkernel32      = syscall.NewLazyDLL("kernel32.dll")
	procVirtualAlloc = modkernel32.NewProc("VirtualAlloc")
)

const (
	memCommit     = 0x1000
	memReserve    = 0x2000
	pageReadwrite = 0x04
)

// commitPage commits a read-write page at exactly addr.
func commitPage(addr uintptr, size uintptr) (unsafe.Pointer, error) {
	p, _, err := procVirtualAlloc.Call(addr, size, memCommit|memReserve, pageReadwrite)
	if p == 0 {
		return nil, err
	}
	return unsafe.Pointer(p), nil
}
