//go:build linux

package main

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// commitPage maps an anonymous read-write page at exactly addr. Fails rather
// than clobbering an existing mapping.
func commitPage(addr uintptr, size uintptr) (unsafe.Pointer, error) {
	p, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		size,
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_FIXED_NOREPLACE),
		^uintptr(0), // no backing fd
		0,
	)
	if errno != 0 {
		return nil, errno
	}
	return unsafe.Pointer(p), nil
}
