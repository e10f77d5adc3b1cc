//go:build windows

package process_windows

import (
	"syscall"
	"unsafe"

	"github.com/vitormarinhofaria/proc-memory/process/memory_map"
)

const (
	memCommit = 0x1000

	pageNoAccess         = 0x01
	pageReadonly         = 0x02
	pageReadwrite        = 0x04
	pageWritecopy        = 0x08
	pageExecute          = 0x10
	pageExecuteRead      = 0x20
	pageExecuteReadwrite = 0x40
	pageExecuteWritecopy = 0x80
	pageGuard            = 0x100
	pageNocache          = 0x200
	pageWritecombine     = 0x400

	// Highest user-mode address on x64.
	maxUserAddress = 0x7FFFFFFFFFFF
)

type memoryBasicInformation struct {
	BaseAddress       uintptr
	AllocationBase    uintptr
	AllocationProtect uint32
	PartitionID       uint16
	RegionSize        uintptr
	State             uint32
	Protect           uint32
	Type              uint32
}

// queryMemoryRegions walks the target's address space with VirtualQueryEx
// and returns the committed regions.
func queryMemoryRegions(handle syscall.Handle) ([]memory_map.Region, error) {
	var regions []memory_map.Region
	var mbi memoryBasicInformation

	for addr := uintptr(0); addr < maxUserAddress; {
		ret, _, _ := procVirtualQueryEx.Call(
			uintptr(handle),
			addr,
			uintptr(unsafe.Pointer(&mbi)),
			unsafe.Sizeof(mbi),
		)
		if ret == 0 {
			break
		}

		if mbi.State == memCommit {
			regions = append(regions, memory_map.Region{
				Address: uint64(mbi.BaseAddress),
				Size:    uint(mbi.RegionSize),
				Perms:   protectToPerms(mbi.Protect),
			})
		}

		next := mbi.BaseAddress + mbi.RegionSize
		if next <= addr {
			break // would not advance
		}
		addr = next
	}

	return regions, nil
}

// protectToPerms maps a PAGE_* protection value to the /proc/maps-style
// permission string used by memory_map.Region.
func protectToPerms(protect uint32) string {
	if protect&pageGuard != 0 {
		// A guard page faults on first touch; treat as unreadable.
		return "---p"
	}

	switch protect &^ (pageNocache | pageWritecombine) {
	case pageReadonly:
		return "r--p"
	case pageReadwrite, pageWritecopy:
		return "rw-p"
	case pageExecute:
		return "--xp"
	case pageExecuteRead:
		return "r-xp"
	case pageExecuteReadwrite, pageExecuteWritecopy:
		return "rwxp"
	case pageNoAccess:
		return "---p"
	default:
		return "---p"
	}
}
