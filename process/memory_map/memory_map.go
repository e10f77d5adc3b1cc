// Package memory_map models the mapped regions of a process's address
// space. The region list is advisory: reads against the target never consult
// it, it exists for callers that want a pre-flight heuristic or a map dump.
package memory_map

import (
	"fmt"
	"sort"
)

// Region is one mapped range of a process's address space.
type Region struct {
	Address uint64 // Starting address of the region
	Size    uint   // Size of the region in bytes
	Perms   string // Permission string in /proc/maps form, e.g. "r-xp"
}

func (r Region) String() string {
	return fmt.Sprintf("Address: %x, Size: %d, Perms: %s", r.Address, r.Size, r.Perms)
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uint64) bool {
	return addr >= r.Address && addr < r.Address+uint64(r.Size)
}

func (r Region) IsReadable() bool {
	return len(r.Perms) > 0 && r.Perms[0] == 'r'
}

func (r Region) IsWritable() bool {
	return len(r.Perms) > 1 && r.Perms[1] == 'w'
}

func (r Region) IsExecutable() bool {
	return len(r.Perms) > 2 && r.Perms[2] == 'x'
}

// Sort orders regions by start address, the precondition for FindRegion.
func Sort(regions []Region) {
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Address < regions[j].Address
	})
}

// FindRegion returns the region containing addr, or nil. The slice must be
// sorted by address (see Sort).
func FindRegion(addr uint64, regions []Region) *Region {
	i := sort.Search(len(regions), func(i int) bool {
		return regions[i].Address+uint64(regions[i].Size) > addr
	})
	if i < len(regions) && regions[i].Address <= addr {
		return &regions[i]
	}
	return nil
}

// IsValidAddress reports whether addr falls inside a readable region of a
// sorted region list.
func IsValidAddress(addr uint64, regions []Region) bool {
	r := FindRegion(addr, regions)
	return r != nil && r.IsReadable()
}
