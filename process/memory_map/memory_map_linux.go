//go:build linux

package memory_map

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadMemoryMap reads and parses /proc/<pid>/maps for a process.
func ReadMemoryMap(pid int) ([]Region, error) {
	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseMaps(file)
}

// ParseMaps parses text in /proc/<pid>/maps format. Malformed lines are
// skipped rather than failing the whole parse, since the kernel may append
// regions while we read.
func ParseMaps(r io.Reader) ([]Region, error) {
	var regions []Region

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		// Address range looks like "00400000-0040b000".
		addrRange := strings.Split(fields[0], "-")
		if len(addrRange) != 2 {
			continue
		}

		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(addrRange[1], 16, 64)
		if err != nil || end < start {
			continue
		}

		regions = append(regions, Region{
			Address: start,
			Size:    uint(end - start),
			Perms:   fields[1],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return regions, nil
}
