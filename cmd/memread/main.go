// memread resolves a process by name and reads typed values out of its
// memory at a caller-given address. Pair it with memtarget for a quick
// end-to-end check:
//
//	memtarget &
//	memread -name memtarget -addr 0x7FF49E872000
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vitormarinhofaria/proc-memory/hexdump"
	"github.com/vitormarinhofaria/proc-memory/pod"
	"github.com/vitormarinhofaria/proc-memory/process"
)

func main() {
	nameFlag := flag.String("name", "", "Name of the target process (exact match)")
	addrFlag := flag.String("addr", "0x7FF49E872000", "Virtual address to read, hex")
	countFlag := flag.Int("count", 1, "Number of contiguous uint64 values to read")
	dumpFlag := flag.Uint("dump", 0, "Also hexdump this many raw bytes at the address")
	flag.Parse()

	if *nameFlag == "" {
		fmt.Println("Error: -name is required")
		flag.Usage()
		os.Exit(1)
	}

	addr, err := parseAddress(*addrFlag)
	if err != nil {
		fmt.Printf("Error parsing address %q: %v\n", *addrFlag, err)
		os.Exit(1)
	}

	proc, err := openProcessByName(*nameFlag)
	if err != nil {
		fmt.Printf("Error opening process %q: %v\n", *nameFlag, err)
		os.Exit(1)
	}
	defer proc.Close()

	fmt.Printf("Attached to process %d\n", proc.PID())

	if *countFlag > 1 {
		values, err := pod.ReadSlice[uint64](proc, addr, *countFlag)
		if err != nil {
			fmt.Printf("Error reading %d values at %v: %v\n", *countFlag, addr, err)
			os.Exit(1)
		}
		for i, v := range values {
			fmt.Printf("%v - %d\n", addr+process.Address(i*8), v)
		}
	} else {
		value, err := pod.Read[uint64](proc, addr)
		if err != nil {
			fmt.Printf("Error reading at %v: %v\n", addr, err)
			os.Exit(1)
		}
		fmt.Printf("%v - %d\n", addr, value)

		// Same read with a positive-value sanity filter, the way a caller
		// probing a guessed address would.
		if v, ok := pod.ReadValid(proc, addr, func(v *int64) bool { return *v > 0 }); ok {
			fmt.Printf("%v - %d (plausible)\n", addr, v)
		} else {
			fmt.Printf("%v - unreadable or implausible\n", addr)
		}
	}

	if *dumpFlag > 0 {
		data, err := proc.ReadMemory(addr, process.Size(*dumpFlag))
		if err != nil {
			fmt.Printf("Error dumping at %v: %v\n", addr, err)
			os.Exit(1)
		}
		fmt.Print(hexdump.Dump(data, uint64(addr)))
	}
}

func parseAddress(s string) (process.Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return process.Address(v), nil
}
