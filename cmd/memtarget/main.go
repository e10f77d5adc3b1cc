// memtarget commits a page of raw virtual memory at a fixed address, stores
// a known value through the raw pointer, and waits. It exists as a target to
// point memread (or any other reader) at.
package main

import (
	"bufio"
	"fmt"
	"os"
)

const (
	defaultAddr = 0x7FF49E872000
	pageSize    = 4096
)

func main() {
	mem, err := commitPage(uintptr(defaultAddr), pageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "commit page at 0x%X: %v\n", uint64(defaultAddr), err)
		os.Exit(1)
	}

	number := (*uint64)(mem)
	*number = 42

	stdin := bufio.NewReader(os.Stdin)

	fmt.Printf("%p - %d\n", mem, *number)
	fmt.Println("Press ENTER to update value")
	stdin.ReadString('\n')

	fmt.Printf("%p - %d\n", mem, *number)
	fmt.Println("Press ENTER to exit")
	stdin.ReadString('\n')
}
