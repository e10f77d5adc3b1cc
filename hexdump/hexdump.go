// Package hexdump formats raw memory bytes as the classic
// address/hex/ASCII three-column dump.
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

const bytesPerLine = 16

// Dump formats data as a hexdump, labeling offsets relative to base.
func Dump(data []byte, base uint64) string {
	var b strings.Builder
	DumpTo(&b, data, base)
	return b.String()
}

// DumpTo writes a hexdump of data to w, labeling offsets relative to base.
func DumpTo(w io.Writer, data []byte, base uint64) {
	for off := 0; off < len(data); off += bytesPerLine {
		line := data[off:min(off+bytesPerLine, len(data))]

		fmt.Fprintf(w, "%012X  ", base+uint64(off))

		for i := 0; i < bytesPerLine; i++ {
			if i == bytesPerLine/2 {
				fmt.Fprint(w, " ")
			}
			if i < len(line) {
				fmt.Fprintf(w, "%02X ", line[i])
			} else {
				fmt.Fprint(w, "   ")
			}
		}

		fmt.Fprint(w, " |")
		for _, c := range line {
			if c >= 0x20 && c < 0x7F {
				fmt.Fprintf(w, "%c", c)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
