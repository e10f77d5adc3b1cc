package hexdump

import (
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	data := append([]byte("Hello, World!"), 0x00, 0xFF, 0x7F, 0x41)
	out := Dump(data, 0x7FF49E872000)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines for 17 bytes, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "7FF49E872000") {
		t.Errorf("first line does not start with the base address: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "7FF49E872010") {
		t.Errorf("second line offset wrong: %q", lines[1])
	}
	if !strings.Contains(lines[0], "48 65 6C 6C 6F") {
		t.Errorf("hex column missing 'Hello' bytes: %q", lines[0])
	}
	if !strings.Contains(lines[0], "|Hello, World!..") {
		t.Errorf("ASCII column wrong: %q", lines[0])
	}
	// 0x41 ('A') lands on the second line after three non-printables
	if !strings.Contains(lines[1], "|A|") {
		t.Errorf("second line ASCII column wrong: %q", lines[1])
	}
}

func TestDumpEmpty(t *testing.T) {
	if out := Dump(nil, 0); out != "" {
		t.Errorf("Dump(nil) = %q, want empty", out)
	}
}
