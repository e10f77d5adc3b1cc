package process

import (
	"fmt"
	"testing"
)

type sliceMemory struct {
	base Address
	data []byte
}

func (s *sliceMemory) ReadMemory(addr Address, size Size) ([]byte, error) {
	if addr < s.base || uint64(addr)+uint64(size) > uint64(s.base)+uint64(len(s.data)) {
		return nil, fmt.Errorf("%w: unmapped address %v", ErrReadFailed, addr)
	}
	off := addr - s.base
	out := make([]byte, size)
	copy(out, s.data[off:uint64(off)+uint64(size)])
	return out, nil
}

func TestTypedScalarReads(t *testing.T) {
	m := &sliceMemory{
		base: 0x1000,
		// 0x0807060504030201 little-endian, then a float32 1.5 (0x3FC00000)
		data: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x00, 0x00, 0xC0, 0x3F},
	}

	if v, err := ReadUint8(m, 0x1000); err != nil || v != 0x01 {
		t.Errorf("ReadUint8 = (%#x, %v)", v, err)
	}
	if v, err := ReadUint16(m, 0x1000); err != nil || v != 0x0201 {
		t.Errorf("ReadUint16 = (%#x, %v)", v, err)
	}
	if v, err := ReadUint32(m, 0x1000); err != nil || v != 0x04030201 {
		t.Errorf("ReadUint32 = (%#x, %v)", v, err)
	}
	if v, err := ReadUint64(m, 0x1000); err != nil || v != 0x0807060504030201 {
		t.Errorf("ReadUint64 = (%#x, %v)", v, err)
	}
	if v, err := ReadInt8(m, 0x1000); err != nil || v != 1 {
		t.Errorf("ReadInt8 = (%d, %v)", v, err)
	}
	if v, err := ReadFloat32(m, 0x1008); err != nil || v != 1.5 {
		t.Errorf("ReadFloat32 = (%v, %v)", v, err)
	}
	if v, err := ReadPointer(m, 0x1000); err != nil || v != Address(0x0807060504030201) {
		t.Errorf("ReadPointer = (%v, %v)", v, err)
	}
}

func TestTypedReadFailurePropagates(t *testing.T) {
	m := &sliceMemory{base: 0x1000, data: []byte{0xFF}}

	if _, err := ReadUint64(m, 0x1000); err == nil {
		t.Error("ReadUint64 across region end succeeded")
	}
	if _, err := ReadUint8(m, 0x2000); err == nil {
		t.Error("ReadUint8 at unmapped address succeeded")
	}
}

func TestReadNTS(t *testing.T) {
	m := &sliceMemory{
		base: 0x1000,
		data: []byte("hello\x00world\x00"),
	}

	tests := []struct {
		name   string
		addr   Address
		maxLen Size
		want   string
	}{
		{"terminated", 0x1000, 13, "hello"},
		{"second string", 0x1006, 6, "world"},
		{"no terminator in window", 0x1000, 3, "hel"},
		{"zero max length", 0x1000, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadNTS(m, tt.addr, tt.maxLen)
			if err != nil {
				t.Fatalf("ReadNTS: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadNTS = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := ReadNTS(m, 0x1000, 64); err == nil {
		t.Error("ReadNTS past region end succeeded")
	}
}
