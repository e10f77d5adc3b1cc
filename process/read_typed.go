package process

import (
	"encoding/binary"
	"math"
)

// Typed scalar reads over a MemoryReader. The target's bytes are decoded
// little-endian, matching the in-memory layout on the supported platforms;
// no layout translation is performed.

// ReadUint8 reads an unsigned 8-bit integer from addr.
func ReadUint8(m MemoryReader, addr Address) (uint8, error) {
	data, err := m.ReadMemory(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer from addr.
func ReadUint16(m MemoryReader, addr Address) (uint16, error) {
	data, err := m.ReadMemory(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUint32 reads an unsigned 32-bit integer from addr.
func ReadUint32(m MemoryReader, addr Address) (uint32, error) {
	data, err := m.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUint64 reads an unsigned 64-bit integer from addr.
func ReadUint64(m MemoryReader, addr Address) (uint64, error) {
	data, err := m.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadInt8 reads a signed 8-bit integer from addr.
func ReadInt8(m MemoryReader, addr Address) (int8, error) {
	v, err := ReadUint8(m, addr)
	return int8(v), err
}

// ReadInt16 reads a signed 16-bit integer from addr.
func ReadInt16(m MemoryReader, addr Address) (int16, error) {
	v, err := ReadUint16(m, addr)
	return int16(v), err
}

// ReadInt32 reads a signed 32-bit integer from addr.
func ReadInt32(m MemoryReader, addr Address) (int32, error) {
	v, err := ReadUint32(m, addr)
	return int32(v), err
}

// ReadInt64 reads a signed 64-bit integer from addr.
func ReadInt64(m MemoryReader, addr Address) (int64, error) {
	v, err := ReadUint64(m, addr)
	return int64(v), err
}

// ReadFloat32 reads a 32-bit floating point number from addr.
func ReadFloat32(m MemoryReader, addr Address) (float32, error) {
	v, err := ReadUint32(m, addr)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a 64-bit floating point number from addr.
func ReadFloat64(m MemoryReader, addr Address) (float64, error) {
	v, err := ReadUint64(m, addr)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadPointer reads a pointer-sized value from addr and returns it as an
// Address in the target's address space. Assumes a 64-bit target.
func ReadPointer(m MemoryReader, addr Address) (Address, error) {
	v, err := ReadUint64(m, addr)
	return Address(v), err
}

// ReadNTS reads a null-terminated string starting at addr, fetching at most
// maxLen bytes in a single transfer. If no terminator appears within maxLen
// bytes the whole buffer is returned as a string.
func ReadNTS(m MemoryReader, addr Address, maxLen Size) (string, error) {
	if maxLen == 0 {
		return "", nil
	}
	data, err := m.ReadMemory(addr, maxLen)
	if err != nil {
		return "", err
	}
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), nil
		}
	}
	return string(data), nil
}
