// Package pod reads plain-old-data values out of another process's memory.
// A value is fetched as one exact-size raw transfer and then reinterpreted
// byte for byte as the requested Go type. The byte layout of T must match
// the target's in-memory layout (field order, padding, endianness); no
// translation is performed, and a layout mismatch yields garbage values, not
// a detected error.
package pod

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/vitormarinhofaria/proc-memory/process"
)

var (
	// ErrNotPOD is returned when T contains pointers, slices, strings, maps
	// or other Go-managed references. Copying raw remote bytes into such a
	// type would hand the garbage collector invalid pointers.
	ErrNotPOD = errors.New("type contains Go-managed references, not POD-safe")

	// ErrZeroSize is returned when T has no bytes to read.
	ErrZeroSize = errors.New("size of type is zero")
)

// SizeOf returns the in-memory size of T.
func SizeOf[T any]() process.Size {
	var t T
	return process.Size(unsafe.Sizeof(t))
}

// Read fetches sizeof(T) bytes at addr in one transfer and decodes them as
// T. Any failure of the underlying read, including a short transfer, fails
// the whole call; there is no partial result.
func Read[T any](m process.MemoryReader, addr process.Address) (T, error) {
	var zero T

	size := SizeOf[T]()
	if size == 0 {
		return zero, ErrZeroSize
	}
	if hasPointers[T]() {
		return zero, ErrNotPOD
	}

	data, err := m.ReadMemory(addr, size)
	if err != nil {
		return zero, err
	}

	return decode[T](data)
}

// ReadValid performs the same read as Read and additionally applies a
// caller-supplied plausibility check to the decoded value. It returns
// ok=false when the read fails for any reason OR when the predicate rejects
// the value; the result does not distinguish the two causes. The predicate
// is a first-pass heuristic against misreads of caller-guessed addresses,
// not a correctness guarantee. Callers that need to tell "unreadable" from
// "readable but implausible" must use Read directly.
func ReadValid[T any](m process.MemoryReader, addr process.Address, valid func(*T) bool) (T, bool) {
	v, err := Read[T](m, addr)
	if err != nil {
		var zero T
		return zero, false
	}
	if !valid(&v) {
		var zero T
		return zero, false
	}
	return v, true
}

// ReadSlice fetches count contiguous values of T starting at addr as a
// single transfer of count*sizeof(T) bytes. It is fail-fast: if any part of
// the range is unreadable the whole call fails, it never returns a
// partially or default-filled slice.
func ReadSlice[T any](m process.MemoryReader, addr process.Address, count int) ([]T, error) {
	if count < 0 {
		return nil, errors.New("count must not be negative")
	}

	// An invalid T is rejected regardless of count.
	size := SizeOf[T]()
	if size == 0 {
		return nil, ErrZeroSize
	}
	if hasPointers[T]() {
		return nil, ErrNotPOD
	}

	if count == 0 {
		return []T{}, nil
	}

	total := size * process.Size(count)
	data, err := m.ReadMemory(addr, total)
	if err != nil {
		return nil, err
	}

	result := make([]T, count)
	elem := int(size)
	for i := 0; i < count; i++ {
		v, err := decode[T](data[i*elem : (i+1)*elem])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		result[i] = v
	}
	return result, nil
}

// decode reinterprets data as a T. The buffer length must equal sizeof(T)
// exactly; the typed value is never produced from an over- or under-sized
// buffer.
func decode[T any](data []byte) (T, error) {
	var v T
	size := int(unsafe.Sizeof(v))
	if len(data) != size {
		return v, fmt.Errorf("%w: decode: buffer is %d bytes, type needs %d",
			process.ErrReadFailed, len(data), size)
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	copy(dst, data)
	return v, nil
}

// hasPointers reports whether T (recursively) contains any pointer-like
// fields.
func hasPointers[T any]() bool {
	var t T
	return typeHasPointers(reflect.TypeOf(t))
}

func typeHasPointers(rt reflect.Type) bool {
	if rt == nil {
		// reflect.TypeOf on the zero value of an interface type yields nil.
		return true
	}
	switch rt.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Interface, reflect.Func,
		reflect.Map, reflect.Slice, reflect.String, reflect.Chan:
		return true
	case reflect.Array:
		return typeHasPointers(rt.Elem())
	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			if typeHasPointers(rt.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// bool, ints, uints, floats, complex
		return false
	}
}
