package pod

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/vitormarinhofaria/proc-memory/process"
)

// fakeMemory backs a MemoryReader with a byte image mapped at a fixed base
// address. Reads outside the image fail like an unmapped region would.
type fakeMemory struct {
	base process.Address
	data []byte
}

func (f *fakeMemory) ReadMemory(addr process.Address, size process.Size) ([]byte, error) {
	if addr < f.base || uint64(addr)+uint64(size) > uint64(f.base)+uint64(len(f.data)) {
		return nil, fmt.Errorf("%w: unmapped address %v", process.ErrReadFailed, addr)
	}
	off := uint64(addr - f.base)
	out := make([]byte, size)
	copy(out, f.data[off:off+uint64(size)])
	return out, nil
}

const base = process.Address(0x7FF49E872000)

func newFake(data []byte) *fakeMemory {
	return &fakeMemory{base: base, data: data}
}

func putUint64(vals ...uint64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[i*8:], v)
	}
	return out
}

func TestReadInt64(t *testing.T) {
	m := newFake(putUint64(42))

	got, err := Read[int64](m, base)
	if err != nil {
		t.Fatalf("Read[int64]: %v", err)
	}
	if got != 42 {
		t.Errorf("Read[int64] = %d, want 42", got)
	}
}

func TestReadStruct(t *testing.T) {
	type twoNum struct {
		Num1 uint64
		Num2 int64
	}
	m := newFake(putUint64(100, uint64(0xFFFFFFFFFFFFFFD6))) // -42 as two's complement

	got, err := Read[twoNum](m, base)
	if err != nil {
		t.Fatalf("Read[twoNum]: %v", err)
	}
	if got.Num1 != 100 || got.Num2 != -42 {
		t.Errorf("Read[twoNum] = %+v, want {100 -42}", got)
	}
}

func TestReadFixedArray(t *testing.T) {
	m := newFake(putUint64(1, 2, 3))

	got, err := Read[[3]uint64](m, base)
	if err != nil {
		t.Fatalf("Read[[3]uint64]: %v", err)
	}
	if got != [3]uint64{1, 2, 3} {
		t.Errorf("Read[[3]uint64] = %v", got)
	}
}

func TestReadFloat(t *testing.T) {
	m := newFake(putUint64(math.Float64bits(3.5)))

	got, err := Read[float64](m, base)
	if err != nil {
		t.Fatalf("Read[float64]: %v", err)
	}
	if got != 3.5 {
		t.Errorf("Read[float64] = %v, want 3.5", got)
	}
}

func TestReadUnmappedFails(t *testing.T) {
	m := newFake(putUint64(42))

	if _, err := Read[int64](m, base+0x1000); err == nil {
		t.Fatal("Read at unmapped address succeeded")
	} else if !errors.Is(err, process.ErrReadFailed) {
		t.Errorf("error %v does not wrap ErrReadFailed", err)
	}
}

func TestReadPartialRegionFails(t *testing.T) {
	// Only 4 of the 8 requested bytes are mapped.
	m := newFake([]byte{1, 2, 3, 4})

	if _, err := Read[int64](m, base); err == nil {
		t.Fatal("Read across the end of the region succeeded")
	}
}

func TestReadRejectsPointerTypes(t *testing.T) {
	m := newFake(putUint64(42))

	type withPtr struct {
		P *int64
	}
	if _, err := Read[withPtr](m, base); !errors.Is(err, ErrNotPOD) {
		t.Errorf("Read[withPtr] err = %v, want ErrNotPOD", err)
	}
	if _, err := Read[string](m, base); !errors.Is(err, ErrNotPOD) {
		t.Errorf("Read[string] err = %v, want ErrNotPOD", err)
	}
	if _, err := ReadSlice[[]byte](m, base, 1); !errors.Is(err, ErrNotPOD) {
		t.Errorf("ReadSlice[[]byte] err = %v, want ErrNotPOD", err)
	}
}

func TestReadRejectsInterfaceTypes(t *testing.T) {
	m := newFake(putUint64(42, 43))

	// Interface types have no concrete layout to reinterpret into.
	if _, err := Read[any](m, base); !errors.Is(err, ErrNotPOD) {
		t.Errorf("Read[any] err = %v, want ErrNotPOD", err)
	}
	if _, err := Read[error](m, base); !errors.Is(err, ErrNotPOD) {
		t.Errorf("Read[error] err = %v, want ErrNotPOD", err)
	}
	type withIface struct {
		V any
	}
	if _, err := Read[withIface](m, base); !errors.Is(err, ErrNotPOD) {
		t.Errorf("Read[withIface] err = %v, want ErrNotPOD", err)
	}
	if _, err := ReadSlice[any](m, base, 2); !errors.Is(err, ErrNotPOD) {
		t.Errorf("ReadSlice[any] err = %v, want ErrNotPOD", err)
	}
	if _, ok := ReadValid(m, base, func(v *any) bool { return true }); ok {
		t.Error("ReadValid[any] returned ok")
	}
}

func TestReadSliceRejectsInvalidTypeForAnyCount(t *testing.T) {
	m := newFake(putUint64(42))

	// Rejection of an invalid element type does not depend on count.
	for _, count := range []int{0, 1, 3} {
		if _, err := ReadSlice[string](m, base, count); !errors.Is(err, ErrNotPOD) {
			t.Errorf("ReadSlice[string] count=%d err = %v, want ErrNotPOD", count, err)
		}
		if _, err := ReadSlice[struct{}](m, base, count); !errors.Is(err, ErrZeroSize) {
			t.Errorf("ReadSlice[struct{}] count=%d err = %v, want ErrZeroSize", count, err)
		}
	}
}

func TestReadZeroSize(t *testing.T) {
	m := newFake(putUint64(42))

	if _, err := Read[struct{}](m, base); !errors.Is(err, ErrZeroSize) {
		t.Errorf("Read[struct{}] err = %v, want ErrZeroSize", err)
	}
}

func TestReadValid(t *testing.T) {
	m := newFake(putUint64(42))

	v, ok := ReadValid(m, base, func(v *int64) bool { return *v > 0 })
	if !ok || v != 42 {
		t.Errorf("ReadValid positive predicate = (%d, %v), want (42, true)", v, ok)
	}

	// Predicate rejection and read failure are the same None-shaped result.
	if _, ok := ReadValid(m, base, func(v *int64) bool { return *v < 0 }); ok {
		t.Error("ReadValid negative predicate accepted value 42")
	}
	if _, ok := ReadValid(m, base+0x1000, func(v *int64) bool { return true }); ok {
		t.Error("ReadValid at unmapped address returned ok")
	}
}

func TestReadSlice(t *testing.T) {
	m := newFake(putUint64(10, 20, 30, 40, 50))

	got, err := ReadSlice[int64](m, base, 5)
	if err != nil {
		t.Fatalf("ReadSlice: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("ReadSlice returned %d elements, want 5", len(got))
	}
	// Element i must equal a single read at addr + i*sizeof(T).
	for i, want := range got {
		single, err := Read[int64](m, base+process.Address(i*8))
		if err != nil {
			t.Fatalf("Read element %d: %v", i, err)
		}
		if single != want {
			t.Errorf("element %d: ReadSlice=%d, Read=%d", i, want, single)
		}
	}
}

func TestReadSliceFailFast(t *testing.T) {
	// 5 elements requested, only 3 mapped: the whole call must fail.
	m := newFake(putUint64(10, 20, 30))

	if _, err := ReadSlice[int64](m, base, 5); err == nil {
		t.Fatal("ReadSlice over a partially mapped range succeeded")
	}

	got, err := ReadSlice[int64](m, base, 0)
	if err != nil || len(got) != 0 {
		t.Errorf("ReadSlice count=0 = (%v, %v), want empty success", got, err)
	}
	if _, err := ReadSlice[int64](m, base, -1); err == nil {
		t.Error("ReadSlice with negative count succeeded")
	}
}

func TestSizeOf(t *testing.T) {
	if s := SizeOf[int64](); s != 8 {
		t.Errorf("SizeOf[int64] = %d, want 8", s)
	}
	type padded struct {
		A uint8
		B uint64
	}
	if s := SizeOf[padded](); s != 16 {
		t.Errorf("SizeOf[padded] = %d, want 16 (padding included)", s)
	}
}
