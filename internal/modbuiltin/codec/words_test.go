package codec

import (
	"math/big"
	"testing"

	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

func TestWriteThenReadNWordsValueRoundTrips(t *testing.T) {
	mem := memory.NewMemory()
	shift := NewShift(16)
	addr := memory.Relocatable{Segment: 0, Offset: 0}

	value := big.NewInt(123456789)
	if err := WriteNWordsValue(mem, addr, value, "test", shift); err != nil {
		t.Fatal(err)
	}

	_, got, err := ReadNWordsValue(mem, addr, 16, shift)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(value) != 0 {
		t.Errorf("got %s, want %s", got, value)
	}
}

func TestWriteNWordsValueTooLargeFails(t *testing.T) {
	mem := memory.NewMemory()
	shift := NewShift(8)
	addr := memory.Relocatable{Segment: 0, Offset: 0}

	// shift.Base^NWords is the ceiling this fits under; go well past it.
	tooLarge := new(big.Int).Exp(shift.Base, big.NewInt(NWords+1), nil)
	err := WriteNWordsValue(mem, addr, tooLarge, "test", shift)
	if _, ok := err.(*WriteNotZeroError); !ok {
		t.Fatalf("expected WriteNotZeroError, got %v", err)
	}
}

func TestReadNWordsValueMissingLimbReturnsNilValue(t *testing.T) {
	mem := memory.NewMemory()
	shift := NewShift(16)
	addr := memory.Relocatable{Segment: 0, Offset: 0}

	// Only write the first limb, leave the rest unset.
	if err := mem.InsertAsAccessed(addr.Add(0), big.NewInt(5)); err != nil {
		t.Fatal(err)
	}

	_, value, err := ReadNWordsValue(mem, addr, 16, shift)
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Errorf("expected nil value for a partially-written operand, got %s", value)
	}
}

func TestReadNWordsValueWordExceedsBitLen(t *testing.T) {
	mem := memory.NewMemory()
	shift := NewShift(4)
	addr := memory.Relocatable{Segment: 0, Offset: 0}

	for i := 0; i < NWords; i++ {
		if err := mem.InsertAsAccessed(addr.Add(i), big.NewInt(0)); err != nil {
			t.Fatal(err)
		}
	}
	// Overwrite the first limb with a value >= 2^4.
	if err := mem.InsertAsAccessed(addr.Add(0), big.NewInt(16)); err != nil {
		t.Fatal(err)
	}

	_, _, err := ReadNWordsValue(mem, addr, 4, shift)
	if _, ok := err.(*WordExceedsBitLenError); !ok {
		t.Fatalf("expected WordExceedsBitLenError, got %v", err)
	}
}

func TestReadNWordsValueExpectedInteger(t *testing.T) {
	mem := memory.NewMemory()
	shift := NewShift(16)
	addr := memory.Relocatable{Segment: 0, Offset: 0}

	if err := mem.InsertAsAccessed(addr, memory.Relocatable{Segment: 1, Offset: 0}); err != nil {
		t.Fatal(err)
	}

	_, _, err := ReadNWordsValue(mem, addr, 16, shift)
	if _, ok := err.(*memory.ExpectedIntegerError); !ok {
		t.Fatalf("expected ExpectedIntegerError, got %v", err)
	}
}

func TestNewShiftPowers(t *testing.T) {
	shift := NewShift(8)
	if shift.Base.Int64() != 256 {
		t.Fatalf("base = %s, want 256", shift.Base)
	}
	want := int64(1)
	for i := 0; i < NWords; i++ {
		if shift.Powers[i].Int64() != want {
			t.Errorf("powers[%d] = %s, want %d", i, shift.Powers[i], want)
		}
		want *= 256
	}
}
