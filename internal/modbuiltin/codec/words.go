// Package codec implements the N_WORDS limb encoding the mod builtin
// uses to store big integers (moduli and operands) as N_WORDS
// consecutive memory cells, each bounded by 2^word_bit_len.
package codec

import (
	"fmt"
	"math/big"

	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// NWords is the fixed limb count for the instance layout: a
// compile-time constant, not a runtime parameter.
const NWords = 4

// Shift holds the precomputed 2^word_bit_len and its first NWords
// powers, mirroring the host runner's precomputed shift/shift_powers
// fields — computed once per ModInstanceDef rather than re-exponentiated
// on every limb read.
type Shift struct {
	Base   *big.Int
	Powers [NWords]*big.Int
}

// NewShift precomputes shift = 2^wordBitLen and its powers 0..NWords-1.
func NewShift(wordBitLen int) Shift {
	base := new(big.Int).Lsh(big.NewInt(1), uint(wordBitLen))
	var s Shift
	s.Base = base
	power := big.NewInt(1)
	for i := 0; i < NWords; i++ {
		s.Powers[i] = new(big.Int).Set(power)
		power = new(big.Int).Mul(power, base)
	}
	return s
}

// WordExceedsBitLenError mirrors RunnerError::WordExceedsModBuiltinWordBitLen:
// a limb cell holds an integer >= 2^word_bit_len.
type WordExceedsBitLenError struct {
	Addr       memory.Relocatable
	WordBitLen int
	Word       *big.Int
}

func (e *WordExceedsBitLenError) Error() string {
	return fmt.Sprintf("word %s at address %s exceeds word_bit_len %d", e.Word, e.Addr, e.WordBitLen)
}

// WriteNotZeroError mirrors RunnerError::WriteNWordsValueNotZero: the
// value being written does not fit in NWords limbs.
type WriteNotZeroError struct {
	Name string
}

func (e *WriteNotZeroError) Error() string {
	return fmt.Sprintf("%s: value being written is too large for N_WORDS words", e.Name)
}

// ReadNWordsValue reads the NWords-limb big integer stored starting at
// addr. If every limb is present it returns the decoded value; if the
// read stops because a limb has not been written yet, it returns the
// partial limb slice and a nil value — "missing" is a valid, expected
// pre-deduction state, distinct from a malformed cell.
func ReadNWordsValue(mem *memory.Memory, addr memory.Relocatable, wordBitLen int, shift Shift) ([NWords]*big.Int, *big.Int, error) {
	var words [NWords]*big.Int
	value := big.NewInt(0)
	for i := 0; i < NWords; i++ {
		addrI := addr.Add(i)
		cell := mem.Get(addrI)
		if cell == nil {
			return words, nil, nil
		}
		switch w := cell.Value.(type) {
		case memory.Relocatable:
			return words, nil, &memory.ExpectedIntegerError{Addr: addrI}
		case *big.Int:
			if w.Sign() < 0 || w.Cmp(shift.Base) >= 0 {
				return words, nil, &WordExceedsBitLenError{Addr: addrI, WordBitLen: wordBitLen, Word: w}
			}
			words[i] = w
			value = new(big.Int).Add(value, new(big.Int).Mul(w, shift.Powers[i]))
		default:
			return words, nil, &memory.UnknownMemoryCellError{Addr: addrI}
		}
	}
	return words, value, nil
}

// WriteNWordsValue decomposes value into NWords limbs of shift.Base and
// writes them starting at addr. It fails if value does not fit in
// NWords limbs (i.e. value >= shift.Base^NWords).
func WriteNWordsValue(mem *memory.Memory, addr memory.Relocatable, value *big.Int, name string, shift Shift) error {
	remaining := new(big.Int).Set(value)
	for i := 0; i < NWords; i++ {
		limb := new(big.Int).Mod(remaining, shift.Base)
		if err := mem.InsertAsAccessed(addr.Add(i), new(big.Int).Set(limb)); err != nil {
			return err
		}
		remaining = new(big.Int).Div(remaining, shift.Base)
	}
	if remaining.Sign() != 0 {
		return &WriteNotZeroError{Name: name}
	}
	return nil
}
