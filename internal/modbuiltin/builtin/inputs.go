package builtin

import (
	"math/big"

	"github.com/vybium/modbuiltin/internal/modbuiltin/codec"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// Inputs is the decoded instance header: the modulus, its raw limbs
// (needed verbatim for the cross-instance equality check), and the
// pointers/count that locate the rest of the instance.
type Inputs struct {
	P          *big.Int
	PValues    [codec.NWords]*big.Int
	ValuesPtr  memory.Relocatable
	OffsetsPtr memory.Relocatable
	N          int
}

// readInputs decodes the 7-cell instance header at addr.
func readInputs(mem *memory.Memory, addr memory.Relocatable, name string, shift codec.Shift, wordBitLen int) (Inputs, error) {
	valuesPtr, err := mem.GetRelocatable(addr.Add(ValuesPtrOffset))
	if err != nil {
		return Inputs{}, errMemory(err)
	}
	offsetsPtr, err := mem.GetRelocatable(addr.Add(OffsetsPtrOffset))
	if err != nil {
		return Inputs{}, errMemory(err)
	}
	n, err := mem.GetUsize(addr.Add(NOffset))
	if err != nil {
		return Inputs{}, errMemory(err)
	}
	if n < 1 {
		return Inputs{}, errNLessThanOne(name, n)
	}

	words, p, err := codec.ReadNWordsValue(mem, addr, wordBitLen, shift)
	if err != nil {
		return Inputs{}, translateCodecErr(name, err)
	}
	if p == nil {
		return Inputs{}, errMissingValue(name, addr.Add(codec.NWords))
	}

	return Inputs{
		P:          p,
		PValues:    words,
		ValuesPtr:  valuesPtr,
		OffsetsPtr: offsetsPtr,
		N:          n,
	}, nil
}

// translateCodecErr re-wraps a codec-level error into the builtin
// taxonomy, attaching the builtin name the codec package (by design)
// doesn't know about.
func translateCodecErr(name string, err error) error {
	switch e := err.(type) {
	case *codec.WordExceedsBitLenError:
		return errWordExceedsBitLen(name, e.Addr, e.WordBitLen, e.Word)
	case *codec.WriteNotZeroError:
		return errWriteNotZero(name)
	default:
		return errMemory(err)
	}
}
