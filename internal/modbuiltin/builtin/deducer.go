package builtin

import (
	"math/big"

	"github.com/vybium/modbuiltin/internal/modbuiltin/codec"
	"github.com/vybium/modbuiltin/internal/modbuiltin/core"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// fillValue attempts to deduce the single missing operand of triple
// `index` within inputs' values table. It returns true if the triple is
// now fully known (either it deduced a value, or all three were
// already present) and false if two or more operands are still missing
// and nothing could be written yet.
func fillValue(mem *memory.Memory, name string, inputs Inputs, index int, op, invOp core.Operation, shift codec.Shift, wordBitLen int) (bool, error) {
	var addrs [3]memory.Relocatable
	var values [3]*big.Int

	for i := 0; i < 3; i++ {
		offset, err := mem.GetUsize(inputs.OffsetsPtr.Add(3*index + i))
		if err != nil {
			return false, errMemory(err)
		}
		addr := inputs.ValuesPtr.Add(offset)
		addrs[i] = addr

		_, value, err := codec.ReadNWordsValue(mem, addr, wordBitLen, shift)
		if err != nil {
			return false, translateCodecErr(name, err)
		}
		values[i] = value
	}

	a, b, c := values[0], values[1], values[2]

	switch {
	case a != nil && b != nil && c == nil:
		result, err := core.ApplyOp(a, b, op, inputs.P)
		if err != nil {
			return false, errMath(err)
		}
		result = new(big.Int).Mod(result, inputs.P)
		if err := codec.WriteNWordsValue(mem, addrs[2], result, name, shift); err != nil {
			return false, translateCodecErr(name, err)
		}
		return true, nil

	case a != nil && b == nil && c != nil:
		result, err := core.ApplyOp(c, a, invOp, inputs.P)
		if err != nil {
			return false, errMath(err)
		}
		result = new(big.Int).Mod(result, inputs.P)
		if err := codec.WriteNWordsValue(mem, addrs[1], result, name, shift); err != nil {
			return false, translateCodecErr(name, err)
		}
		return true, nil

	case a == nil && b != nil && c != nil:
		result, err := core.ApplyOp(c, b, invOp, inputs.P)
		if err != nil {
			return false, errMath(err)
		}
		result = new(big.Int).Mod(result, inputs.P)
		if err := codec.WriteNWordsValue(mem, addrs[0], result, name, shift); err != nil {
			return false, translateCodecErr(name, err)
		}
		return true, nil

	case a != nil && b != nil && c != nil:
		// Already fully known; consistency is the security checker's job.
		return true, nil

	default:
		// Two or more operands still unknown — cannot deduce yet.
		return false, nil
	}
}
