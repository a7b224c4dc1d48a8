package builtin

import (
	"math/big"

	"github.com/vybium/modbuiltin/internal/modbuiltin/codec"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// readMemoryVars fetches the (a, b, c) triple for indexInBatch, given
// the instance's values/offsets pointers. Every limb here is required —
// a missing limb at this stage is a hard error, unlike the deducer's
// tolerant reads.
func readMemoryVars(mem *memory.Memory, valuesPtr, offsetsPtr memory.Relocatable, indexInBatch int, name string, shift codec.Shift, wordBitLen int) (a, b, c *big.Int, err error) {
	compute := func(varIndex int) (*big.Int, error) {
		offset, err := mem.GetUsize(offsetsPtr.Add(varIndex + 3*indexInBatch))
		if err != nil {
			return nil, errMemory(err)
		}
		valueAddr := valuesPtr.Add(offset)
		_, value, err := codec.ReadNWordsValue(mem, valueAddr, wordBitLen, shift)
		if err != nil {
			return nil, translateCodecErr(name, err)
		}
		if value == nil {
			return nil, errMissingValue(name, valueAddr.Add(codec.NWords))
		}
		return value, nil
	}

	if a, err = compute(0); err != nil {
		return nil, nil, nil, err
	}
	if b, err = compute(1); err != nil {
		return nil, nil, nil, err
	}
	if c, err = compute(2); err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}
