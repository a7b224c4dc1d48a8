package builtin

import (
	"fmt"
	"math/big"

	"github.com/vybium/modbuiltin/internal/modbuiltin/core"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// RunAdditionalSecurityChecks re-reads every instance this runner wrote
// and independently re-verifies the cross-instance header invariants
// and per-triple algebraic equality. It is the only place that actually
// checks `a op b == c (mod p)` — fill_memory trusts its own deductions.
func (r *Runner) RunAdditionalSecurityChecks(segments *memory.SegmentManager) error {
	segmentSize, err := segments.GetSegmentUsedSize(r.base)
	if err != nil {
		return errMemory(err)
	}
	nInstances := ceilDiv(segmentSize, InputCells)

	var prev Inputs
	haveBatchOp := core.OpAdd
	if r.builtinType == Mul {
		haveBatchOp = core.OpMul
	}

	for instance := 0; instance < nInstances; instance++ {
		addr := memory.Relocatable{Segment: r.base, Offset: instance * InputCells}
		inputs, err := readInputs(segments.Memory(), addr, r.Name(), r.shift, r.instanceDef.WordBitLen)
		if err != nil {
			return err
		}

		if instance != 0 && prev.N > r.instanceDef.BatchSize {
			for i := 0; i < NWords; i++ {
				if inputs.PValues[i].Cmp(prev.PValues[i]) != 0 {
					return errSecurityCheck(r.Name(), fmt.Sprintf(
						"inputs.p_values[i] != prev_inputs.p_values[i]. Got: i=%d, inputs.p_values[i]=%s, prev_inputs.p_values[i]=%s",
						i, inputs.PValues[i], prev.PValues[i]))
				}
			}
			if inputs.ValuesPtr != prev.ValuesPtr {
				return errSecurityCheck(r.Name(), fmt.Sprintf(
					"inputs.values_ptr != prev_inputs.values_ptr. Got: inputs.values_ptr=%s, prev_inputs.values_ptr=%s",
					inputs.ValuesPtr, prev.ValuesPtr))
			}
			if inputs.OffsetsPtr != prev.OffsetsPtr.Add(3*r.instanceDef.BatchSize) {
				return errSecurityCheck(r.Name(), fmt.Sprintf(
					"inputs.offsets_ptr != prev_inputs.offsets_ptr + 3*batch_size. Got: inputs.offsets_ptr=%s, prev_inputs.offsets_ptr=%s, batch_size=%d",
					inputs.OffsetsPtr, prev.OffsetsPtr, r.instanceDef.BatchSize))
			}
			if inputs.N != saturatingSub(prev.N, r.instanceDef.BatchSize) {
				return errSecurityCheck(r.Name(), fmt.Sprintf(
					"inputs.n != prev_inputs.n - batch_size. Got: inputs.n=%d, prev_inputs.n=%d, batch_size=%d",
					inputs.N, prev.N, r.instanceDef.BatchSize))
			}
		}

		for indexInBatch := 0; indexInBatch < r.instanceDef.BatchSize; indexInBatch++ {
			a, b, c, err := readMemoryVars(segments.Memory(), inputs.ValuesPtr, inputs.OffsetsPtr, indexInBatch, r.Name(), r.shift, r.instanceDef.WordBitLen)
			if err != nil {
				return err
			}
			aOpB, err := core.ApplyOp(a, b, haveBatchOp, inputs.P)
			if err != nil {
				return errMath(err)
			}
			aOpB = new(big.Int).Mod(aOpB, inputs.P)
			cModP := new(big.Int).Mod(c, inputs.P)
			if aOpB.Cmp(cModP) != 0 {
				return errSecurityCheck(r.Name(), fmt.Sprintf(
					"expected a %s b == c (mod p). Got: instance=%d, batch=%d, p=%s, a=%s, b=%s, c=%s.",
					haveBatchOp, instance, indexInBatch, inputs.P, a, b, c))
			}
		}

		prev = inputs
	}

	if nInstances != 0 && prev.N != r.instanceDef.BatchSize {
		return errSecurityCheck(r.Name(), fmt.Sprintf(
			"prev_inputs.n != batch_size. Got: prev_inputs.n=%d, batch_size=%d", prev.N, r.instanceDef.BatchSize))
	}
	return nil
}
