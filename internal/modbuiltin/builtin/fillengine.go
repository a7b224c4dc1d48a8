package builtin

import (
	"github.com/vybium/modbuiltin/internal/modbuiltin/core"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// BuiltinRef identifies one builtin instance's first-instance pointer,
// its runner, and the starting offset-table index to pad from — the
// three pieces of context FillMemory needs per builtin.
type BuiltinRef struct {
	Ptr    memory.Relocatable
	Runner *Runner
	Index  int
}

// FillMemory replicates the first instance's header across all
// sub-instances of each present builtin, pads its offsets table, and
// then drives the deducer to a fixpoint over both builtins' batches,
// interleaved add-first. At least one of addMod, mulMod must be
// non-nil.
func FillMemory(mem *memory.Memory, addMod, mulMod *BuiltinRef) error {
	if addMod == nil && mulMod == nil {
		return errFillMemoryNoBuiltinSet()
	}
	if addMod != nil && mulMod != nil {
		if addMod.Runner.instanceDef.WordBitLen != mulMod.Runner.instanceDef.WordBitLen {
			return errMismatchedInstanceDef()
		}
	}

	var addInputs, mulInputs Inputs
	var addN, mulN int

	if addMod != nil {
		inputs, err := readInputs(mem, addMod.Ptr, addMod.Runner.Name(), addMod.Runner.shift, addMod.Runner.instanceDef.WordBitLen)
		if err != nil {
			return err
		}
		if err := fillInputs(mem, addMod.Runner, addMod.Ptr, inputs); err != nil {
			return err
		}
		if err := fillOffsets(mem, inputs.OffsetsPtr, addMod.Index, saturatingSub(inputs.N, addMod.Index)); err != nil {
			return err
		}
		addInputs, addN = inputs, addMod.Index
	}

	if mulMod != nil {
		inputs, err := readInputs(mem, mulMod.Ptr, mulMod.Runner.Name(), mulMod.Runner.shift, mulMod.Runner.instanceDef.WordBitLen)
		if err != nil {
			return err
		}
		if err := fillInputs(mem, mulMod.Runner, mulMod.Ptr, inputs); err != nil {
			return err
		}
		if err := fillOffsets(mem, inputs.OffsetsPtr, mulMod.Index, saturatingSub(inputs.N, mulMod.Index)); err != nil {
			return err
		}
		mulInputs, mulN = inputs, mulMod.Index
	}

	// The rest of this function doesn't depend on batch_size, so either
	// present runner will do for encoding/decoding limbs.
	var modRunner *Runner
	if addMod != nil {
		modRunner = addMod.Runner
	} else {
		modRunner = mulMod.Runner
	}

	addIdx, mulIdx := 0, 0
	for addIdx < addN || mulIdx < mulN {
		if addIdx < addN {
			ok, err := fillValue(mem, modRunner.Name(), addInputs, addIdx, core.OpAdd, core.OpSub, modRunner.shift, modRunner.instanceDef.WordBitLen)
			if err != nil {
				return err
			}
			if ok {
				addIdx++
				continue
			}
		}
		if mulIdx < mulN {
			ok, err := fillValue(mem, modRunner.Name(), mulInputs, mulIdx, core.OpMul, core.OpDivMod, modRunner.shift, modRunner.instanceDef.WordBitLen)
			if err != nil {
				return err
			}
			if ok {
				mulIdx++
				continue
			}
		}
		return errCouldNotFillTable(addIdx, mulIdx)
	}
	return nil
}

// fillInputs replicates the first instance's header to every
// sub-instance implied by inputs.N / batch_size.
func fillInputs(mem *memory.Memory, runner *Runner, builtinPtr memory.Relocatable, inputs Inputs) error {
	if inputs.N > FillMemoryMax {
		return errFillMemoryMaxExceeded(runner.Name(), FillMemoryMax)
	}
	batchSize := runner.instanceDef.BatchSize
	if batchSize <= 0 || inputs.N%batchSize != 0 {
		return errSafeDivFail(inputs.N, batchSize)
	}
	nInstances := inputs.N / batchSize

	for instance := 1; instance < nInstances; instance++ {
		instancePtr := builtinPtr.Add(instance * InputCells)
		for i := 0; i < NWords; i++ {
			if err := mem.InsertAsAccessed(instancePtr.Add(i), inputs.PValues[i]); err != nil {
				return errMemory(err)
			}
		}
		if err := mem.InsertAsAccessed(instancePtr.Add(ValuesPtrOffset), inputs.ValuesPtr); err != nil {
			return errMemory(err)
		}
		if err := mem.InsertAsAccessed(instancePtr.Add(OffsetsPtrOffset), inputs.OffsetsPtr.Add(3*instance*batchSize)); err != nil {
			return errMemory(err)
		}
		remaining := saturatingSub(inputs.N, instance*batchSize)
		if err := mem.InsertAsAccessed(instancePtr.Add(NOffset), bigFromInt(remaining)); err != nil {
			return errMemory(err)
		}
	}
	return nil
}

// fillOffsets copies the first three offsets (one triple) to the end
// of the offsets table, nCopies times, starting at index.
func fillOffsets(mem *memory.Memory, offsetsPtr memory.Relocatable, index, nCopies int) error {
	if nCopies <= 0 {
		return nil
	}
	for i := 0; i < 3; i++ {
		addr := offsetsPtr.Add(i)
		cell := mem.Get(addr)
		if cell == nil {
			return errMemory(&memory.UnknownMemoryCellError{Addr: addr})
		}
		for copyI := 0; copyI < nCopies; copyI++ {
			dst := offsetsPtr.Add(3*(index+copyI) + i)
			if err := mem.InsertAsAccessed(dst, cell.Value); err != nil {
				return errMemory(err)
			}
		}
	}
	return nil
}

func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}
