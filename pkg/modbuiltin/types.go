package modbuiltin

import (
	"github.com/vybium/modbuiltin/internal/modbuiltin/builtin"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// Relocatable is a (segment, offset) memory address.
type Relocatable = memory.Relocatable

// Memory is the builtin's view of VM address space.
type Memory = memory.Memory

// NewMemory creates an empty memory.
func NewMemory() *Memory { return memory.NewMemory() }

// SegmentManager owns segment allocation and used-size bookkeeping.
type SegmentManager = memory.SegmentManager

// NewSegmentManager creates a segment manager backed by mem. If mem is
// nil, a fresh empty Memory is allocated.
func NewSegmentManager(mem *Memory) *SegmentManager {
	if mem == nil {
		mem = NewMemory()
	}
	return memory.NewSegmentManager(mem)
}

// BuiltinType selects which algebraic operation a runner deduces with.
type BuiltinType = builtin.BuiltinType

const (
	Add = builtin.Add
	Mul = builtin.Mul
)

// ModInstanceDef is the per-builtin configuration the VM supplies.
type ModInstanceDef = builtin.ModInstanceDef

// DefaultInstanceDef returns Cairo's default add_mod/mul_mod
// configuration: 96-bit words, batch_size 1.
func DefaultInstanceDef() ModInstanceDef {
	return builtin.DefaultModInstanceDef()
}

// Runner is the mod-builtin's lifecycle shell: segment allocation,
// initial-stack entry, used-cell/instance accounting, and the
// additional-security-check and private-input entry points.
type Runner = builtin.Runner

// NewRunner creates a runner for the given builtin type.
func NewRunner(t BuiltinType, def ModInstanceDef, included bool) *Runner {
	if t == Mul {
		return builtin.NewMulMod(def, included)
	}
	return builtin.NewAddMod(def, included)
}

// BuiltinRef identifies one builtin instance's first-instance pointer,
// its runner, and the offset-table index to pad from.
type BuiltinRef = builtin.BuiltinRef

// FillMemory replicates the first instance's header across all
// sub-instances of each present builtin, pads its offsets table, and
// drives the deducer to a fixpoint over both builtins' batches. At
// least one of addMod, mulMod must be non-nil.
func FillMemory(mem *Memory, addMod, mulMod *BuiltinRef) error {
	return builtin.FillMemory(mem, addMod, mulMod)
}

// MemoryVars is the per-batch-entry payload the prover needs.
type MemoryVars = builtin.MemoryVars

// InstanceInput is one instance's serialized contribution to the
// private input.
type InstanceInput = builtin.InstanceInput

// PrivateInput is the full air-private-input payload for one runner.
type PrivateInput = builtin.PrivateInput

// NWords is the fixed limb count every value is encoded/decoded with.
const NWords = builtin.NWords
