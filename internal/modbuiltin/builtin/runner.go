package builtin

import (
	"github.com/vybium/modbuiltin/internal/modbuiltin/codec"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// Runner is the mod-builtin's lifecycle shell: segment allocation, the
// initial stack entry the VM pushes when the builtin is included, and
// used-cell/instance accounting for the security checker and
// private-input extractor.
type Runner struct {
	builtinType BuiltinType
	instanceDef ModInstanceDef
	included    bool

	base            int
	zeroSegmentIdx  int
	zeroSegmentSize int
	stopPtr         *memory.Relocatable

	shift codec.Shift
}

// NewAddMod creates the add_mod builtin runner.
func NewAddMod(def ModInstanceDef, included bool) *Runner {
	return newRunner(def, included, Add)
}

// NewMulMod creates the mul_mod builtin runner.
func NewMulMod(def ModInstanceDef, included bool) *Runner {
	return newRunner(def, included, Mul)
}

func newRunner(def ModInstanceDef, included bool, t BuiltinType) *Runner {
	return &Runner{
		builtinType:     t,
		instanceDef:     def,
		included:        included,
		zeroSegmentSize: def.ZeroSegmentSize(),
		shift:           codec.NewShift(def.WordBitLen),
	}
}

// Name returns the builtin's registry/diagnostic name.
func (r *Runner) Name() string { return r.builtinType.Name() }

// Type returns Add or Mul.
func (r *Runner) Type() BuiltinType { return r.builtinType }

// InstanceDef returns the configuration this runner was built with.
func (r *Runner) InstanceDef() ModInstanceDef { return r.instanceDef }

// Base returns the segment index of this builtin's I/O segment.
func (r *Runner) Base() int { return r.base }

// BatchSize returns the configured batch size.
func (r *Runner) BatchSize() int { return r.instanceDef.BatchSize }

// CellsPerInstance is always InputCells for the mod builtin.
func (r *Runner) CellsPerInstance() int { return InputCells }

// InitializeSegments allocates the builtin's I/O segment and its
// zero-filled support segment.
func (r *Runner) InitializeSegments(segments *memory.SegmentManager) {
	r.base = segments.Add()
	r.zeroSegmentIdx = segments.AddZeroSegment(r.zeroSegmentSize)
}

// InitialStack returns the address pushed onto the VM's initial stack
// for this builtin, if it is included in the current layout.
func (r *Runner) InitialStack() []memory.Relocatable {
	if r.included {
		return []memory.Relocatable{{Segment: r.base, Offset: 0}}
	}
	return nil
}

// GetUsedCells returns the number of cells the VM has used in this
// builtin's segment.
func (r *Runner) GetUsedCells(segments *memory.SegmentManager) (int, error) {
	size, err := segments.GetSegmentUsedSize(r.base)
	if err != nil {
		return 0, errMemory(err)
	}
	return size, nil
}

// GetUsedInstances returns ceil(used_cells / cells_per_instance).
func (r *Runner) GetUsedInstances(segments *memory.SegmentManager) (int, error) {
	used, err := r.GetUsedCells(segments)
	if err != nil {
		return 0, err
	}
	return ceilDiv(used, r.CellsPerInstance()), nil
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}
