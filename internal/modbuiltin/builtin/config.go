// Package builtin implements the mod-builtin runner core: the input
// reader, memory-var reader, deducer, fill engine, security checker,
// private-input extractor, and runner shell for the add_mod/mul_mod
// builtins.
package builtin

// Fixed layout constants, bit-exact with the rest of the toolchain.
const (
	InputCells       = 7
	ValuesPtrOffset  = 4
	OffsetsPtrOffset = 5
	NOffset          = 6
	// NWords duplicates codec.NWords at this layer so callers that only
	// need the header layout don't have to import the codec package.
	NWords = 4

	// FillMemoryMax bounds the number of operations a single fill_memory
	// call will process per builtin, as a DoS ceiling.
	FillMemoryMax = 100_000
)

// BuiltinType selects which algebraic operation (and its inverse) a
// runner instance deduces with.
type BuiltinType int

const (
	Add BuiltinType = iota
	Mul
)

// Name returns the builtin's registry/diagnostic name.
func (t BuiltinType) Name() string {
	switch t {
	case Add:
		return "add_mod_builtin"
	case Mul:
		return "mul_mod_builtin"
	default:
		return "unknown_mod_builtin"
	}
}

// ModInstanceDef is the per-builtin configuration the VM supplies:
// how wide a word is, how many operations share one instance header,
// and the VM step ratio the runner shell reports but never interprets.
type ModInstanceDef struct {
	WordBitLen int
	BatchSize  int
	Ratio      *uint32
}

// DefaultModInstanceDef returns the configuration Cairo's add_mod/mul_mod
// builtins use in practice: 96-bit words (so 4 limbs cover a 384-bit
// range, comfortably wider than any 252-bit Cairo prime) and a batch of
// one operation per instance.
func DefaultModInstanceDef() ModInstanceDef {
	return ModInstanceDef{
		WordBitLen: 96,
		BatchSize:  1,
		Ratio:      nil,
	}
}

// ZeroSegmentSize is max(N_WORDS, 3*batch_size): the zero segment must
// be large enough to serve either a full limb-set or a full offsets
// triple for every operation in a batch.
func (d ModInstanceDef) ZeroSegmentSize() int {
	size := 3 * d.BatchSize
	if NWords > size {
		return NWords
	}
	return size
}
