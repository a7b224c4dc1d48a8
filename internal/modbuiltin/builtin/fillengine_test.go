package builtin

import (
	"math/big"
	"testing"

	"github.com/vybium/modbuiltin/internal/modbuiltin/codec"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

const testWordBitLen = 96

func writeLimbs(t *testing.T, mem *memory.Memory, addr memory.Relocatable, value int64) {
	t.Helper()
	shift := codec.NewShift(testWordBitLen)
	if err := codec.WriteNWordsValue(mem, addr, big.NewInt(value), "test", shift); err != nil {
		t.Fatal(err)
	}
}

func readLimbs(t *testing.T, mem *memory.Memory, addr memory.Relocatable) *big.Int {
	t.Helper()
	shift := codec.NewShift(testWordBitLen)
	_, value, err := codec.ReadNWordsValue(mem, addr, testWordBitLen, shift)
	if err != nil {
		t.Fatal(err)
	}
	if value == nil {
		t.Fatal("expected a fully written value")
	}
	return value
}

// newSingleInstance lays out one add_mod or mul_mod instance with two
// known operands and the third left blank, the way a guest program
// would set up a single-triple builtin call.
func newSingleInstance(t *testing.T, typ BuiltinType, p, a, b int64, knownC bool, c int64) (*memory.SegmentManager, *Runner, memory.Relocatable) {
	t.Helper()
	def := DefaultModInstanceDef()
	var runner *Runner
	if typ == Mul {
		runner = NewMulMod(def, true)
	} else {
		runner = NewAddMod(def, true)
	}
	segments := memory.NewSegmentManager(memory.NewMemory())
	runner.InitializeSegments(segments)
	mem := segments.Memory()

	header := memory.Relocatable{Segment: runner.Base(), Offset: 0}
	writeLimbs(t, mem, header, p)

	valuesSeg := segments.Add()
	offsetsSeg := segments.Add()
	valuesPtr := memory.Relocatable{Segment: valuesSeg, Offset: 0}
	offsetsPtr := memory.Relocatable{Segment: offsetsSeg, Offset: 0}

	if err := mem.InsertAsAccessed(header.Add(ValuesPtrOffset), valuesPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(OffsetsPtrOffset), offsetsPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(NOffset), bigFromInt(1)); err != nil {
		t.Fatal(err)
	}

	writeLimbs(t, mem, valuesPtr.Add(0), a)
	writeLimbs(t, mem, valuesPtr.Add(NWords), b)
	if knownC {
		writeLimbs(t, mem, valuesPtr.Add(2*NWords), c)
	}

	for i, off := range []int{0, NWords, 2 * NWords} {
		if err := mem.InsertAsAccessed(offsetsPtr.Add(i), bigFromInt(off)); err != nil {
			t.Fatal(err)
		}
	}

	segments.SetSegmentUsedSize(runner.Base(), InputCells)
	return segments, runner, valuesPtr
}

func TestFillMemoryAddModDeducesC(t *testing.T) {
	segments, runner, valuesPtr := newSingleInstance(t, Add, 97, 10, 20, false, 0)
	header := memory.Relocatable{Segment: runner.Base(), Offset: 0}

	if err := FillMemory(segments.Memory(), &BuiltinRef{Ptr: header, Runner: runner, Index: 1}, nil); err != nil {
		t.Fatalf("FillMemory: %v", err)
	}

	c := readLimbs(t, segments.Memory(), valuesPtr.Add(2*NWords))
	if c.Int64() != 30 {
		t.Errorf("c = %s, want 30", c)
	}
}

func TestFillMemoryMulModDeducesA(t *testing.T) {
	def := DefaultModInstanceDef()
	runner := NewMulMod(def, true)
	segments := memory.NewSegmentManager(memory.NewMemory())
	runner.InitializeSegments(segments)
	mem := segments.Memory()

	header := memory.Relocatable{Segment: runner.Base(), Offset: 0}
	writeLimbs(t, mem, header, 97)

	valuesSeg := segments.Add()
	offsetsSeg := segments.Add()
	valuesPtr := memory.Relocatable{Segment: valuesSeg, Offset: 0}
	offsetsPtr := memory.Relocatable{Segment: offsetsSeg, Offset: 0}

	if err := mem.InsertAsAccessed(header.Add(ValuesPtrOffset), valuesPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(OffsetsPtrOffset), offsetsPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(NOffset), bigFromInt(1)); err != nil {
		t.Fatal(err)
	}

	// a is left unwritten; b=5, c=35 => a = 35 * 5^-1 mod 97 = 7
	writeLimbs(t, mem, valuesPtr.Add(NWords), 5)
	writeLimbs(t, mem, valuesPtr.Add(2*NWords), 35)

	for i, off := range []int{0, NWords, 2 * NWords} {
		if err := mem.InsertAsAccessed(offsetsPtr.Add(i), bigFromInt(off)); err != nil {
			t.Fatal(err)
		}
	}
	segments.SetSegmentUsedSize(runner.Base(), InputCells)

	if err := FillMemory(mem, nil, &BuiltinRef{Ptr: header, Runner: runner, Index: 1}); err != nil {
		t.Fatalf("FillMemory: %v", err)
	}

	a := readLimbs(t, mem, valuesPtr.Add(0))
	if a.Int64() != 7 {
		t.Errorf("a = %s, want 7", a)
	}
}

func TestFillMemoryNeitherBuiltinSet(t *testing.T) {
	mem := memory.NewMemory()
	err := FillMemory(mem, nil, nil)
	be, ok := err.(*BuiltinError)
	if !ok {
		t.Fatalf("expected *BuiltinError, got %T", err)
	}
	if be.Code != ErrFillMemoryNoBuiltinSet {
		t.Errorf("code = %v, want ErrFillMemoryNoBuiltinSet", be.Code)
	}
}

func TestFillMemoryMismatchedInstanceDef(t *testing.T) {
	addDef := ModInstanceDef{WordBitLen: 96, BatchSize: 1}
	mulDef := ModInstanceDef{WordBitLen: 64, BatchSize: 1}
	addRunner := NewAddMod(addDef, true)
	mulRunner := NewMulMod(mulDef, true)
	segments := memory.NewSegmentManager(memory.NewMemory())
	addRunner.InitializeSegments(segments)
	mulRunner.InitializeSegments(segments)

	err := FillMemory(segments.Memory(),
		&BuiltinRef{Ptr: memory.Relocatable{Segment: addRunner.Base()}, Runner: addRunner, Index: 0},
		&BuiltinRef{Ptr: memory.Relocatable{Segment: mulRunner.Base()}, Runner: mulRunner, Index: 0})
	be, ok := err.(*BuiltinError)
	if !ok {
		t.Fatalf("expected *BuiltinError, got %T", err)
	}
	if be.Code != ErrModBuiltinsMismatchedInstanceDef {
		t.Errorf("code = %v, want ErrModBuiltinsMismatchedInstanceDef", be.Code)
	}
}

func TestFillMemoryReplicatesHeaderAcrossInstances(t *testing.T) {
	def := ModInstanceDef{WordBitLen: testWordBitLen, BatchSize: 1}
	runner := NewAddMod(def, true)
	segments := memory.NewSegmentManager(memory.NewMemory())
	runner.InitializeSegments(segments)
	mem := segments.Memory()

	header := memory.Relocatable{Segment: runner.Base(), Offset: 0}
	writeLimbs(t, mem, header, 97)

	valuesSeg := segments.Add()
	offsetsSeg := segments.Add()
	valuesPtr := memory.Relocatable{Segment: valuesSeg, Offset: 0}
	offsetsPtr := memory.Relocatable{Segment: offsetsSeg, Offset: 0}

	if err := mem.InsertAsAccessed(header.Add(ValuesPtrOffset), valuesPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(OffsetsPtrOffset), offsetsPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(NOffset), bigFromInt(2)); err != nil {
		t.Fatal(err)
	}

	writeLimbs(t, mem, valuesPtr.Add(0), 10)
	writeLimbs(t, mem, valuesPtr.Add(NWords), 20)
	writeLimbs(t, mem, valuesPtr.Add(2*NWords), 30)
	writeLimbs(t, mem, valuesPtr.Add(3*NWords), 5)
	writeLimbs(t, mem, valuesPtr.Add(4*NWords), 6)

	for i, off := range []int{0, NWords, 2 * NWords, 3 * NWords, 4 * NWords, 5 * NWords} {
		if err := mem.InsertAsAccessed(offsetsPtr.Add(i), bigFromInt(off)); err != nil {
			t.Fatal(err)
		}
	}
	segments.SetSegmentUsedSize(runner.Base(), 2*InputCells)

	if err := FillMemory(mem, &BuiltinRef{Ptr: header, Runner: runner, Index: 2}, nil); err != nil {
		t.Fatalf("FillMemory: %v", err)
	}

	secondHeader := header.Add(InputCells)
	n, err := mem.GetUsize(secondHeader.Add(NOffset))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("second instance n = %d, want 1", n)
	}

	c := readLimbs(t, mem, valuesPtr.Add(5*NWords))
	if c.Int64() != 11 {
		t.Errorf("second triple c = %s, want 11", c)
	}

	if err := runner.RunAdditionalSecurityChecks(segments); err != nil {
		t.Fatalf("security check: %v", err)
	}
}
