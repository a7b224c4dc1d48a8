package modbuiltin

import (
	"math/big"
	"testing"
)

// writeWords writes a value as NWords limbs of the given shift base,
// the same way a guest program would lay out an operand.
func writeWords(t *testing.T, mem *Memory, addr Relocatable, value int64, wordBitLen int) {
	t.Helper()
	base := new(big.Int).Lsh(big.NewInt(1), uint(wordBitLen))
	remaining := big.NewInt(value)
	for i := 0; i < NWords; i++ {
		limb := new(big.Int).Mod(remaining, base)
		if err := mem.InsertAsAccessed(addr.Add(i), limb); err != nil {
			t.Fatalf("insert limb %d: %v", i, err)
		}
		remaining = new(big.Int).Div(remaining, base)
	}
}

func readWords(t *testing.T, mem *Memory, addr Relocatable, wordBitLen int) *big.Int {
	t.Helper()
	base := new(big.Int).Lsh(big.NewInt(1), uint(wordBitLen))
	value := big.NewInt(0)
	power := big.NewInt(1)
	for i := 0; i < NWords; i++ {
		limb, err := mem.GetInteger(addr.Add(i))
		if err != nil {
			t.Fatalf("read limb %d: %v", i, err)
		}
		value = new(big.Int).Add(value, new(big.Int).Mul(limb, power))
		power = new(big.Int).Mul(power, base)
	}
	return value
}

func TestRunnerAddModSingleInstanceDeducesC(t *testing.T) {
	def := DefaultInstanceDef()
	runner := NewRunner(Add, def, true)
	segments := NewSegmentManager(nil)
	runner.InitializeSegments(segments)
	mem := segments.Memory()

	p := int64(97)
	base := runner.Base()
	header := Relocatable{Segment: base, Offset: 0}

	writeWords(t, mem, header, p, def.WordBitLen)

	valuesSeg := segments.Add()
	offsetsSeg := segments.Add()
	valuesPtr := Relocatable{Segment: valuesSeg, Offset: 0}
	offsetsPtr := Relocatable{Segment: offsetsSeg, Offset: 0}

	if err := mem.InsertAsAccessed(header.Add(4), valuesPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(5), offsetsPtr); err != nil {
		t.Fatal(err)
	}
	if err := mem.InsertAsAccessed(header.Add(6), big.NewInt(1)); err != nil {
		t.Fatal(err)
	}

	writeWords(t, mem, valuesPtr.Add(0), 10, def.WordBitLen)
	writeWords(t, mem, valuesPtr.Add(NWords), 20, def.WordBitLen)

	for i, off := range []int{0, NWords, 2 * NWords} {
		if err := mem.InsertAsAccessed(offsetsPtr.Add(i), big.NewInt(int64(off))); err != nil {
			t.Fatal(err)
		}
	}

	segments.SetSegmentUsedSize(base, 7)

	if err := FillMemory(mem, &BuiltinRef{Ptr: header, Runner: runner, Index: 1}, nil); err != nil {
		t.Fatalf("FillMemory: %v", err)
	}

	c := readWords(t, mem, valuesPtr.Add(2*NWords), def.WordBitLen)
	if c.Cmp(big.NewInt(30)) != 0 {
		t.Fatalf("expected c=30, got %s", c)
	}

	if err := runner.RunAdditionalSecurityChecks(segments); err != nil {
		t.Fatalf("security check failed: %v", err)
	}

	input := runner.AirPrivateInput(segments)
	if len(input.Instances) != 1 {
		t.Fatalf("expected 1 instance, got %d", len(input.Instances))
	}
	if input.Name != "add_mod_builtin" {
		t.Fatalf("unexpected name: %s", input.Name)
	}
}

func TestFillMemoryRequiresABuiltin(t *testing.T) {
	mem := NewMemory()
	err := FillMemory(mem, nil, nil)
	if err == nil {
		t.Fatal("expected an error when neither builtin is set")
	}
	var be *BuiltinError
	if ok := asBuiltinError(err, &be); !ok {
		t.Fatalf("expected a *BuiltinError, got %T", err)
	}
	if be.Code != ErrFillMemoryNoBuiltinSet {
		t.Fatalf("expected ErrFillMemoryNoBuiltinSet, got %v", be.Code)
	}
}

func asBuiltinError(err error, target **BuiltinError) bool {
	be, ok := err.(*BuiltinError)
	if !ok {
		return false
	}
	*target = be
	return true
}
