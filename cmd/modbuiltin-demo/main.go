package main

import (
	"fmt"
	"log"
	"math/big"

	"github.com/vybium/modbuiltin/pkg/modbuiltin"
)

// modbuiltin-demo builds one add_mod and one mul_mod instance whose
// triples cross-reference each other through a shared values table:
// mul_mod produces a value that add_mod consumes as an operand. This
// exercises FillMemory's interleaved add-then-mul deduction loop, which
// must make progress on the mul side first before the add side can
// unblock.

func main() {
	fmt.Println("=== mod-builtin demo: interleaved add_mod + mul_mod ===")

	def := modbuiltin.DefaultInstanceDef()
	p := new(big.Int)
	p.SetString("57896044618658097711785492504343953926634992332820282019728792003956564819949", 10) // 2^255 - 19

	addRunner := modbuiltin.NewRunner(modbuiltin.Add, def, true)
	mulRunner := modbuiltin.NewRunner(modbuiltin.Mul, def, true)
	segments := modbuiltin.NewSegmentManager(nil)
	addRunner.InitializeSegments(segments)
	mulRunner.InitializeSegments(segments)
	mem := segments.Memory()

	addHeader := modbuiltin.Relocatable{Segment: addRunner.Base(), Offset: 0}
	mulHeader := modbuiltin.Relocatable{Segment: mulRunner.Base(), Offset: 0}
	writeWords(mem, addHeader, p, def.WordBitLen)
	writeWords(mem, mulHeader, p, def.WordBitLen)

	valuesSeg := segments.Add()
	addOffsetsSeg := segments.Add()
	mulOffsetsSeg := segments.Add()
	valuesPtr := modbuiltin.Relocatable{Segment: valuesSeg, Offset: 0}
	addOffsetsPtr := modbuiltin.Relocatable{Segment: addOffsetsSeg, Offset: 0}
	mulOffsetsPtr := modbuiltin.Relocatable{Segment: mulOffsetsSeg, Offset: 0}

	must(mem.InsertAsAccessed(addHeader.Add(4), valuesPtr))
	must(mem.InsertAsAccessed(addHeader.Add(5), addOffsetsPtr))
	must(mem.InsertAsAccessed(addHeader.Add(6), big.NewInt(1)))
	must(mem.InsertAsAccessed(mulHeader.Add(4), valuesPtr))
	must(mem.InsertAsAccessed(mulHeader.Add(5), mulOffsetsPtr))
	must(mem.InsertAsAccessed(mulHeader.Add(6), big.NewInt(1)))

	// Shared values table layout (NWords limbs per slot):
	//   slot 0: mul's a = 5
	//   slot 1: mul's b = 3
	//   slot 2: mul's c (unknown) — also add's a
	//   slot 3: add's b = 100
	//   slot 4: add's c (unknown)
	n := modbuiltin.NWords
	writeWords(mem, valuesPtr.Add(0*n), big.NewInt(5), def.WordBitLen)
	writeWords(mem, valuesPtr.Add(1*n), big.NewInt(3), def.WordBitLen)
	writeWords(mem, valuesPtr.Add(3*n), big.NewInt(100), def.WordBitLen)

	for i, off := range []int{0 * n, 1 * n, 2 * n} {
		must(mem.InsertAsAccessed(mulOffsetsPtr.Add(i), big.NewInt(int64(off))))
	}
	for i, off := range []int{2 * n, 3 * n, 4 * n} {
		must(mem.InsertAsAccessed(addOffsetsPtr.Add(i), big.NewInt(int64(off))))
	}

	segments.SetSegmentUsedSize(addRunner.Base(), 7)
	segments.SetSegmentUsedSize(mulRunner.Base(), 7)

	fmt.Println("✓ Instances laid out: mul(5, 3) -> ?, add(?, 100) -> ? sharing the mul result")

	err := modbuiltin.FillMemory(mem,
		&modbuiltin.BuiltinRef{Ptr: addHeader, Runner: addRunner, Index: 1},
		&modbuiltin.BuiltinRef{Ptr: mulHeader, Runner: mulRunner, Index: 1})
	if err != nil {
		log.Fatalf("FillMemory failed: %v", err)
	}

	mulC := readWords(mem, valuesPtr.Add(2*n), def.WordBitLen)
	addC := readWords(mem, valuesPtr.Add(4*n), def.WordBitLen)
	fmt.Printf("✓ mul_mod produced %s, add_mod consumed it and produced %s\n", mulC, addC)

	if err := addRunner.RunAdditionalSecurityChecks(segments); err != nil {
		log.Fatalf("add_mod security check failed: %v", err)
	}
	if err := mulRunner.RunAdditionalSecurityChecks(segments); err != nil {
		log.Fatalf("mul_mod security check failed: %v", err)
	}
	fmt.Println("✓ Both builtins passed their independent security checks")

	addInput := addRunner.AirPrivateInput(segments)
	mulInput := mulRunner.AirPrivateInput(segments)
	fmt.Printf("✓ Private input extracted: %s has %d instance(s), %s has %d instance(s)\n",
		addInput.Name, len(addInput.Instances), mulInput.Name, len(mulInput.Instances))
}

func writeWords(mem *modbuiltin.Memory, addr modbuiltin.Relocatable, value *big.Int, wordBitLen int) {
	base := new(big.Int).Lsh(big.NewInt(1), uint(wordBitLen))
	remaining := new(big.Int).Set(value)
	for i := 0; i < modbuiltin.NWords; i++ {
		limb := new(big.Int).Mod(remaining, base)
		must(mem.InsertAsAccessed(addr.Add(i), limb))
		remaining = new(big.Int).Div(remaining, base)
	}
}

func readWords(mem *modbuiltin.Memory, addr modbuiltin.Relocatable, wordBitLen int) *big.Int {
	base := new(big.Int).Lsh(big.NewInt(1), uint(wordBitLen))
	value := big.NewInt(0)
	power := big.NewInt(1)
	for i := 0; i < modbuiltin.NWords; i++ {
		limb, err := mem.GetInteger(addr.Add(i))
		if err != nil {
			log.Fatalf("read limb %d: %v", i, err)
		}
		value = new(big.Int).Add(value, new(big.Int).Mul(limb, power))
		power = new(big.Int).Mul(power, base)
	}
	return value
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
