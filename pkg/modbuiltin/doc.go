// Package modbuiltin implements the core of a modular-arithmetic
// builtin runner (add_mod / mul_mod) for a Cairo-style virtual
// machine: guest code lays out a batch of (a, b, c) triples in a
// conventional memory layout, then the builtin deduces any missing
// operand per triple, writes the deduced values back as N_WORDS-limb
// big integers, and independently re-verifies that every triple
// satisfies `a op b == c (mod p)`.
//
// # Quick Start
//
// Wiring an add_mod builtin through one fill/verify/extract cycle:
//
//	runner := modbuiltin.NewRunner(modbuiltin.Add, modbuiltin.DefaultInstanceDef(), true)
//	segments := modbuiltin.NewSegmentManager(nil)
//	runner.InitializeSegments(segments)
//	mem := segments.Memory()
//
//	// ... guest code writes the instance header, values table, and
//	// offsets table into mem at runner.Base() ...
//
//	header := modbuiltin.Relocatable{Segment: runner.Base(), Offset: 0}
//	err := modbuiltin.FillMemory(mem, &modbuiltin.BuiltinRef{
//		Ptr: header, Runner: runner, Index: n,
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := runner.RunAdditionalSecurityChecks(segments); err != nil {
//		log.Fatal(err)
//	}
//
//	input := runner.AirPrivateInput(segments)
//
// # Architecture
//
// - pkg/modbuiltin/: public API (this package)
// - internal/modbuiltin/: memory model, limb codec, and the runner core
//
// Implementation details in internal/ can be refactored without
// breaking the public API.
//
// # Scope
//
// This package covers only the builtin's own CORE: the limb codec, the
// deduction engine, the memory-fill algorithm, the security checks, and
// private-input extraction. The hosting VM (program loading, builtin
// scheduling, Felt252 field arithmetic, hint processing) is out of
// scope and lives elsewhere.
//
// # References
//
// - Cairo whitepaper: https://eprint.iacr.org/2021/1063
package modbuiltin
