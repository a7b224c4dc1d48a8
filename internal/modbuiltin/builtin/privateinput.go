package builtin

import (
	"math/big"
	"sort"

	"github.com/vybium/modbuiltin/internal/modbuiltin/codec"
	"github.com/vybium/modbuiltin/internal/modbuiltin/diag"
	"github.com/vybium/modbuiltin/internal/modbuiltin/memory"
)

// MemoryVars is the per-batch-entry payload the prover needs: the
// offsets into the values table plus the decoded limbs of a, b, c.
type MemoryVars struct {
	AOffset, BOffset, COffset int
	A, B, C                   [codec.NWords]*big.Int
}

// InstanceInput is one instance's serialized contribution to the
// private input.
type InstanceInput struct {
	Index      int
	P          [codec.NWords]*big.Int
	ValuesPtr  memory.Relocatable
	OffsetsPtr memory.Relocatable
	N          int
	Batch      map[int]MemoryVars
}

// PrivateInput is the full air-private-input payload for one runner:
// every instance's header plus its batch's memory variables, and the
// relocated address of the zero segment. Digest fingerprints the
// serialized payload so two extractions can be compared cheaply
// without diffing the full structure.
type PrivateInput struct {
	Name             string
	Instances        []InstanceInput
	ZeroValueAddress int
	Digest           [32]byte
}

// AirPrivateInput serializes every instance's inputs and per-batch
// memory variables for the prover. Reads are tolerant — a missing cell
// yields zero limbs rather than an error: this extractor is best-effort
// introspection, not verification (that's RunAdditionalSecurityChecks's
// job), and the prover's own constraints reject a genuinely-incomplete
// instance.
func (r *Runner) AirPrivateInput(segments *memory.SegmentManager) PrivateInput {
	mem := segments.Memory()
	segmentSize, _ := segments.GetSegmentUsedSize(r.base)

	var instances []InstanceInput
	nInstances := segmentSize / InputCells
	for instance := 0; instance < nInstances; instance++ {
		base := memory.Relocatable{Segment: r.base, Offset: instance * InputCells}

		valuesPtr, _ := mem.GetRelocatable(base.Add(ValuesPtrOffset))
		offsetsPtr, _ := mem.GetRelocatable(base.Add(OffsetsPtrOffset))
		n, _ := mem.GetUsize(base.Add(NOffset))

		var pValues [codec.NWords]*big.Int
		for i := 0; i < NWords; i++ {
			v, err := mem.GetInteger(base.Add(i))
			if err != nil {
				v = big.NewInt(0)
			}
			pValues[i] = v
		}

		fetch := func(varIndex, indexInBatch int) (int, [codec.NWords]*big.Int) {
			offset, err := mem.GetUsize(offsetsPtr.Add(3*indexInBatch + varIndex))
			if err != nil {
				offset = 0
			}
			var words [codec.NWords]*big.Int
			for i := 0; i < NWords; i++ {
				v, err := mem.GetInteger(valuesPtr.Add(offset + i))
				if err != nil {
					v = big.NewInt(0)
				}
				words[i] = v
			}
			return offset, words
		}

		batch := make(map[int]MemoryVars, r.instanceDef.BatchSize)
		for indexInBatch := 0; indexInBatch < r.instanceDef.BatchSize; indexInBatch++ {
			aOffset, aValues := fetch(0, indexInBatch)
			bOffset, bValues := fetch(1, indexInBatch)
			cOffset, cValues := fetch(2, indexInBatch)
			batch[indexInBatch] = MemoryVars{
				AOffset: aOffset, BOffset: bOffset, COffset: cOffset,
				A: aValues, B: bValues, C: cValues,
			}
		}

		instances = append(instances, InstanceInput{
			Index:      instance,
			P:          pValues,
			ValuesPtr:  valuesPtr,
			OffsetsPtr: offsetsPtr,
			N:          n,
			Batch:      batch,
		})
	}

	relocation := segments.RelocateSegments()
	zeroAddr := relocation[r.zeroSegmentIdx]

	return PrivateInput{
		Name:             r.Name(),
		Instances:        instances,
		ZeroValueAddress: zeroAddr,
		Digest:           digestInstances(instances, zeroAddr),
	}
}

// digestInstances flattens every instance's header and batch limbs, in
// instance/sorted-batch-index order, into the sequence diag.Digest
// hashes. The zero address is folded in too, so a relocation change is
// also visible in the fingerprint.
func digestInstances(instances []InstanceInput, zeroAddr int) [32]byte {
	var flat []*big.Int
	for _, inst := range instances {
		flat = append(flat, inst.P[:]...)
		for _, idx := range inst.SortedBatchIndices() {
			v := inst.Batch[idx]
			flat = append(flat, v.A[:]...)
			flat = append(flat, v.B[:]...)
			flat = append(flat, v.C[:]...)
		}
	}
	flat = append(flat, big.NewInt(int64(zeroAddr)))
	return diag.Digest(flat)
}

// SortedBatchIndices returns the batch map's keys in ascending order,
// a small convenience for deterministic serialization/printing.
func (pi InstanceInput) SortedBatchIndices() []int {
	keys := make([]int, 0, len(pi.Batch))
	for k := range pi.Batch {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
