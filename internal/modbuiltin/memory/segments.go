package memory

import "math/big"

// MissingSegmentUsedSizesError mirrors MemoryError::MissingSegmentUsedSizes:
// raised when the runner shell asks for a segment's used size before the
// VM has finalized it.
type MissingSegmentUsedSizesError struct {
	Segment int
}

func (e *MissingSegmentUsedSizesError) Error() string {
	return "segment used sizes are not available yet"
}

// SegmentManager owns segment allocation and the bookkeeping the runner
// shell needs at lifecycle boundaries: allocating the builtin's I/O
// segment, allocating the pre-zeroed segment the proving pipeline reads
// default values from, and reporting how much of each segment is used
// once the VM has finished writing to it.
type SegmentManager struct {
	memory    *Memory
	nextIndex int
	usedSizes map[int]int
}

// NewSegmentManager creates an empty segment manager backed by mem.
func NewSegmentManager(mem *Memory) *SegmentManager {
	return &SegmentManager{
		memory:    mem,
		usedSizes: make(map[int]int),
	}
}

// Memory returns the underlying memory.
func (s *SegmentManager) Memory() *Memory {
	return s.memory
}

// Add allocates a fresh, empty segment and returns its index.
func (s *SegmentManager) Add() int {
	idx := s.nextIndex
	s.nextIndex++
	s.memory.segmentFor(idx, true)
	return idx
}

// AddZeroSegment allocates a segment of `size` cells, each pre-filled
// with the big-integer zero, and returns its index. The proving
// pipeline reads from this segment whenever it needs a default value.
func (s *SegmentManager) AddZeroSegment(size int) int {
	idx := s.Add()
	for i := 0; i < size; i++ {
		_ = s.memory.InsertAsAccessed(Relocatable{Segment: idx, Offset: i}, big.NewInt(0))
	}
	s.SetSegmentUsedSize(idx, size)
	return idx
}

// SetSegmentUsedSize records how many cells of a segment the VM
// considers used. Called by the host VM during finalization; exposed
// here so tests and the demo driver can simulate that finalization step.
func (s *SegmentManager) SetSegmentUsedSize(segment, size int) {
	s.usedSizes[segment] = size
}

// GetSegmentUsedSize returns the used size of a segment, or
// MissingSegmentUsedSizesError if it was never set.
func (s *SegmentManager) GetSegmentUsedSize(segment int) (int, error) {
	size, ok := s.usedSizes[segment]
	if !ok {
		return 0, &MissingSegmentUsedSizesError{Segment: segment}
	}
	return size, nil
}

// RelocateSegments computes the flat base offset each segment would
// occupy if all segments were laid out end to end in index order. This
// is a simplified stand-in for the VM's real relocation pass (which
// also depends on program/public-memory layout outside this builtin's
// scope) — sufficient for air_private_input's zero_value_address, which
// only needs the zero segment's relocated base.
func (s *SegmentManager) RelocateSegments() map[int]int {
	table := make(map[int]int, len(s.usedSizes))
	offset := 1 // segment 0 conventionally starts at address 1 in Cairo's relocated memory
	for idx := 0; idx < s.nextIndex; idx++ {
		table[idx] = offset
		size := s.usedSizes[idx]
		offset += size
	}
	return table
}
