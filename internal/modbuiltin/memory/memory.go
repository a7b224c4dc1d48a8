package memory

import (
	"fmt"
	"math/big"
)

// Value is whatever a memory cell can hold: either a big-integer field
// element (*big.Int) or a pointer into another segment (Relocatable).
// The VM's memory is untyped at the cell level; callers decide which
// shape they expect and get a typed error if the cell disagrees.
type Value interface{}

// Cell is one memory location. Accessed is set whenever
// InsertAsAccessed writes the cell, so the host VM can later tell
// which cells this builtin actually touched, for trace generation.
type Cell struct {
	Value    Value
	Accessed bool
}

// segment is a sparse, growable sequence of cells; writing an existing
// offset replaces its cell. A nil entry at
// index i means "not yet written" — the missing-vs-invalid distinction
// the limb codec depends on.
type segment struct {
	cells []*Cell
}

func (s *segment) get(offset int) *Cell {
	if offset < 0 || offset >= len(s.cells) {
		return nil
	}
	return s.cells[offset]
}

func (s *segment) set(offset int, c *Cell) {
	if offset >= len(s.cells) {
		grown := make([]*Cell, offset+1)
		copy(grown, s.cells)
		s.cells = grown
	}
	s.cells[offset] = c
}

// Memory is the builtin's view of the VM's address space: a map from
// segment index to that segment's cells.
type Memory struct {
	segments map[int]*segment
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{segments: make(map[int]*segment)}
}

func (m *Memory) segmentFor(index int, create bool) *segment {
	seg, ok := m.segments[index]
	if !ok {
		if !create {
			return nil
		}
		seg = &segment{}
		m.segments[index] = seg
	}
	return seg
}

// ExpectedIntegerError mirrors MemoryError::ExpectedInteger: the cell
// holds a Relocatable where an integer was required.
type ExpectedIntegerError struct {
	Addr Relocatable
}

func (e *ExpectedIntegerError) Error() string {
	return fmt.Sprintf("expected integer at address %s", e.Addr)
}

// UnknownMemoryCellError mirrors MemoryError::UnknownMemoryCell: the
// cell has never been written.
type UnknownMemoryCellError struct {
	Addr Relocatable
}

func (e *UnknownMemoryCellError) Error() string {
	return fmt.Sprintf("unknown memory cell at address %s", e.Addr)
}

// ExpectedRelocatableError mirrors a GetRelocatable call that finds an
// integer instead of a pointer.
type ExpectedRelocatableError struct {
	Addr Relocatable
}

func (e *ExpectedRelocatableError) Error() string {
	return fmt.Sprintf("expected relocatable at address %s", e.Addr)
}

// Get returns the cell at addr, or nil if the cell has never been set.
func (m *Memory) Get(addr Relocatable) *Cell {
	seg := m.segmentFor(addr.Segment, false)
	if seg == nil {
		return nil
	}
	return seg.get(addr.Offset)
}

// GetInteger reads addr as a big integer, failing if the cell is
// unset or holds a Relocatable.
func (m *Memory) GetInteger(addr Relocatable) (*big.Int, error) {
	cell := m.Get(addr)
	if cell == nil {
		return nil, &UnknownMemoryCellError{Addr: addr}
	}
	switch v := cell.Value.(type) {
	case *big.Int:
		return v, nil
	case Relocatable:
		return nil, &ExpectedIntegerError{Addr: addr}
	default:
		return nil, &UnknownMemoryCellError{Addr: addr}
	}
}

// GetRelocatable reads addr as a pointer into another segment.
func (m *Memory) GetRelocatable(addr Relocatable) (Relocatable, error) {
	cell := m.Get(addr)
	if cell == nil {
		return Relocatable{}, &UnknownMemoryCellError{Addr: addr}
	}
	switch v := cell.Value.(type) {
	case Relocatable:
		return v, nil
	default:
		return Relocatable{}, &ExpectedRelocatableError{Addr: addr}
	}
}

// GetUsize is GetInteger plus a convenience conversion to a
// non-negative cell count, as used for the instance header's `n` field
// and for offsets-table entries.
func (m *Memory) GetUsize(addr Relocatable) (int, error) {
	v, err := m.GetInteger(addr)
	if err != nil {
		return 0, err
	}
	if v.Sign() < 0 || !v.IsInt64() {
		return 0, fmt.Errorf("value at %s does not fit a non-negative usize: %s", addr, v.String())
	}
	return int(v.Int64()), nil
}

// InsertAsAccessed writes value at addr and marks the cell touched —
// the only write primitive the deducer and fill engine use, so the
// host VM's accounting always sees deduced cells as accessed.
func (m *Memory) InsertAsAccessed(addr Relocatable, value Value) error {
	seg := m.segmentFor(addr.Segment, true)
	if addr.Offset < 0 {
		return fmt.Errorf("negative offset in address %s", addr)
	}
	seg.set(addr.Offset, &Cell{Value: value, Accessed: true})
	return nil
}
