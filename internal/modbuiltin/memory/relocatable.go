// Package memory provides the relocatable-address memory model the
// builtin runner reads and writes through: a dedicated address type
// rather than raw integers (offset-only arithmetic; cross-segment
// subtraction is undefined and not exposed), a segment-indexed cell
// store, and the segment-manager capabilities the runner shell needs
// for lifecycle (add, add_zero_segment, used size, relocation).
package memory

import "fmt"

// Relocatable is a two-part address: a segment index and a byte/cell
// offset within that segment. Addition is defined only on the offset;
// the host VM resolves segment indices to flat addresses only at
// relocation time (RelocateSegments), which this package models but
// does not perform arithmetic across.
type Relocatable struct {
	Segment int
	Offset  int
}

// Add returns the relocatable offset by delta cells within the same segment.
func (r Relocatable) Add(delta int) Relocatable {
	return Relocatable{Segment: r.Segment, Offset: r.Offset + delta}
}

// String renders the address the way Cairo VM diagnostics do.
func (r Relocatable) String() string {
	return fmt.Sprintf("%d:%d", r.Segment, r.Offset)
}
