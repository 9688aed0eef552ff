package cellkind

import "sort"

// SourceKind tags which variant of Source a pin-bit driver is.
type SourceKind int

const (
	// SrcGate: driven by bit Bit of gate cell Cell.
	SrcGate SourceKind = iota
	// SrcExternal: driven by bit Bit of a boundary cell Cell, such as a
	// primary input or an instance.
	SrcExternal
	// SrcConst: driven by a constant logic value.
	SrcConst
)

// CellID is a dense, design-local identifier for a cell. It is not
// comparable across designs.
type CellID uint32

// Source describes the driver of one input pin-bit of a cell. It is a
// closed, three-armed discriminated union expressed as a tagged struct
// (never a class hierarchy): exactly one of (Cell, Bit) or Const is
// meaningful, selected by Kind.
type Source struct {
	Kind  SourceKind
	Cell  CellID
	Bit   int
	Const Trit
}

// GateSource builds a Source driven by a gate cell's output bit.
func GateSource(cell CellID, bit int) Source {
	return Source{Kind: SrcGate, Cell: cell, Bit: bit}
}

// ExternalSource builds a Source driven by a non-gate cell's output bit.
func ExternalSource(cell CellID, bit int) Source {
	return Source{Kind: SrcExternal, Cell: cell, Bit: bit}
}

// ConstSource builds a Source driven by a constant logic value.
func ConstSource(t Trit) Source {
	return Source{Kind: SrcConst, Const: t}
}

// stableKey orders Sources for commutative-input normalization:
// Const < External < Gate, then by cell index, then by bit. Returned as a
// plain comparable tuple rather than a hash so ordering is a total,
// deterministic sort rather than a hash-dependent one.
type stableKey struct {
	tier int
	cell CellID
	bit  int
}

func (s Source) key() stableKey {
	switch s.Kind {
	case SrcConst:
		return stableKey{tier: 0, cell: 0, bit: int(s.Const)}
	case SrcExternal:
		return stableKey{tier: 1, cell: s.Cell, bit: s.Bit}
	default: // SrcGate
		return stableKey{tier: 2, cell: s.Cell, bit: s.Bit}
	}
}

func less(a, b stableKey) bool {
	if a.tier != b.tier {
		return a.tier < b.tier
	}
	if a.cell != b.cell {
		return a.cell < b.cell
	}
	return a.bit < b.bit
}

// NormalizeCommutative sorts pins in place by a deterministic total key:
// Const < External < Gate, then cell index, then bit. The sort must not
// use an unordered container; sort.SliceStable over a plain comparison
// keeps results byte-identical across runs.
func NormalizeCommutative(pins []Source) {
	sort.SliceStable(pins, func(i, j int) bool {
		return less(pins[i].key(), pins[j].key())
	})
}
