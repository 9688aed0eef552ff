// Package design defines the interface the enumerator consumes from an
// already-built netlist. Building a Design (HDL synthesis, JSON parsing,
// query-DSL rehydration) is explicitly out of scope for this module; design
// is a contract, not a construction pipeline.
package design

import "github.com/nickrallison/svql-sub002/cellkind"

// CellRef identifies one cell within a Design. It is only meaningful
// together with the Design it came from.
type CellRef interface {
	// DebugIndex is a stable, human-facing index used in diagnostics. It
	// need not be dense and need not match any CellID assigned later by a
	// GraphIndex.
	DebugIndex() int
}

// SourceKind tags which variant of Source a raw (pre-index) pin-bit driver
// is, mirroring cellkind.SourceKind one level up: before a GraphIndex
// assigns dense CellIDs, drivers are named by CellRef instead.
type SourceKind int

const (
	SrcGate SourceKind = iota
	SrcExternal
	SrcConst
)

// Source describes the driver of one input pin-bit of a cell in terms of
// the Design's own CellRef values, before a GraphIndex has assigned dense
// CellIDs. GraphIndex construction resolves these into cellkind.Source.
type Source struct {
	Kind  SourceKind
	Cell  CellRef
	Bit   int
	Const cellkind.Trit
}

// Design is an immutable collection of cells, iterable in topological
// order (drivers before sinks), with named primary inputs and outputs.
//
// Implementations must be safe for concurrent read access once built: the
// enumerator may run multiple searches over the same Design concurrently.
type Design interface {
	// IterCellsTopo calls fn once per cell in topological order (every
	// driver before its sinks). Iteration order must be deterministic
	// across repeated calls on the same Design value.
	IterCellsTopo(fn func(CellRef))

	// CellKind classifies one cell. Total over every CellRef yielded by
	// IterCellsTopo.
	CellKind(CellRef) cellkind.Kind

	// Pins returns one Source per input pin-bit of the cell, in the cell's
	// natural pin-bit order. Bus inputs are expanded to one entry per bit.
	Pins(CellRef) []Source

	// PrimaryInputName reports the primary-input port name driving this
	// cell's output, if any.
	PrimaryInputName(CellRef) (string, bool)

	// PrimaryOutputName reports the primary-output port name this cell
	// feeds, if any.
	PrimaryOutputName(CellRef) (string, bool)
}
