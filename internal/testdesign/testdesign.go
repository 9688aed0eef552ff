// Package testdesign builds small in-memory design.Design fixtures for
// tests, mirroring the incrementally-populated Package/Module pattern used
// to assemble a compilation unit one declaration at a time.
package testdesign

import (
	"github.com/nickrallison/svql-sub002/cellkind"
	"github.com/nickrallison/svql-sub002/design"
)

// CellRef is a builder-local cell reference: its position in insertion
// order doubles as its debug index and its topological rank. Callers
// insert drivers before sinks.
type CellRef struct {
	idx int
}

// DebugIndex implements design.CellRef.
func (r CellRef) DebugIndex() int { return r.idx }

type cellEntry struct {
	kind       cellkind.Kind
	pins       []design.Source
	inputName  string
	hasInput   bool
	outputName string
	hasOutput  bool
}

// Builder accumulates cells in topological order and yields a design.Design.
// It is not safe for concurrent use while building; the Design it produces
// is immutable once Build is called.
type Builder struct {
	cells []cellEntry
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Add appends a cell of the given kind with the given input pins, returning
// a CellRef other Add calls use to wire it as a driver. Callers must add
// every driver before any cell that consumes it.
func (b *Builder) Add(kind cellkind.Kind, pins ...design.Source) CellRef {
	ref := CellRef{idx: len(b.cells)}
	b.cells = append(b.cells, cellEntry{kind: kind, pins: pins})
	return ref
}

// Input adds a primary-input cell named name and returns its CellRef. Input
// cells have no input pins of their own.
func (b *Builder) Input(name string) CellRef {
	ref := b.Add(cellkind.Input)
	b.cells[ref.idx].inputName = name
	b.cells[ref.idx].hasInput = true
	return ref
}

// Output adds a primary-output cell named name, driven by pin. Output
// cells have exactly one input pin: the value they expose.
func (b *Builder) Output(name string, pin design.Source) CellRef {
	ref := b.Add(cellkind.Output, pin)
	b.cells[ref.idx].outputName = name
	b.cells[ref.idx].hasOutput = true
	return ref
}

// Gate is shorthand for a non-I/O gate cell driven by pins.
func (b *Builder) Gate(kind cellkind.Kind, pins ...design.Source) CellRef {
	return b.Add(kind, pins...)
}

// FromGate builds a gate-driven Source: bit Bit of ref's output.
func FromGate(ref CellRef, bit int) design.Source {
	return design.Source{Kind: design.SrcGate, Cell: ref, Bit: bit}
}

// FromExternal builds an external-driven Source: bit Bit of ref's output,
// where ref is a boundary cell (an Input, or an Instance/IoBuf boundary).
func FromExternal(ref CellRef, bit int) design.Source {
	return design.Source{Kind: design.SrcExternal, Cell: ref, Bit: bit}
}

// FromConst builds a constant-driven Source.
func FromConst(t cellkind.Trit) design.Source {
	return design.Source{Kind: design.SrcConst, Const: t}
}

// Build finalizes the Builder into a design.Design.
func (b *Builder) Build() design.Design {
	cells := make([]cellEntry, len(b.cells))
	copy(cells, b.cells)
	return &builtDesign{cells: cells}
}

// builtDesign is the design.Design implementation returned by Builder.Build.
// It is immutable and safe for concurrent reads.
type builtDesign struct {
	cells []cellEntry
}

func (d *builtDesign) IterCellsTopo(fn func(design.CellRef)) {
	for i := range d.cells {
		fn(CellRef{idx: i})
	}
}

func (d *builtDesign) CellKind(ref design.CellRef) cellkind.Kind {
	return d.cells[ref.(CellRef).idx].kind
}

func (d *builtDesign) Pins(ref design.CellRef) []design.Source {
	return d.cells[ref.(CellRef).idx].pins
}

func (d *builtDesign) PrimaryInputName(ref design.CellRef) (string, bool) {
	e := d.cells[ref.(CellRef).idx]
	return e.inputName, e.hasInput
}

func (d *builtDesign) PrimaryOutputName(ref design.CellRef) (string, bool) {
	e := d.cells[ref.(CellRef).idx]
	return e.outputName, e.hasOutput
}
