// Package graphindex builds the per-design derived view the enumerator
// needs: a dense CellID space, topological ordering, kind buckets, fanin
// and fanout edges, and primary-port name maps.
package graphindex

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nickrallison/svql-sub002/cellkind"
	"github.com/nickrallison/svql-sub002/design"
)

// FaninEdge records that cell DriverCell's output bit DriverBit feeds
// SinkPin of the owning cell.
type FaninEdge struct {
	DriverCell cellkind.CellID
	DriverBit  int
	SinkPin    int
}

// FanoutEdge is the inverse of a FaninEdge: it records that the owning
// cell's output bit OutBit feeds SinkPin of SinkCell.
type FanoutEdge struct {
	SinkCell cellkind.CellID
	SinkPin  int
	OutBit   int
}

// PortUse names one (cell, pin) pair attached to a primary port name. For an
// input port it is a consuming cell and its input pin index; for an output
// port it is the driving cell and its output bit.
type PortUse struct {
	Cell cellkind.CellID
	Pin  int
}

// ConstructionError reports a malformed design discovered while building a
// GraphIndex: a cell's pin referenced a cell absent from the design, or the
// claimed topological order was violated. It always names the offending
// cell by its stable debug index and kind, per the diagnostic contract.
type ConstructionError struct {
	DebugIndex int
	Kind       cellkind.Kind
	cause      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("graphindex: cell #%d (kind %s): %s", e.DebugIndex, e.Kind, e.cause)
}

func (e *ConstructionError) Unwrap() error { return e.cause }

func newConstructionError(ref design.CellRef, kind cellkind.Kind, cause error) *ConstructionError {
	idx := -1
	if ref != nil {
		idx = ref.DebugIndex()
	}
	return &ConstructionError{DebugIndex: idx, Kind: kind, cause: cause}
}

// GraphIndex is the immutable, derived view of one Design. Once built it is
// read-only and safe to share across concurrent searches.
type GraphIndex struct {
	d design.Design

	cellsTopo []cellkind.CellID
	cellRef   []design.CellRef // CellID -> original CellRef
	kinds     []cellkind.Kind  // CellID -> Kind
	pins      [][]cellkind.Source

	cellIDMap map[int]cellkind.CellID // CellRef.DebugIndex() -> CellID

	kindBuckets map[cellkind.Kind][]cellkind.CellID

	fanin  map[cellkind.CellID][]FaninEdge
	fanout map[cellkind.CellID][]FanoutEdge

	inputFanoutByName map[string][]PortUse
	outputFaninByName map[string][]PortUse

	gateCount int
}

// New constructs a GraphIndex for d. Construction fails if a cell's pin
// references a cell the design never yielded from IterCellsTopo.
func New(d design.Design, log logrus.FieldLogger) (*GraphIndex, error) {
	if log == nil {
		log = discardLogger()
	}

	gi := &GraphIndex{
		d:                 d,
		cellIDMap:         make(map[int]cellkind.CellID),
		kindBuckets:       make(map[cellkind.Kind][]cellkind.CellID),
		fanin:             make(map[cellkind.CellID][]FaninEdge),
		fanout:            make(map[cellkind.CellID][]FanoutEdge),
		inputFanoutByName: make(map[string][]PortUse),
		outputFaninByName: make(map[string][]PortUse),
	}

	// Step 1+2: topological order, skipping Name cells; assign dense CellIDs.
	var rawPins [][]design.Source
	d.IterCellsTopo(func(ref design.CellRef) {
		k := d.CellKind(ref)
		if k == cellkind.Name {
			return
		}
		id := cellkind.CellID(len(gi.cellRef))
		gi.cellRef = append(gi.cellRef, ref)
		gi.kinds = append(gi.kinds, k)
		gi.cellsTopo = append(gi.cellsTopo, id)
		gi.cellIDMap[ref.DebugIndex()] = id
		rawPins = append(rawPins, d.Pins(ref))
		if k.IsGate() {
			gi.gateCount++
		}
	})

	// Step 3: kind buckets, ascending CellID (topological insertion order is
	// already ascending CellID order, so no extra sort is needed here, but
	// we sort defensively so the invariant holds regardless of how a
	// Design chooses to hand back cells of the same kind).
	for id, k := range gi.kinds {
		gi.kindBuckets[k] = append(gi.kindBuckets[k], cellkind.CellID(id))
	}
	for k := range gi.kindBuckets {
		sort.Slice(gi.kindBuckets[k], func(i, j int) bool {
			return gi.kindBuckets[k][i] < gi.kindBuckets[k][j]
		})
	}

	// Step 4: resolve raw pins into dense Sources, building fanin/fanout.
	gi.pins = make([][]cellkind.Source, len(rawPins))
	for sinkID, pl := range rawPins {
		resolved := make([]cellkind.Source, len(pl))
		for pinIdx, src := range pl {
			switch src.Kind {
			case design.SrcConst:
				resolved[pinIdx] = cellkind.ConstSource(src.Const)
			case design.SrcGate, design.SrcExternal:
				driverID, ok := gi.cellIDMap[src.Cell.DebugIndex()]
				if !ok {
					return nil, newConstructionError(gi.cellRef[sinkID], gi.kinds[sinkID],
						errors.Errorf("pin %d driven by unknown cell (debug index %d)", pinIdx, src.Cell.DebugIndex()))
				}
				if src.Kind == design.SrcGate {
					resolved[pinIdx] = cellkind.GateSource(driverID, src.Bit)
				} else {
					resolved[pinIdx] = cellkind.ExternalSource(driverID, src.Bit)
				}
				// Fanin/fanout track every pin connection, not just
				// gate-driven ones: a primary input's fanout and a primary
				// output's fanin are both read back out of these same maps.
				gi.fanin[cellkind.CellID(sinkID)] = append(gi.fanin[cellkind.CellID(sinkID)], FaninEdge{
					DriverCell: driverID, DriverBit: src.Bit, SinkPin: pinIdx,
				})
				gi.fanout[driverID] = append(gi.fanout[driverID], FanoutEdge{
					SinkCell: cellkind.CellID(sinkID), SinkPin: pinIdx, OutBit: src.Bit,
				})
			default:
				return nil, newConstructionError(gi.cellRef[sinkID], gi.kinds[sinkID],
					errors.Errorf("pin %d has unrecognized source kind %d", pinIdx, src.Kind))
			}
		}
		gi.pins[sinkID] = resolved
	}

	// Topological invariant check: every gate fanin driver must precede its
	// sink in cellsTopo order. CellIDs were assigned in the order the
	// Design yielded cells, so this reduces to DriverCell < sinkID whenever
	// the driver is a gate.
	for sinkID, edges := range gi.fanin {
		for _, e := range edges {
			if gi.kinds[e.DriverCell].IsGate() && e.DriverCell >= sinkID {
				return nil, newConstructionError(gi.cellRef[sinkID], gi.kinds[sinkID],
					errors.Errorf("driver cell #%d does not precede sink in topological order",
						gi.cellRef[e.DriverCell].DebugIndex()))
			}
		}
	}

	// Step 5: primary port name maps.
	for id, ref := range gi.cellRef {
		if name, ok := d.PrimaryInputName(ref); ok {
			gi.inputFanoutByName[name] = append(gi.inputFanoutByName[name], inputPortUses(gi, cellkind.CellID(id))...)
		}
		if name, ok := d.PrimaryOutputName(ref); ok {
			gi.outputFaninByName[name] = append(gi.outputFaninByName[name], outputPortUses(gi, cellkind.CellID(id))...)
		}
	}

	log.WithFields(logrus.Fields{
		"cells": len(gi.cellsTopo),
		"gates": gi.gateCount,
		"kinds": len(gi.kindBuckets),
	}).Debug("graphindex: built")

	return gi, nil
}

// inputPortUses returns the (consumer cell, consumer pin) uses of primary
// input cell id: every sink pin that takes id as a driver.
func inputPortUses(gi *GraphIndex, id cellkind.CellID) []PortUse {
	outs := gi.fanout[id]
	uses := make([]PortUse, len(outs))
	for i, e := range outs {
		uses[i] = PortUse{Cell: e.SinkCell, Pin: e.SinkPin}
	}
	return uses
}

// outputPortUses returns the (driver cell, driver output bit) uses feeding
// primary output cell id: every driver that id's own pin reads from.
func outputPortUses(gi *GraphIndex, id cellkind.CellID) []PortUse {
	ins := gi.fanin[id]
	uses := make([]PortUse, len(ins))
	for i, e := range ins {
		uses[i] = PortUse{Cell: e.DriverCell, Pin: e.DriverBit}
	}
	return uses
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// CellsTopo returns cells in topological order (Name cells excluded).
func (gi *GraphIndex) CellsTopo() []cellkind.CellID { return gi.cellsTopo }

// GateCount returns the number of gate-kind cells; the backtracker's
// termination check compares the mapping size against this.
func (gi *GraphIndex) GateCount() int { return gi.gateCount }

// Kind returns the kind of cell id.
func (gi *GraphIndex) Kind(id cellkind.CellID) cellkind.Kind { return gi.kinds[id] }

// Pins returns the resolved, dense-CellID pin list of cell id.
func (gi *GraphIndex) Pins(id cellkind.CellID) []cellkind.Source { return gi.pins[id] }

// CellRef returns the original Design CellRef backing id, for diagnostics.
func (gi *GraphIndex) CellRef(id cellkind.CellID) design.CellRef { return gi.cellRef[id] }

// KindBucket returns the ascending-CellID list of cells of kind k.
func (gi *GraphIndex) KindBucket(k cellkind.Kind) []cellkind.CellID { return gi.kindBuckets[k] }

// Fanin returns the fanin edges of cell id.
func (gi *GraphIndex) Fanin(id cellkind.CellID) []FaninEdge { return gi.fanin[id] }

// Fanout returns the fanout edges of cell id.
func (gi *GraphIndex) Fanout(id cellkind.CellID) []FanoutEdge { return gi.fanout[id] }

// InputFanoutByName returns the (cell, pin) uses of primary input name.
func (gi *GraphIndex) InputFanoutByName(name string) []PortUse { return gi.inputFanoutByName[name] }

// OutputFaninByName returns the (driver cell, driver output bit) pairs
// feeding primary output name.
func (gi *GraphIndex) OutputFaninByName(name string) []PortUse { return gi.outputFaninByName[name] }
