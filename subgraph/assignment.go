package subgraph

import (
	"sort"

	"github.com/nickrallison/svql-sub002/cellkind"
)

// SingleAssignment is one completed embedding of a needle into a haystack:
// the full needle→haystack cell map, its inverse, and the boundary
// bindings used to produce it. It is immutable once constructed.
type SingleAssignment struct {
	needleToHaystack map[cellkind.CellID]cellkind.CellID
	haystackToNeedle map[cellkind.CellID][]cellkind.CellID
	bindings         map[BoundaryKey]BoundaryValue

	// needleIsBoundary reports, per needle cell, whether its kind is Input
	// or Output — used by InternalSignature's fallback rule.
	needleIsBoundary map[cellkind.CellID]bool
}

func newSingleAssignment(s *State, needleIsBoundary map[cellkind.CellID]bool) *SingleAssignment {
	return &SingleAssignment{
		needleToHaystack: s.snapshotMapping(),
		haystackToNeedle: s.snapshotInverse(),
		bindings:         s.snapshotBindings(),
		needleIsBoundary: needleIsBoundary,
	}
}

// GetHaystackCell returns the haystack cell needleID maps to, if any.
func (a *SingleAssignment) GetHaystackCell(needleID cellkind.CellID) (cellkind.CellID, bool) {
	h, ok := a.needleToHaystack[needleID]
	return h, ok
}

// GetNeedleCells returns the needle cells that map to haystackID. Injective
// mappings always yield a slice of length 0 or 1.
func (a *SingleAssignment) GetNeedleCells(haystackID cellkind.CellID) []cellkind.CellID {
	return a.haystackToNeedle[haystackID]
}

// NeedleMapping returns the full needle→haystack map. Callers must not
// mutate the returned map.
func (a *SingleAssignment) NeedleMapping() map[cellkind.CellID]cellkind.CellID {
	return a.needleToHaystack
}

// HaystackMapping returns the full haystack→needle-list map. Callers must
// not mutate the returned map.
func (a *SingleAssignment) HaystackMapping() map[cellkind.CellID][]cellkind.CellID {
	return a.haystackToNeedle
}

// Bindings returns the boundary bindings used to produce this assignment.
func (a *SingleAssignment) Bindings() map[BoundaryKey]BoundaryValue {
	return a.bindings
}

// Signature returns the sorted vector of haystack cell IDs in the image of
// the mapping, used as a deduplication key. Sorting (not a hash set) keeps
// the signature byte-identical across runs.
func (a *SingleAssignment) Signature() []cellkind.CellID {
	out := make([]cellkind.CellID, 0, len(a.needleToHaystack))
	for _, h := range a.needleToHaystack {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// InternalSignature restricts the image to needle cells that are neither
// Input nor Output; if that restriction is empty (a pure-I/O pattern) it
// falls back to the full Signature. It takes no needle-index argument
// because each SingleAssignment already carries its own needleIsBoundary
// set from the search that produced it.
func (a *SingleAssignment) InternalSignature() []cellkind.CellID {
	out := make([]cellkind.CellID, 0, len(a.needleToHaystack))
	for n, h := range a.needleToHaystack {
		if a.needleIsBoundary[n] {
			continue
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		return a.Signature()
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AssignmentSet is the ordered collection of SingleAssignment records
// produced by one search. Order is the backtracker's emission order,
// modulo deduplication.
type AssignmentSet struct {
	items []*SingleAssignment
}

// Len returns the number of assignments.
func (as *AssignmentSet) Len() int { return len(as.items) }

// Iter calls fn once per assignment in emission order.
func (as *AssignmentSet) Iter(fn func(*SingleAssignment)) {
	for _, a := range as.items {
		fn(a)
	}
}

// Slice returns the underlying assignment vector. Callers must not mutate
// the returned slice's backing array in a way that outlives the set.
func (as *AssignmentSet) Slice() []*SingleAssignment { return as.items }

func (as *AssignmentSet) append(a *SingleAssignment) { as.items = append(as.items, a) }
