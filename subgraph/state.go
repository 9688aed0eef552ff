package subgraph

import "github.com/nickrallison/svql-sub002/cellkind"

// BoundaryKind tags whether a boundary binding's haystack side is a gate or
// an external (non-gate) driver.
type BoundaryKind int

const (
	BoundaryGate BoundaryKind = iota
	BoundaryExternal
)

// BoundaryKey identifies one needle external driver: a specific pin-bit of
// a needle cell.
type BoundaryKey struct {
	Cell cellkind.CellID
	Bit  int
}

// BoundaryValue is the haystack driver a BoundaryKey is bound to.
type BoundaryValue struct {
	Cell cellkind.CellID
	Bit  int
	Kind BoundaryKind
}

// State holds the evolving partial mapping from needle cells to haystack
// cells, its inverse, and the boundary binding table for one search branch.
// It supports O(1) insert/remove of a single mapping or binding and is
// owned exclusively by the running search.
type State struct {
	forward  map[cellkind.CellID]cellkind.CellID // needle -> haystack
	inverse  map[cellkind.CellID]cellkind.CellID // haystack -> needle
	bindings map[BoundaryKey]BoundaryValue
}

// NewState returns an empty search state.
func NewState() *State {
	return &State{
		forward:  make(map[cellkind.CellID]cellkind.CellID),
		inverse:  make(map[cellkind.CellID]cellkind.CellID),
		bindings: make(map[BoundaryKey]BoundaryValue),
	}
}

// Map inserts n ↦ h. Panics if n is already mapped or h already used: both
// are caller bugs (the backtracker always checks IsUsed/MappedTo first),
// not recoverable runtime conditions.
func (s *State) Map(n, h cellkind.CellID) {
	if _, ok := s.forward[n]; ok {
		panic("subgraph: needle cell already mapped")
	}
	if _, ok := s.inverse[h]; ok {
		panic("subgraph: haystack cell already used")
	}
	s.forward[n] = h
	s.inverse[h] = n
}

// Unmap removes the n ↦ h mapping installed by a prior Map call.
func (s *State) Unmap(n, h cellkind.CellID) {
	delete(s.forward, n)
	delete(s.inverse, h)
}

// MappedTo returns the haystack cell n is mapped to, if any.
func (s *State) MappedTo(n cellkind.CellID) (cellkind.CellID, bool) {
	h, ok := s.forward[n]
	return h, ok
}

// IsUsed reports whether haystack cell h is already the image of some
// needle cell.
func (s *State) IsUsed(h cellkind.CellID) bool {
	_, ok := s.inverse[h]
	return ok
}

// Len returns the number of needle cells currently mapped.
func (s *State) Len() int { return len(s.forward) }

// Bind inserts a new boundary binding. It returns true if the binding was
// newly inserted, false if a contradicting binding already exists for key.
// Inserting an already-identical binding is a no-op that returns true.
func (s *State) Bind(key BoundaryKey, val BoundaryValue) bool {
	if existing, ok := s.bindings[key]; ok {
		return existing == val
	}
	s.bindings[key] = val
	return true
}

// Unbind idempotently removes a previously inserted binding.
func (s *State) Unbind(key BoundaryKey) {
	delete(s.bindings, key)
}

// BoundaryGet returns the current binding for key, if any.
func (s *State) BoundaryGet(key BoundaryKey) (BoundaryValue, bool) {
	v, ok := s.bindings[key]
	return v, ok
}

// snapshotMapping returns an owned copy of the forward mapping, for
// SingleAssignment construction on a completed embedding.
func (s *State) snapshotMapping() map[cellkind.CellID]cellkind.CellID {
	out := make(map[cellkind.CellID]cellkind.CellID, len(s.forward))
	for k, v := range s.forward {
		out[k] = v
	}
	return out
}

func (s *State) snapshotInverse() map[cellkind.CellID][]cellkind.CellID {
	out := make(map[cellkind.CellID][]cellkind.CellID, len(s.inverse))
	for h, n := range s.inverse {
		out[h] = []cellkind.CellID{n}
	}
	return out
}

func (s *State) snapshotBindings() map[BoundaryKey]BoundaryValue {
	out := make(map[BoundaryKey]BoundaryValue, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}
