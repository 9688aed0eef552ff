package subgraph

import (
	"github.com/sirupsen/logrus"

	"github.com/nickrallison/svql-sub002/cellkind"
	"github.com/nickrallison/svql-sub002/graphindex"
)

// Searcher runs one backtracking search of a needle against a haystack. It
// is single-use: construct one per FindSubgraphs call.
type Searcher struct {
	needle, haystack *graphindex.GraphIndex
	cfg              *Config
	log              logrus.FieldLogger

	needleIsBoundary map[cellkind.CellID]bool
	stopped          bool
}

// NewSearcher builds a Searcher over the given indices and configuration.
func NewSearcher(needle, haystack *graphindex.GraphIndex, cfg *Config, log logrus.FieldLogger) *Searcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	boundary := make(map[cellkind.CellID]bool)
	for _, id := range needle.CellsTopo() {
		k := needle.Kind(id)
		if k == cellkind.Input || k == cellkind.Output {
			boundary[id] = true
		}
	}
	return &Searcher{
		needle: needle, haystack: haystack, cfg: cfg, log: log,
		needleIsBoundary: boundary,
	}
}

// Run enumerates every embedding by fixing one needle anchor cell, trying
// it against every haystack candidate of the same kind, and feeding each
// surviving pair into a depth-first recursion over the rest of the needle.
func (s *Searcher) Run() *AssignmentSet {
	result := &AssignmentSet{}

	// Empty needle: one trivial assignment (empty map) under any config.
	if s.needle.GateCount() == 0 {
		st := NewState()
		result.append(newSingleAssignment(st, s.needleIsBoundary))
		return result
	}

	anchorKind, needleAnchors, haystackAnchors, ok := chooseAnchor(s.needle, s.haystack)
	if !ok {
		return result
	}

	// Seed from a single needle anchor; recurse/nextCell maps the rest of the
	// needle's gates. Looping over every needleAnchors entry here would emit
	// each embedding once per needle cell of the anchor kind.
	nAnchor := needleAnchors[0]

	st := NewState()
	for _, hAnchor := range haystackAnchors {
		if s.stopped {
			break
		}
		bindings, ok := compatible(nAnchor, hAnchor, s.needle, s.haystack, st, s.cfg.matchLength)
		if !ok {
			continue
		}
		st.Map(nAnchor, hAnchor)
		for _, b := range bindings {
			st.Bind(b.key, b.val)
		}

		s.recurse(st, result)

		for _, b := range bindings {
			st.Unbind(b.key)
		}
		st.Unmap(nAnchor, hAnchor)
	}

	s.log.WithFields(logrus.Fields{
		"anchor_kind": anchorKind,
		"emitted":     len(result.items),
	}).Debug("subgraph: search complete")

	if s.cfg.dedupe == DedupeAll {
		return dedupe(result)
	}
	return result
}

// recurse extends the partial mapping by one needle cell.
func (s *Searcher) recurse(st *State, result *AssignmentSet) {
	if s.stopped {
		return
	}
	if st.Len() == s.needle.GateCount() {
		a := newSingleAssignment(st, s.needleIsBoundary)
		result.append(a)
		if s.cfg.matchLength == First {
			// First terminates the outer anchor loop as soon as one
			// assignment survives dedup. The first assignment emitted on an
			// empty result always survives, so First halts the branch (and
			// the outer loop) immediately.
			s.stopped = true
		}
		return
	}

	p, ok := s.nextCell(st)
	if !ok {
		return
	}

	for _, q := range s.haystack.KindBucket(s.needle.Kind(p)) {
		if s.stopped {
			return
		}
		if st.IsUsed(q) {
			continue
		}
		bindings, ok := compatible(p, q, s.needle, s.haystack, st, s.cfg.matchLength)
		if !ok {
			continue
		}
		st.Map(p, q)
		for _, b := range bindings {
			st.Bind(b.key, b.val)
		}

		s.recurse(st, result)

		for _, b := range bindings {
			st.Unbind(b.key)
		}
		st.Unmap(p, q)
	}
}

// nextCell selects the smallest-indexed unmapped needle gate whose every
// gate-driver input is already mapped; if none qualifies, the
// smallest-indexed unmapped needle gate regardless.
func (s *Searcher) nextCell(st *State) (cellkind.CellID, bool) {
	fallback, hasFallback := cellkind.CellID(0), false
	for _, id := range s.needle.CellsTopo() {
		if !s.needle.Kind(id).IsGate() {
			continue
		}
		if _, mapped := st.MappedTo(id); mapped {
			continue
		}
		if !hasFallback {
			fallback, hasFallback = id, true
		}
		if s.inputsResolved(id, st) {
			return id, true
		}
	}
	return fallback, hasFallback
}

// inputsResolved reports whether every gate-driver input of needle cell id
// is already mapped.
func (s *Searcher) inputsResolved(id cellkind.CellID, st *State) bool {
	for _, e := range s.needle.Fanin(id) {
		if !s.needle.Kind(e.DriverCell).IsGate() {
			continue
		}
		if _, mapped := st.MappedTo(e.DriverCell); !mapped {
			return false
		}
	}
	return true
}
