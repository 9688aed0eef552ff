package subgraph

import (
	"github.com/nickrallison/svql-sub002/cellkind"
	"github.com/nickrallison/svql-sub002/graphindex"
)

// newBinding is a boundary binding a successful compatibility check
// requires the caller to install before recursing.
type newBinding struct {
	key BoundaryKey
	val BoundaryValue
}

// compatible decides whether mapping needle cell n to haystack cell h is
// consistent with the current state, and computes the new boundary
// bindings that mapping would imply. It is deterministic and side-effect
// free. Commutative kinds are handled by independently normalizing each
// side's pin list to the same deterministic total key and then walking
// the two canonical orders pairwise, rather than by enumerating
// permutations. A single canonical alignment is tried, not every
// structurally-valid pin permutation; see DESIGN.md for the consequence
// this has on lone symmetric-gate matches.
func compatible(n, h cellkind.CellID, needle, haystack *graphindex.GraphIndex, st *State, matchLength MatchLength) (bindings []newBinding, ok bool) {
	nk := needle.Kind(n)
	hk := haystack.Kind(h)
	if nk != hk {
		return nil, false
	}

	pPins := needle.Pins(n)
	hPins := haystack.Pins(h)
	np, nq := len(pPins), len(hPins)

	switch matchLength {
	case Exact:
		if np != nq {
			return nil, false
		}
	case NeedleSubsetHaystack, First:
		if np > nq {
			return nil, false
		}
	}
	aligned := np // only the first np haystack pins are constrained

	p := append([]cellkind.Source(nil), pPins...)
	q := append([]cellkind.Source(nil), hPins...)
	if nk.HasCommutativeInputs() {
		cellkind.NormalizeCommutative(p)
		cellkind.NormalizeCommutative(q)
	}
	q = q[:aligned]

	for i := 0; i < aligned; i++ {
		ps, qs := p[i], q[i]
		switch {
		case ps.Kind == cellkind.SrcConst && qs.Kind == cellkind.SrcConst:
			if ps.Const != qs.Const {
				return nil, false
			}

		case ps.Kind == cellkind.SrcGate && qs.Kind == cellkind.SrcGate:
			if mapped, isMapped := st.MappedTo(ps.Cell); isMapped {
				if mapped != qs.Cell || ps.Bit != qs.Bit {
					return nil, false
				}
			}
			// Otherwise: no constraint yet, the recursion maps ps.Cell later.

		case ps.Kind == cellkind.SrcExternal && (qs.Kind == cellkind.SrcExternal || qs.Kind == cellkind.SrcGate):
			key := BoundaryKey{Cell: ps.Cell, Bit: ps.Bit}
			wantKind := BoundaryGate
			if qs.Kind == cellkind.SrcExternal {
				wantKind = BoundaryExternal
			}
			want := BoundaryValue{Cell: qs.Cell, Bit: qs.Bit, Kind: wantKind}
			if existing, isBound := st.BoundaryGet(key); isBound {
				if existing != want {
					return nil, false
				}
			} else {
				bindings = append(bindings, newBinding{key: key, val: want})
			}

		default:
			return nil, false
		}
	}

	// Downstream-consumers check: for every needle consumer of n that is
	// already mapped, its haystack counterpart must consume h at the same
	// output bit.
	for _, e := range needle.Fanout(n) {
		mappedConsumer, isMapped := st.MappedTo(e.SinkCell)
		if !isMapped {
			continue
		}
		if !consumerUsesDriverAtBit(haystack, mappedConsumer, h, e.OutBit) {
			return nil, false
		}
	}

	return bindings, true
}

// consumerUsesDriverAtBit reports whether haystack cell consumer has an
// input pin driven by (driver, bit).
func consumerUsesDriverAtBit(gi *graphindex.GraphIndex, consumer, driver cellkind.CellID, bit int) bool {
	for _, e := range gi.Fanin(consumer) {
		if e.DriverCell == driver && e.DriverBit == bit {
			return true
		}
	}
	return false
}
