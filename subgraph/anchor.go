package subgraph

import (
	"sort"

	"github.com/nickrallison/svql-sub002/cellkind"
	"github.com/nickrallison/svql-sub002/graphindex"
)

// anchorCandidate records one common gate kind's bucket sizes in both
// designs, used to rank anchor choices.
type anchorCandidate struct {
	kind          cellkind.Kind
	needleCount   int
	haystackCount int
}

// chooseAnchor picks the needle CellKind whose haystack candidate set is
// smallest: primary ascending haystack count, secondary ascending integer
// cross-product of (haystackCount*otherPattern) vs
// (patternCount*otherHaystack) to avoid floating point, tertiary ascending
// CellKind for total determinism. It returns the chosen kind and its two
// anchor lists, or ok=false if no common gate kind exists.
func chooseAnchor(needle, haystack *graphindex.GraphIndex) (kind cellkind.Kind, needleAnchors, haystackAnchors []cellkind.CellID, ok bool) {
	var candidates []anchorCandidate
	for _, k := range cellkind.All() {
		if !k.IsGate() {
			continue
		}
		nb := needle.KindBucket(k)
		hb := haystack.KindBucket(k)
		if len(nb) == 0 || len(hb) == 0 {
			continue
		}
		candidates = append(candidates, anchorCandidate{kind: k, needleCount: len(nb), haystackCount: len(hb)})
	}
	if len(candidates) == 0 {
		return 0, nil, nil, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.haystackCount != b.haystackCount {
			return a.haystackCount < b.haystackCount
		}
		// Secondary: ascending (haystackCount_a * needleCount_b) vs
		// (needleCount_a * haystackCount_b), compared as integers to avoid
		// floating point.
		lhs := int64(a.haystackCount) * int64(b.needleCount)
		rhs := int64(a.needleCount) * int64(b.haystackCount)
		if lhs != rhs {
			return lhs < rhs
		}
		return a.kind < b.kind
	})

	top := candidates[0]
	return top.kind, needle.KindBucket(top.kind), haystack.KindBucket(top.kind), true
}
