package subgraph

import (
	"strconv"
	"strings"

	"github.com/nickrallison/svql-sub002/cellkind"
)

// signatureKey turns a sorted CellID signature into a comparable string key.
// Signatures are sorted fixed-width integer vectors; concatenating them
// with a separator that cannot appear in a decimal CellID keeps the key
// collision-free without reaching for an unordered container or a
// non-deterministic hash.
func signatureKey(sig []cellkind.CellID) string {
	var b strings.Builder
	for i, id := range sig {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// dedupe collapses assignments whose internal signature collides, keeping
// the first emitted per key. Order is preserved for survivors
// (order-stable: the first assignment wins).
func dedupe(in *AssignmentSet) *AssignmentSet {
	out := &AssignmentSet{}
	seen := make(map[string]struct{}, len(in.items))
	for _, a := range in.items {
		key := signatureKey(a.InternalSignature())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.append(a)
	}
	return out
}
