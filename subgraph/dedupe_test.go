package subgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickrallison/svql-sub002/cellkind"
)

func assignmentWithMapping(needle []cellkind.CellID, haystack []cellkind.CellID, boundary map[cellkind.CellID]bool) *SingleAssignment {
	st := NewState()
	for i, n := range needle {
		st.Map(n, haystack[i])
	}
	return newSingleAssignment(st, boundary)
}

func TestDedupeCollapsesMatchingInternalSignatures(t *testing.T) {
	boundary := map[cellkind.CellID]bool{}
	a := assignmentWithMapping([]cellkind.CellID{1, 2}, []cellkind.CellID{10, 20}, boundary)
	b := assignmentWithMapping([]cellkind.CellID{1, 2}, []cellkind.CellID{20, 10}, boundary) // different needle order, same image
	c := assignmentWithMapping([]cellkind.CellID{1, 2}, []cellkind.CellID{10, 30}, boundary)

	in := &AssignmentSet{items: []*SingleAssignment{a, b, c}}
	out := dedupe(in)

	require.Equal(t, 2, out.Len())
	assert.Same(t, a, out.items[0]) // first-wins, order-stable
	assert.Same(t, c, out.items[1])
}

func TestDedupeIsIdempotent(t *testing.T) {
	boundary := map[cellkind.CellID]bool{}
	a := assignmentWithMapping([]cellkind.CellID{1}, []cellkind.CellID{10}, boundary)
	in := &AssignmentSet{items: []*SingleAssignment{a}}

	once := dedupe(in)
	twice := dedupe(once)
	assert.Equal(t, once.Len(), twice.Len())
	assert.Same(t, once.items[0], twice.items[0])
}

func TestSignatureKeyIsOrderSensitiveEncoding(t *testing.T) {
	assert.Equal(t, "1,2,30", signatureKey([]cellkind.CellID{1, 2, 30}))
	assert.Equal(t, "", signatureKey(nil))
}
