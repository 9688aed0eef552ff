package subgraph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickrallison/svql-sub002/cellkind"
)

func TestSignatureIsSortedRegardlessOfInsertionOrder(t *testing.T) {
	st := NewState()
	st.Map(2, 30)
	st.Map(1, 10)
	st.Map(3, 20)

	a := newSingleAssignment(st, map[cellkind.CellID]bool{})
	assert.Equal(t, []cellkind.CellID{10, 20, 30}, a.Signature())
}

func TestInternalSignatureExcludesBoundaryCellsUnlessEmpty(t *testing.T) {
	st := NewState()
	st.Map(1, 10) // boundary (Input)
	st.Map(2, 20) // internal gate

	boundary := map[cellkind.CellID]bool{1: true}
	a := newSingleAssignment(st, boundary)
	assert.Equal(t, []cellkind.CellID{20}, a.InternalSignature())
}

func TestInternalSignatureFallsBackToSignatureForPureIONeedles(t *testing.T) {
	st := NewState()
	st.Map(1, 10)
	st.Map(2, 20)

	boundary := map[cellkind.CellID]bool{1: true, 2: true}
	a := newSingleAssignment(st, boundary)
	assert.Equal(t, a.Signature(), a.InternalSignature())
}

func TestGetHaystackCellAndGetNeedleCells(t *testing.T) {
	st := NewState()
	st.Map(1, 10)
	a := newSingleAssignment(st, map[cellkind.CellID]bool{})

	h, ok := a.GetHaystackCell(1)
	require.True(t, ok)
	assert.Equal(t, cellkind.CellID(10), h)

	_, ok = a.GetHaystackCell(99)
	assert.False(t, ok)

	assert.Equal(t, []cellkind.CellID{1}, a.GetNeedleCells(10))
	assert.Empty(t, a.GetNeedleCells(99))
}

func TestNeedleMappingMatchesExpectedContentsExactly(t *testing.T) {
	st := NewState()
	st.Map(1, 10)
	st.Map(2, 20)
	a := newSingleAssignment(st, map[cellkind.CellID]bool{})

	want := map[cellkind.CellID]cellkind.CellID{1: 10, 2: 20}
	if diff := cmp.Diff(want, a.NeedleMapping()); diff != "" {
		t.Errorf("NeedleMapping mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignmentSetIterAndSlice(t *testing.T) {
	as := &AssignmentSet{}
	st := NewState()
	a := newSingleAssignment(st, map[cellkind.CellID]bool{})
	as.append(a)

	assert.Equal(t, 1, as.Len())
	var seen []*SingleAssignment
	as.Iter(func(s *SingleAssignment) { seen = append(seen, s) })
	assert.Equal(t, as.Slice(), seen)
}
