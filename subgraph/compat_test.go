package subgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickrallison/svql-sub002/cellkind"
	"github.com/nickrallison/svql-sub002/graphindex"
	"github.com/nickrallison/svql-sub002/internal/testdesign"
)

func TestCompatibleRejectsMismatchedKinds(t *testing.T) {
	needle := testdesign.New()
	na := needle.Input("a")
	nb := needle.Input("b")
	needle.Gate(cellkind.And, testdesign.FromExternal(na, 0), testdesign.FromExternal(nb, 0))

	haystack := testdesign.New()
	ha := haystack.Input("a")
	hb := haystack.Input("b")
	haystack.Gate(cellkind.Or, testdesign.FromExternal(ha, 0), testdesign.FromExternal(hb, 0))

	nIdx, err := graphindex.New(needle.Build(), nil)
	require.NoError(t, err)
	hIdx, err := graphindex.New(haystack.Build(), nil)
	require.NoError(t, err)

	st := NewState()
	_, ok := compatible(nIdx.KindBucket(cellkind.And)[0], hIdx.KindBucket(cellkind.Or)[0], nIdx, hIdx, st, Exact)
	assert.False(t, ok)
}

func TestCompatibleExactRejectsPinCountMismatchButSubsetAccepts(t *testing.T) {
	needle := testdesign.New()
	na := needle.Input("a")
	needle.Gate(cellkind.Mux, testdesign.FromExternal(na, 0))

	haystack := testdesign.New()
	ha := haystack.Input("a")
	hb := haystack.Input("b")
	haystack.Gate(cellkind.Mux, testdesign.FromExternal(ha, 0), testdesign.FromExternal(hb, 0))

	nIdx, err := graphindex.New(needle.Build(), nil)
	require.NoError(t, err)
	hIdx, err := graphindex.New(haystack.Build(), nil)
	require.NoError(t, err)

	nMux := nIdx.KindBucket(cellkind.Mux)[0]
	hMux := hIdx.KindBucket(cellkind.Mux)[0]

	_, ok := compatible(nMux, hMux, nIdx, hIdx, NewState(), Exact)
	assert.False(t, ok)

	_, ok = compatible(nMux, hMux, nIdx, hIdx, NewState(), NeedleSubsetHaystack)
	assert.True(t, ok)
}

func TestCompatibleConstPinsMustMatch(t *testing.T) {
	needle := testdesign.New()
	needle.Gate(cellkind.And, testdesign.FromConst(cellkind.Trit1), testdesign.FromConst(cellkind.Trit0))

	matching := testdesign.New()
	matching.Gate(cellkind.And, testdesign.FromConst(cellkind.Trit1), testdesign.FromConst(cellkind.Trit0))

	mismatched := testdesign.New()
	mismatched.Gate(cellkind.And, testdesign.FromConst(cellkind.Trit1), testdesign.FromConst(cellkind.Trit1))

	nIdx, err := graphindex.New(needle.Build(), nil)
	require.NoError(t, err)

	hIdxMatch, err := graphindex.New(matching.Build(), nil)
	require.NoError(t, err)
	_, ok := compatible(0, 0, nIdx, hIdxMatch, NewState(), Exact)
	assert.True(t, ok)

	hIdxMismatch, err := graphindex.New(mismatched.Build(), nil)
	require.NoError(t, err)
	_, ok = compatible(0, 0, nIdx, hIdxMismatch, NewState(), Exact)
	assert.False(t, ok)
}

func TestCompatibleExternalBindingConflictsAreRejected(t *testing.T) {
	needle := testdesign.New()
	na := needle.Input("a")
	needle.Gate(cellkind.Buf, testdesign.FromExternal(na, 0))

	haystack := testdesign.New()
	h1 := haystack.Input("x")
	h2 := haystack.Input("y")
	haystack.Gate(cellkind.Buf, testdesign.FromExternal(h1, 0))
	haystack.Gate(cellkind.Buf, testdesign.FromExternal(h2, 0))

	nIdx, err := graphindex.New(needle.Build(), nil)
	require.NoError(t, err)
	hIdx, err := graphindex.New(haystack.Build(), nil)
	require.NoError(t, err)

	bufID := nIdx.KindBucket(cellkind.Buf)[0]
	hBuf0 := hIdx.KindBucket(cellkind.Buf)[0]
	hBuf1 := hIdx.KindBucket(cellkind.Buf)[1]

	st := NewState()
	bindings, ok := compatible(bufID, hBuf0, nIdx, hIdx, st, Exact)
	require.True(t, ok)
	for _, b := range bindings {
		st.Bind(b.key, b.val)
	}

	// Binding the same needle external pin to a different haystack driver
	// must now be rejected.
	_, ok = compatible(bufID, hBuf1, nIdx, hIdx, st, Exact)
	assert.False(t, ok)
}
