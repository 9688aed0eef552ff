package subgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickrallison/svql-sub002/cellkind"
)

func TestStateMapUnmapRoundTrip(t *testing.T) {
	st := NewState()
	st.Map(1, 10)

	h, ok := st.MappedTo(1)
	require.True(t, ok)
	assert.Equal(t, cellkind.CellID(10), h)
	assert.True(t, st.IsUsed(10))
	assert.Equal(t, 1, st.Len())

	st.Unmap(1, 10)
	_, ok = st.MappedTo(1)
	assert.False(t, ok)
	assert.False(t, st.IsUsed(10))
	assert.Equal(t, 0, st.Len())
}

func TestStateMapPanicsOnDoubleUse(t *testing.T) {
	st := NewState()
	st.Map(1, 10)
	assert.Panics(t, func() { st.Map(2, 10) })
	assert.Panics(t, func() { st.Map(1, 20) })
}

func TestStateBindRejectsContradiction(t *testing.T) {
	st := NewState()
	key := BoundaryKey{Cell: 1, Bit: 0}
	val1 := BoundaryValue{Cell: 5, Bit: 0, Kind: BoundaryExternal}
	val2 := BoundaryValue{Cell: 6, Bit: 0, Kind: BoundaryExternal}

	assert.True(t, st.Bind(key, val1))
	assert.True(t, st.Bind(key, val1)) // identical re-bind is a no-op
	assert.False(t, st.Bind(key, val2))

	got, ok := st.BoundaryGet(key)
	require.True(t, ok)
	assert.Equal(t, val1, got)

	st.Unbind(key)
	_, ok = st.BoundaryGet(key)
	assert.False(t, ok)
}
