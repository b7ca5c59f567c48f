package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSizeIsPowerOfTwo(t *testing.T) {
	tbl := NewTable(1)
	size := tbl.Size()

	assert.Greater(t, size, 0)
	assert.Zero(t, size&(size-1), "slot count %d must be a power of two", size)
}

func TestTableStoreAndFind(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	require.False(t, tbl.Find(g), "fresh table misses")
	assert.Equal(t, Empty, tbl.Flag())
	assert.Equal(t, NullMove, tbl.Move())

	tbl.Store(g, -42, 3, 6, Upper)
	require.True(t, tbl.Find(g))
	assert.Equal(t, -42, tbl.Score())
	assert.Equal(t, 3, tbl.Move())
	assert.Equal(t, 6, tbl.Depth())
	assert.Equal(t, Upper, tbl.Flag())
}

func TestTableKeepsDeeperEntryWithinSearch(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	tbl.Store(g, 10, 1, 8, Exact)
	tbl.Store(g, 20, 2, 4, Exact) // shallower, same age: rejected

	require.True(t, tbl.Find(g))
	assert.Equal(t, 10, tbl.Score())
	assert.Equal(t, 8, tbl.Depth())
}

func TestTableDischargeAgesOutEntries(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	tbl.Store(g, 10, 1, 8, Exact)
	tbl.Discharge()
	tbl.Store(g, 20, 2, 4, Exact) // shallower but newer: accepted

	require.True(t, tbl.Find(g))
	assert.Equal(t, 20, tbl.Score())
	assert.Equal(t, 4, tbl.Depth())
}

func TestTableClear(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	tbl.Store(g, 10, 1, 8, Exact)
	tbl.Clear()

	assert.False(t, tbl.Find(g))
	assert.Zero(t, tbl.HitRate())
}

func TestTableResizeDropsEntries(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	tbl.Store(g, 10, 1, 8, Exact)
	tbl.Resize(2 << 20)

	assert.False(t, tbl.Find(g))
	assert.LessOrEqual(t, tbl.Size()*entrySize, 2<<20)
	assert.Zero(t, tbl.Size()&(tbl.Size()-1))
}

func TestTableHitRate(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	tbl.Find(g)
	tbl.Store(g, 1, 1, 4, Exact)
	tbl.Find(g)

	assert.InDelta(t, 50.0, tbl.HitRate(), 0.01)
}

func TestTableNegativeScoresSurvive(t *testing.T) {
	tbl := NewTable(1)
	g := newFakeGame(pos(0, map[int]*fakeNode{1: term(DrawScore)}), 1)

	tbl.Store(g, -1000, NullMove, 12, Lower)
	require.True(t, tbl.Find(g))
	assert.Equal(t, -1000, tbl.Score())
	assert.Equal(t, NullMove, tbl.Move())
	assert.Equal(t, Lower, tbl.Flag())
}
