package graph

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/arena"
)

func weightOf(t *testing.T, g *Graph, idx arena.Index) int {
	t.Helper()
	h, err := g.Node(idx)
	require.NoError(t, err)
	w, err := h.Weight()
	require.NoError(t, err)
	return w
}

func TestGraph_AddConnectNode(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 2)
	c := g.AddNode("c", 3)

	require.NoError(t, g.Connect(a, b))
	require.NoError(t, g.Connect(a, c))
	require.NoError(t, g.Connect(a, b), "duplicate edges are ignored")
	require.NoError(t, g.Connect(c, a), "cycles are representable")

	h, err := g.Node(a)
	require.NoError(t, err)
	assert.Equal(t, []arena.Index{b, c}, h.Neighbors())

	label, err := h.Label()
	require.NoError(t, err)
	assert.Equal(t, "a", label)

	require.NoError(t, h.SetLabel("root"))
	require.NoError(t, h.SetWeight(10))
	label, _ = h.Label()
	assert.Equal(t, "root", label)
	assert.Equal(t, 10, weightOf(t, g, a))
	assert.Equal(t, 3, g.Len())
}

func TestGraph_ConnectMissing(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)

	err := g.Connect(a, arena.NewIndex(5))
	assert.ErrorIs(t, err, arena.ErrRemovedElementAccess)

	err = g.Connect(arena.InvalidIndex(), a)
	assert.ErrorIs(t, err, arena.ErrInvalidIndexUsage)

	require.NoError(t, g.Connect(a, a), "self loop")
}

func TestGraph_HandleUserdataIsSnapshot(t *testing.T) {
	g := New()
	a := g.AddNode("a", 0)
	b := g.AddNode("b", 0)

	h, err := g.Node(a)
	require.NoError(t, err)
	require.NoError(t, g.Connect(a, b))

	assert.Empty(t, h.Neighbors(), "handle keeps the edges it was built with")

	h, err = g.Node(a)
	require.NoError(t, err)
	assert.Equal(t, []arena.Index{b}, h.Neighbors())
}

func TestGraph_RemoveNodeDetachesEdges(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 2)
	c := g.AddNode("c", 3)
	require.NoError(t, g.Connect(a, b))
	require.NoError(t, g.Connect(c, b))
	require.NoError(t, g.Connect(b, a))

	removed, err := g.RemoveNode(b)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Label)
	assert.Equal(t, []arena.Index{a}, removed.Edges)

	for h := range g.Nodes() {
		assert.NotContains(t, h.Neighbors(), b)
	}

	_, err = g.Node(b)
	assert.ErrorIs(t, err, arena.ErrRemovedElementAccess)

	_, err = g.RemoveNode(b)
	assert.ErrorIs(t, err, arena.ErrRemovedElementAccess)

	d := g.AddNode("d", 4)
	assert.Equal(t, b, d, "slot of removed node is reused")
}

func TestGraph_RemoveNodeBorrowedLeavesGraphUnchanged(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 2)
	c := g.AddNode("c", 3)
	require.NoError(t, g.Connect(a, b))
	require.NoError(t, g.Connect(c, b))

	tests := []struct {
		name string
		hold arena.Index
	}{
		{"neighbour borrowed", c},
		{"target borrowed", b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := g.nodes.Lookup(tt.hold)
			require.NoError(t, err)

			_, err = g.RemoveNode(b)
			r.Release()
			require.ErrorIs(t, err, arena.ErrBorrow)

			assert.Equal(t, 3, g.Len())
			for _, from := range []arena.Index{a, c} {
				h, err := g.Node(from)
				require.NoError(t, err)
				assert.Equal(t, []arena.Index{b}, h.Neighbors())
			}

			w, err := g.nodes.LookupMut(a)
			require.NoError(t, err, "no guard may outlive a failed RemoveNode")
			w.Release()
		})
	}

	_, err := g.RemoveNode(b)
	require.NoError(t, err)
	d := g.AddNode("d", 4)
	require.Equal(t, b, d)

	h, err := g.Node(c)
	require.NoError(t, err)
	assert.Empty(t, h.Neighbors(), "edges to the removed node must not reach its successor")
}

func TestGraph_Nodes(t *testing.T) {
	g := New()
	for _, l := range []string{"a", "b", "c", "d"} {
		g.AddNode(l, 0)
	}
	_, err := g.RemoveNode(arena.NewIndex(2))
	require.NoError(t, err)

	var labels []string
	for h := range g.Nodes() {
		l, err := h.Label()
		require.NoError(t, err)
		labels = append(labels, l)
	}
	assert.Equal(t, []string{"a", "b", "d"}, labels)

	labels = labels[:0]
	for h := range g.Nodes() {
		l, _ := h.Label()
		labels = append(labels, l)
		break
	}
	assert.Equal(t, []string{"a"}, labels)
}

func TestGraph_BFS(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 1)
	c := g.AddNode("c", 1)
	d := g.AddNode("d", 1)
	e := g.AddNode("e", 1)
	require.NoError(t, g.Connect(a, b))
	require.NoError(t, g.Connect(a, c))
	require.NoError(t, g.Connect(b, d))
	require.NoError(t, g.Connect(c, d))
	require.NoError(t, g.Connect(d, a))

	var order []arena.Index
	err := g.BFS(a, func(h NodeHandle) error {
		order = append(order, h.Index())
		return h.SetWeight(len(order))
	})
	require.NoError(t, err)
	assert.Equal(t, []arena.Index{a, b, c, d}, order)
	assert.NotContains(t, order, e)
	assert.Equal(t, 4, weightOf(t, g, d))

	stop := errors.New("stop")
	err = g.BFS(a, func(h NodeHandle) error {
		if h.Index() == c {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
}

func TestGraph_RollupTree(t *testing.T) {
	g := New()
	root := g.AddNode("root", 1)
	left := g.AddNode("left", 2)
	right := g.AddNode("right", 3)
	leaf := g.AddNode("leaf", 4)
	require.NoError(t, g.Connect(root, left))
	require.NoError(t, g.Connect(root, right))
	require.NoError(t, g.Connect(left, leaf))
	require.NoError(t, g.Connect(right, leaf))

	total, err := g.Rollup(root)
	require.NoError(t, err)

	// leaf is shared and rolled up once: root(1) + left(2+4) + right(3+4).
	assert.Equal(t, 14, total)
	assert.Equal(t, 4, weightOf(t, g, leaf))
	assert.Equal(t, 6, weightOf(t, g, left))
	assert.Equal(t, 7, weightOf(t, g, right))
	assert.Equal(t, 14, weightOf(t, g, root))
}

func TestGraph_RollupDetectsCycle(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	b := g.AddNode("b", 1)
	c := g.AddNode("c", 1)
	require.NoError(t, g.Connect(a, b))
	require.NoError(t, g.Connect(b, c))
	require.NoError(t, g.Connect(c, a))

	_, err := g.Rollup(a)
	assert.ErrorIs(t, err, ErrCycle)
	assert.ErrorIs(t, err, arena.ErrBorrow)

	// All guards were released on the way out.
	for h := range g.Nodes() {
		w, err := h.GetMut()
		require.NoError(t, err)
		w.Release()
	}
}

func TestGraph_RollupSelfLoop(t *testing.T) {
	g := New()
	a := g.AddNode("a", 1)
	require.NoError(t, g.Connect(a, a))

	_, err := g.Rollup(a)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestNeighbors_Clone(t *testing.T) {
	n := Neighbors{1, 2}
	c := n.Clone()
	c[0] = 9
	assert.True(t, slices.Equal(Neighbors{1, 2}, n))
}
