package graph

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/wippyai/arena"
)

// ErrCycle is returned by Rollup when the walk reaches a node already on the
// current path.
var ErrCycle = errors.New("graph: cycle")

// Graph is a directed graph whose nodes live in an arena.
type Graph struct {
	nodes   *arena.Arena[Node]
	handles arena.Handles[Node, Neighbors, NodeHandle]
}

// New creates an empty graph. Options configure the backing arena.
func New(opts ...arena.Option) *Graph {
	nodes := arena.New[Node](opts...)
	return &Graph{
		nodes:   nodes,
		handles: arena.Bind(nodes, newNodeHandle),
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return g.nodes.Len()
}

// AddNode adds an unconnected node.
func (g *Graph) AddNode(label string, weight int) arena.Index {
	return g.nodes.Add(Node{Label: label, Weight: weight})
}

// Connect adds a directed edge. Duplicate edges are ignored.
func (g *Graph) Connect(from, to arena.Index) error {
	r, err := g.nodes.Lookup(to)
	if err != nil {
		return fmt.Errorf("connect %s -> %s: %w", from, to, err)
	}
	r.Release()

	w, err := g.nodes.LookupMut(from)
	if err != nil {
		return fmt.Errorf("connect %s -> %s: %w", from, to, err)
	}
	defer w.Release()

	n := w.Ptr()
	if !slices.Contains(n.Edges, to) {
		n.Edges = append(n.Edges, to)
	}
	return nil
}

// RemoveNode removes a node and every edge that points at it. Every other
// live node is locked first; if any of them is borrowed the graph is left
// unchanged.
func (g *Graph) RemoveNode(idx arena.Index) (Node, error) {
	var held []*arena.ElementRefMut[Node]
	defer func() {
		for _, w := range held {
			w.Release()
		}
	}()

	for h := range g.nodes.HandleIter().All() {
		if h.Index() == idx {
			continue
		}
		w, err := h.GetMut()
		if errors.Is(err, arena.ErrRemovedElementAccess) {
			continue
		}
		if err != nil {
			return Node{}, fmt.Errorf("remove node %s: detach from %s: %w", idx, h.Index(), err)
		}
		held = append(held, w)
	}

	removed, err := g.nodes.Remove(idx)
	if err != nil {
		return Node{}, fmt.Errorf("remove node %s: %w", idx, err)
	}

	for _, w := range held {
		n := w.Ptr()
		n.Edges = slices.DeleteFunc(n.Edges, func(e arena.Index) bool { return e == idx })
	}
	return removed, nil
}

// Node returns a handle to the node at idx with its current edges.
func (g *Graph) Node(idx arena.Index) (NodeHandle, error) {
	r, err := g.nodes.Lookup(idx)
	if err != nil {
		return NodeHandle{}, err
	}
	edges := slices.Clone(r.Get().Edges)
	r.Release()

	return g.handles.Handle(idx, edges), nil
}

// Nodes yields a handle for every live node in index order.
func (g *Graph) Nodes() iter.Seq[NodeHandle] {
	return func(yield func(NodeHandle) bool) {
		for raw := range g.nodes.HandleIter().All() {
			h, err := g.Node(raw.Index())
			if err != nil {
				continue
			}
			if !yield(h) {
				return
			}
		}
	}
}

// BFS visits nodes reachable from start in breadth-first order. No guard is
// held while visit runs, so visit may read or write the node.
func (g *Graph) BFS(start arena.Index, visit func(NodeHandle) error) error {
	seen := map[arena.Index]bool{start: true}
	queue := []arena.Index{start}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		h, err := g.Node(idx)
		if err != nil {
			return fmt.Errorf("bfs at %s: %w", idx, err)
		}
		if err := visit(h); err != nil {
			return err
		}
		for _, next := range h.neighbors {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// Rollup replaces the weight of every node reachable from start with the
// sum of its own weight and the rolled-up weights of its successors, and
// returns the total for start. Shared successors are rolled up once.
// Nodes finished before a cycle is found keep their updated weights.
func (g *Graph) Rollup(start arena.Index) (int, error) {
	done := make(map[arena.Index]bool)
	return g.rollup(start, done)
}

func (g *Graph) rollup(idx arena.Index, done map[arena.Index]bool) (int, error) {
	if done[idx] {
		r, err := g.nodes.Lookup(idx)
		if err != nil {
			return 0, err
		}
		defer r.Release()
		return r.Get().Weight, nil
	}

	w, err := g.nodes.LookupMut(idx)
	if errors.Is(err, arena.ErrBorrow) {
		return 0, fmt.Errorf("%w through %s: %w", ErrCycle, idx, err)
	}
	if err != nil {
		return 0, err
	}
	defer w.Release()

	n := w.Ptr()
	total := n.Weight
	for _, next := range n.Edges {
		sub, err := g.rollup(next, done)
		if err != nil {
			return 0, err
		}
		total += sub
	}

	n.Weight = total
	done[idx] = true
	return total, nil
}
