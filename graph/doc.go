// Package graph builds a directed graph on top of an arena.
//
// Nodes refer to each other by arena.Index, so cycles and back-references
// need no pointers. Callers work with NodeHandle values: an arena handle
// that also carries the node's outgoing edges, captured when the handle was
// made, plus named field accessors.
//
//	g := graph.New()
//	a := g.AddNode("a", 1)
//	b := g.AddNode("b", 2)
//	_ = g.Connect(a, b)
//
//	h, _ := g.Node(a)
//	w, _ := h.Weight()
//
// Rollup walks the graph while holding exclusive guards on every node of the
// current path. Reaching a node on that path again fails the arena's borrow
// check, which Rollup reports as ErrCycle.
package graph
