package graph

import (
	"slices"

	"github.com/wippyai/arena"
)

// Node is the value stored for each vertex.
type Node struct {
	Label  string
	Edges  []arena.Index
	Weight int
}

// Neighbors is the userdata bound into a NodeHandle: the node's outgoing
// edges at the time the handle was made.
type Neighbors []arena.Index

// Clone returns an independent copy.
func (n Neighbors) Clone() Neighbors {
	return slices.Clone(n)
}

// NodeHandle is a capability to access one node.
type NodeHandle struct {
	arena.RawHandle[Node]
	neighbors Neighbors
}

func newNodeHandle(raw arena.RawHandle[Node], neighbors Neighbors) NodeHandle {
	return NodeHandle{RawHandle: raw, neighbors: neighbors}
}

// Neighbors returns the outgoing edges captured with the handle.
func (h NodeHandle) Neighbors() []arena.Index {
	return slices.Clone(h.neighbors)
}

func (h NodeHandle) Label() (string, error) {
	r, err := h.Get()
	if err != nil {
		return "", err
	}
	defer r.Release()
	return r.Get().Label, nil
}

func (h NodeHandle) SetLabel(label string) error {
	w, err := h.GetMut()
	if err != nil {
		return err
	}
	defer w.Release()
	w.Ptr().Label = label
	return nil
}

func (h NodeHandle) Weight() (int, error) {
	r, err := h.Get()
	if err != nil {
		return 0, err
	}
	defer r.Release()
	return r.Get().Weight, nil
}

func (h NodeHandle) SetWeight(weight int) error {
	w, err := h.GetMut()
	if err != nil {
		return err
	}
	defer w.Release()
	w.Ptr().Weight = weight
	return nil
}
