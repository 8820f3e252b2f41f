// Package arena provides a slot arena with capability-typed handles.
//
// An Arena stores values of one type at stable integer positions. Entities
// refer to each other by Index rather than by pointer, which makes graphs,
// trees and other structures with back-references straightforward to build
// and mutate without a web of pointers.
//
//	a := arena.New[int]()
//	idx := a.Add(10)
//
//	ref, err := a.Lookup(idx)
//	if err != nil {
//	    return err
//	}
//	defer ref.Release()
//	fmt.Println(ref.Get())
//
// # Aliasing
//
// Every slot is borrow-checked at runtime. A slot admits any number of shared
// guards (Lookup, Handle.Get) or exactly one exclusive guard (LookupMut,
// Handle.GetMut), never both. A conflicting request fails immediately with an
// error matching ErrBorrow; nothing ever blocks. Slots are independent of each
// other.
//
// Guards must be released, usually with defer. A guard that is never released
// keeps its slot borrowed.
//
// # Handles
//
// A Handle pairs an arena with an Index. RawHandle is the minimal handle; domain
// types build richer handles by embedding RawHandle and adding read-only
// userdata bound at construction time:
//
//	type NodeHandle struct {
//	    arena.RawHandle[Node]
//	    neighbors []arena.Index
//	}
//
//	nodes := arena.Bind(a, func(raw arena.RawHandle[Node], n []arena.Index) NodeHandle {
//	    return NodeHandle{RawHandle: raw, neighbors: n}
//	})
//	h := nodes.Handle(idx, neighbors)
//
// The embedded RawHandle supplies Get, GetMut, Exists, Index and Arena.
//
// # Slot reuse
//
// Removed slots are reused by later Add calls in LIFO order. Indices carry no
// generation, so a handle kept across a Remove and Add observes the new
// occupant of its slot.
//
// # Concurrency
//
// An Arena is not safe for concurrent use by multiple goroutines.
package arena
