package arena

import "fmt"

// NoUserdata is the userdata of handles that carry no extra context.
type NoUserdata = struct{}

// Handle is the accessor contract shared by RawHandle and every domain
// handle. Domain handles satisfy it by embedding RawHandle.
type Handle[T any] interface {
	// Raw reduces the handle to its arena and index.
	Raw() RawHandle[T]
	Get() (*ElementRef[T], error)
	GetMut() (*ElementRefMut[T], error)
	Exists() bool
	Index() Index
	Arena() *Arena[T]
}

// Cloner is implemented by userdata that must be deep-copied for every
// handle an iterator produces.
type Cloner[U any] interface {
	Clone() U
}

// RawHandle is a copyable (arena, index) pair. It never owns the value.
//
// Equality and ordering consider the index only; comparing handles from
// different arenas is meaningless.
type RawHandle[T any] struct {
	arena *Arena[T]
	index Index
}

func rawFromRaw[T any](raw RawHandle[T], _ NoUserdata) RawHandle[T] {
	return raw
}

// Raw returns h itself.
func (h RawHandle[T]) Raw() RawHandle[T] {
	return h
}

// Get acquires a shared guard on the element.
func (h RawHandle[T]) Get() (*ElementRef[T], error) {
	return h.arena.Lookup(h.index)
}

// GetMut acquires an exclusive guard on the element.
func (h RawHandle[T]) GetMut() (*ElementRefMut[T], error) {
	return h.arena.LookupMut(h.index)
}

// Exists reports whether the slot is occupied and readable right now.
func (h RawHandle[T]) Exists() bool {
	r, err := h.Get()
	if err != nil {
		return false
	}
	r.Release()
	return true
}

func (h RawHandle[T]) Index() Index {
	return h.index
}

func (h RawHandle[T]) Arena() *Arena[T] {
	return h.arena
}

// Equal reports whether both handles address the same index.
func (h RawHandle[T]) Equal(other RawHandle[T]) bool {
	return h.index == other.index
}

// Compare orders handles by index.
func (h RawHandle[T]) Compare(other RawHandle[T]) int {
	return h.index.Compare(other.index)
}

func (h RawHandle[T]) String() string {
	return fmt.Sprintf("Handle(%d)", h.index.Int64())
}

// FromRaw builds a domain handle from a raw handle and its userdata.
type FromRaw[T, U any, H Handle[T]] func(raw RawHandle[T], userdata U) H

// Handles associates an arena with the constructor of its canonical handle
// type, so call sites produce typed handles without naming H again.
type Handles[T, U any, H Handle[T]] struct {
	arena   *Arena[T]
	fromRaw FromRaw[T, U, H]
}

// Bind associates a with a handle constructor. fromRaw receives the raw
// handle and the userdata given to Handle or Iter.
func Bind[T, U any, H Handle[T]](a *Arena[T], fromRaw FromRaw[T, U, H]) Handles[T, U, H] {
	return Handles[T, U, H]{arena: a, fromRaw: fromRaw}
}

// Handle builds the handle for index. The index is not validated here.
func (hs Handles[T, U, H]) Handle(index Index, userdata U) H {
	return hs.fromRaw(hs.arena.Handle(index), userdata)
}

// Iter returns an iterator producing a handle for every current slot.
func (hs Handles[T, U, H]) Iter(userdata U) *HandleIter[T, U, H] {
	return newHandleIter(hs.arena, userdata, hs.fromRaw)
}

func (hs Handles[T, U, H]) Arena() *Arena[T] {
	return hs.arena
}
