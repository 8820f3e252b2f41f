package arena

import "github.com/wippyai/arena/cell"

// ElementRef is a shared guard over one arena element.
// Release it when done; the slot stays borrowed until then.
type ElementRef[T any] struct {
	ref   *cell.Ref[slot[T]]
	index Index
}

// Get returns a copy of the element.
func (r *ElementRef[T]) Get() T {
	return r.ref.Get().value
}

// Index returns the slot the guard covers.
func (r *ElementRef[T]) Index() Index {
	return r.index
}

// Release ends the shared access. Calling it more than once is a no-op.
func (r *ElementRef[T]) Release() {
	r.ref.Release()
}

// ElementRefMut is an exclusive guard over one arena element.
type ElementRefMut[T any] struct {
	ref   *cell.RefMut[slot[T]]
	index Index
}

// Get returns a copy of the element.
func (r *ElementRefMut[T]) Get() T {
	return r.ref.Ptr().value
}

// Set replaces the element.
func (r *ElementRefMut[T]) Set(value T) {
	r.ref.Ptr().value = value
}

// Ptr returns a pointer to the element for in-place updates.
// The pointer must not be used after Release.
func (r *ElementRefMut[T]) Ptr() *T {
	return &r.ref.Ptr().value
}

// Index returns the slot the guard covers.
func (r *ElementRefMut[T]) Index() Index {
	return r.index
}

// Release ends the exclusive access. Calling it more than once is a no-op.
func (r *ElementRefMut[T]) Release() {
	r.ref.Release()
}
