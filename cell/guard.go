package cell

// Ref is a shared guard over one cell.
type Ref[T any] struct {
	entry *entry[T]
}

// Get returns a copy of the guarded value.
func (r *Ref[T]) Get() T {
	if r.entry == nil {
		panic("cell: use of released Ref")
	}
	return r.entry.value
}

// Release gives up the shared borrow. Calling it more than once is a no-op.
func (r *Ref[T]) Release() {
	if r.entry == nil {
		return
	}
	r.entry.borrows--
	r.entry = nil
}

// Released reports whether Release has been called.
func (r *Ref[T]) Released() bool {
	return r.entry == nil
}

// RefMut is an exclusive guard over one cell.
type RefMut[T any] struct {
	entry *entry[T]
}

func (r *RefMut[T]) live() *entry[T] {
	if r.entry == nil {
		panic("cell: use of released RefMut")
	}
	return r.entry
}

// Get returns a copy of the guarded value.
func (r *RefMut[T]) Get() T {
	return r.live().value
}

// Set overwrites the guarded value.
func (r *RefMut[T]) Set(value T) {
	r.live().value = value
}

// Ptr returns a pointer to the guarded value. The pointer must not be
// retained past Release.
func (r *RefMut[T]) Ptr() *T {
	return &r.live().value
}

// Release gives up the exclusive borrow. Calling it more than once is a no-op.
func (r *RefMut[T]) Release() {
	if r.entry == nil {
		return
	}
	r.entry.borrows = 0
	r.entry = nil
}

// Released reports whether Release has been called.
func (r *RefMut[T]) Released() bool {
	return r.entry == nil
}
