package cell

const exclusive = -1

type entry[T any] struct {
	value T
	// borrows is 0 when free, n > 0 for n shared guards, exclusive for a
	// write guard.
	borrows int
}

// Vec is a growable sequence of borrow-checked cells.
type Vec[T any] struct {
	entries []*entry[T]
}

// NewVec creates an empty Vec with room for capacity cells.
func NewVec[T any](capacity int) *Vec[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Vec[T]{
		entries: make([]*entry[T], 0, capacity),
	}
}

// Push appends one cell holding value.
func (v *Vec[T]) Push(value T) {
	v.entries = append(v.entries, &entry[T]{value: value})
}

// Len returns the number of cells.
func (v *Vec[T]) Len() int {
	return len(v.entries)
}

func (v *Vec[T]) at(offset int) (*entry[T], error) {
	if offset < 0 || offset >= len(v.entries) {
		return nil, &RangeError{Offset: offset, Len: len(v.entries)}
	}
	return v.entries[offset], nil
}

func conflict[T any](offset int, e *entry[T]) error {
	if e.borrows == exclusive {
		return &BorrowError{Offset: offset, Mutable: true}
	}
	return &BorrowError{Offset: offset, Shared: e.borrows}
}

// TryBorrow acquires a shared guard on the cell at offset.
// It fails if the cell is exclusively borrowed.
func (v *Vec[T]) TryBorrow(offset int) (*Ref[T], error) {
	e, err := v.at(offset)
	if err != nil {
		return nil, err
	}
	if e.borrows == exclusive {
		return nil, conflict(offset, e)
	}
	e.borrows++
	return &Ref[T]{entry: e}, nil
}

// TryBorrowMut acquires an exclusive guard on the cell at offset.
// It fails if the cell has any outstanding borrow.
func (v *Vec[T]) TryBorrowMut(offset int) (*RefMut[T], error) {
	e, err := v.at(offset)
	if err != nil {
		return nil, err
	}
	if e.borrows != 0 {
		return nil, conflict(offset, e)
	}
	e.borrows = exclusive
	return &RefMut[T]{entry: e}, nil
}

// TryTake returns the value at offset and leaves the zero value in its place.
// It fails if the cell has any outstanding borrow.
func (v *Vec[T]) TryTake(offset int) (T, error) {
	var zero T
	return v.TryReplace(offset, zero)
}

// TryReplace stores value at offset and returns the previous value.
// It fails if the cell has any outstanding borrow.
func (v *Vec[T]) TryReplace(offset int, value T) (T, error) {
	var zero T
	e, err := v.at(offset)
	if err != nil {
		return zero, err
	}
	if e.borrows != 0 {
		return zero, conflict(offset, e)
	}
	old := e.value
	e.value = value
	return old, nil
}
