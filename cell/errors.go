package cell

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyBorrowed is matched by a BorrowError raised when an exclusive
	// borrow is attempted while shared borrows are outstanding.
	ErrAlreadyBorrowed = errors.New("cell: already borrowed")
	// ErrAlreadyMutablyBorrowed is matched by a BorrowError raised when any
	// borrow is attempted while an exclusive borrow is outstanding.
	ErrAlreadyMutablyBorrowed = errors.New("cell: already mutably borrowed")
	// ErrOutOfRange is matched by a RangeError.
	ErrOutOfRange = errors.New("cell: offset out of range")
)

// BorrowError reports a borrow conflict on a single cell.
type BorrowError struct {
	Offset int
	// Mutable is true when the outstanding borrow is exclusive.
	Mutable bool
	// Shared is the number of outstanding shared borrows when Mutable is false.
	Shared int
}

func (e *BorrowError) Error() string {
	if e.Mutable {
		return fmt.Sprintf("cell %d: already mutably borrowed", e.Offset)
	}
	return fmt.Sprintf("cell %d: already borrowed (%d shared)", e.Offset, e.Shared)
}

// Is reports whether target is the sentinel describing this conflict.
func (e *BorrowError) Is(target error) bool {
	if e.Mutable {
		return target == ErrAlreadyMutablyBorrowed
	}
	return target == ErrAlreadyBorrowed
}

// RangeError reports an offset outside the sequence.
type RangeError struct {
	Offset int
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cell %d: out of range (length %d)", e.Offset, e.Len)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
