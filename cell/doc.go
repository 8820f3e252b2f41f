// Package cell provides a growable sequence of independently borrow-checked cells.
//
// Each cell tracks its own borrow state:
//
//	free       no outstanding guards
//	shared(n)  n read guards
//	exclusive  exactly one write guard
//
// A conflicting borrow fails immediately with a *BorrowError instead of
// blocking. Cells are independent, so a write guard on one offset never
// conflicts with guards on another.
//
//	v := cell.NewVec[int](0)
//	v.Push(42)
//
//	r, err := v.TryBorrow(0)
//	if err != nil {
//	    return err
//	}
//	defer r.Release()
//
// Guards are released explicitly, usually with defer. Using a guard after
// Release panics.
//
// A Vec is not safe for concurrent use by multiple goroutines. Borrow
// tracking exists to catch overlapping access within one call stack, for
// example during reentrant traversal of a cyclic structure.
package cell
