package arena

import (
	stderrors "errors"

	"github.com/wippyai/arena/cell"
	"github.com/wippyai/arena/errors"
)

// Targets for errors.Is. They match errors of the kind from any operation.
var (
	// ErrBorrow matches aliasing conflicts: an exclusive access overlapping
	// any other access to the same slot.
	ErrBorrow = &errors.Error{Kind: errors.KindBorrow}
	// ErrInvalidIndexUsage matches use of the invalid Index.
	ErrInvalidIndexUsage = &errors.Error{Kind: errors.KindInvalidIndex}
	// ErrRemovedElementAccess matches access to a vacant slot.
	ErrRemovedElementAccess = &errors.Error{Kind: errors.KindRemovedElement}
)

// storageError maps a slot storage failure to the arena taxonomy.
func storageError(op errors.Op, index Index, err error) error {
	if stderrors.Is(err, cell.ErrOutOfRange) {
		return errors.RemovedElement(op, index.Int64(), err)
	}
	return errors.Borrow(op, index.Int64(), err)
}
