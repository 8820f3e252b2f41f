package wasmhost

import (
	"errors"

	"github.com/wippyai/arena"
)

// Status is the i32 result code returned to guests.
type Status uint32

const (
	StatusOK Status = iota
	StatusBorrow
	StatusInvalidIndex
	StatusRemoved
	StatusUnknown Status = 255
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBorrow:
		return "borrow"
	case StatusInvalidIndex:
		return "invalid_index"
	case StatusRemoved:
		return "removed_element"
	default:
		return "unknown"
	}
}

// StatusOf maps an arena error to a guest status code.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, arena.ErrBorrow):
		return StatusBorrow
	case errors.Is(err, arena.ErrInvalidIndexUsage):
		return StatusInvalidIndex
	case errors.Is(err, arena.ErrRemovedElementAccess):
		return StatusRemoved
	default:
		return StatusUnknown
	}
}
