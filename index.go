package arena

import "strconv"

// Index identifies a slot in an Arena. Non-negative values name slot
// positions; the invalid sentinel is rejected by every arena operation.
type Index int64

const invalidIndex Index = -1

// NewIndex wraps a raw integer.
func NewIndex(raw int64) Index {
	return Index(raw)
}

// InvalidIndex returns the sentinel that refers to no slot.
func InvalidIndex() Index {
	return invalidIndex
}

// IndexFromOffset converts a slot offset to an Index.
func IndexFromOffset(offset int) Index {
	return Index(offset)
}

// IsInvalid reports whether i can not name a slot.
func (i Index) IsInvalid() bool {
	return i < 0
}

// Int64 returns the raw value.
func (i Index) Int64() int64 {
	return int64(i)
}

// Offset returns the slot offset for i.
// It panics if i is invalid: converting the sentinel is a programming error.
func (i Index) Offset() int {
	if i.IsInvalid() {
		panic("arena: converting invalid Index to offset")
	}
	return int(i)
}

// Compare returns -1, 0 or +1 ordering i relative to other.
func (i Index) Compare(other Index) int {
	switch {
	case i < other:
		return -1
	case i > other:
		return 1
	default:
		return 0
	}
}

func (i Index) String() string {
	if i.IsInvalid() {
		return "invalid"
	}
	return strconv.FormatInt(int64(i), 10)
}
