package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Op names the arena operation that produced the error
type Op string

const (
	OpAdd       Op = "add"
	OpRemove    Op = "remove"
	OpLookup    Op = "lookup"
	OpLookupMut Op = "lookup_mut"
)

// Kind categorizes the error
type Kind string

const (
	// KindBorrow is an aliasing conflict reported by slot storage.
	// Retrying after the overlapping guard is released may succeed.
	KindBorrow Kind = "borrow"
	// KindInvalidIndex means the sentinel index reached an operation that
	// needs a real slot.
	KindInvalidIndex Kind = "invalid_index"
	// KindRemovedElement means a well-formed index addressed a vacant slot.
	KindRemovedElement Kind = "removed_element"
)

// Error is the structured error type returned by arena operations
type Error struct {
	Cause    error
	Op       Op
	Kind     Kind
	Detail   string
	Index    int64
	HasIndex bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Op))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.HasIndex {
		b.WriteString(" at index ")
		b.WriteString(strconv.FormatInt(e.Index, 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Op matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Index records the slot index the operation addressed
func (b *Builder) Index(index int64) *Builder {
	b.err.Index = index
	b.err.HasIndex = true
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Borrow creates a borrow conflict error wrapping the storage error
func Borrow(op Op, index int64, cause error) *Error {
	return &Error{
		Op:       op,
		Kind:     KindBorrow,
		Index:    index,
		HasIndex: true,
		Cause:    cause,
	}
}

// InvalidIndex creates an error for use of the sentinel index
func InvalidIndex(op Op) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidIndex,
		Detail: "trying to use invalid index",
	}
}

// RemovedElement creates an error for access to a vacant slot
func RemovedElement(op Op, index int64, cause error) *Error {
	return &Error{
		Op:       op,
		Kind:     KindRemovedElement,
		Index:    index,
		HasIndex: true,
		Detail:   "slot is vacant",
		Cause:    cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(op Op, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
