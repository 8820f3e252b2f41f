// Package errors provides the structured error type returned by arena operations.
//
// Errors are categorized by Op (the arena operation that failed) and Kind
// (the failure category). The Error type carries the slot index when one is
// known, a human-readable detail, and the underlying cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpLookupMut, errors.KindBorrow).
//		Index(3).
//		Cause(borrowErr).
//		Detail("slot is held by a shared guard").
//		Build()
//
// Or use convenience constructors for the common kinds:
//
//	err := errors.InvalidIndex(errors.OpRemove)
//	err := errors.RemovedElement(errors.OpLookup, 4, nil)
//
// Kind-only targets match errors of that kind from any Op:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindBorrow})
package errors
