package domain

import "errors"

// ErrDraftNotFound is returned when no draft record exists under a key.
var ErrDraftNotFound = errors.New("draft not found")

// ErrUnknownField is returned when a command addresses an undeclared field.
var ErrUnknownField = errors.New("unknown field")

// ErrKindMismatch is returned when a command carries the wrong value type
// for a declared field.
var ErrKindMismatch = errors.New("field kind mismatch")

// ErrCollectionFull is returned when adding to a sub-entity collection that
// is at its maximum size.
var ErrCollectionFull = errors.New("collection full")

// ErrItemNotFound is returned when updating a sub-entity record that does
// not exist.
var ErrItemNotFound = errors.New("item not found")

// ErrStepOutOfRange is returned for navigation targets outside 1..N.
var ErrStepOutOfRange = errors.New("step out of range")
