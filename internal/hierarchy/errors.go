package hierarchy

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIdentifier matches every MalformedIdentifierError.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrConflictingIdentifier matches every ConflictingIdentifierError.
	ErrConflictingIdentifier = errors.New("conflicting identifier")
)

// MalformedIdentifierError reports an empty id or an id with an empty path
// component (leading, trailing or doubled slash).
type MalformedIdentifierError struct {
	ID     string
	Reason string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed identifier %q: %s", e.ID, e.Reason)
}

// Is lets errors.Is match ErrMalformedIdentifier.
func (e *MalformedIdentifierError) Is(target error) bool {
	return target == ErrMalformedIdentifier
}

// ConflictingIdentifierError reports an item id that is also a folder key
// implied by another item, or an id shared by two items.
type ConflictingIdentifierError struct {
	ID     string
	Reason string
}

func (e *ConflictingIdentifierError) Error() string {
	return fmt.Sprintf("conflicting identifier %q: %s", e.ID, e.Reason)
}

// Is lets errors.Is match ErrConflictingIdentifier.
func (e *ConflictingIdentifierError) Is(target error) bool {
	return target == ErrConflictingIdentifier
}
