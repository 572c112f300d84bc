package dom

import "errors"

var (
	// ErrEmptyID is returned when appending an element without an id.
	ErrEmptyID = errors.New("element id is empty")
	// ErrDuplicateID is returned when an id is already present in the document.
	ErrDuplicateID = errors.New("duplicate element id")
	// ErrElementNotFound is returned when dispatching to a missing element.
	ErrElementNotFound = errors.New("element not found")
)
