package collection

import "errors"

var (
	// ErrConflict reports that a note changed between planning and commit.
	ErrConflict = errors.New("note changed since it was read")
	// ErrLocked reports that another process holds the collection lock.
	ErrLocked = errors.New("collection is locked by another process")
)
