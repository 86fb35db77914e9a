package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrReferenceNotFound means an entity the operation points at (the movie of a
	// score, an endpoint of an association) does not exist, as opposed to the
	// target row itself being absent.
	ErrReferenceNotFound = errors.New("referenced entity not found")
)
