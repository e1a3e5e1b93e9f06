package store

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("store: document not found")

	// ErrDuplicate is returned when inserting a document whose key already exists.
	ErrDuplicate = errors.New("store: document already exists")
)
