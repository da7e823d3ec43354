package store

import "errors"

var (
	// ErrEmptyTitle rejects creation with a blank title. Callers may
	// treat it as a silent no-op; the collection is left unchanged.
	ErrEmptyTitle = errors.New("store: empty title")

	// ErrNotFound means no task carries the given id.
	ErrNotFound = errors.New("store: task not found")

	// ErrCorruptData is wrapped into the notice returned by Open when
	// the persisted collection cannot be parsed. The store is still
	// usable: it has been reseeded with the default samples.
	ErrCorruptData = errors.New("store: stored tasks unreadable")
)
