package store

import "errors"

var (
	// ErrNotFound is returned by Get when no item has the requested userid.
	ErrNotFound = errors.New("users: record not found")

	// ErrMissingUserID is returned by Put when the record has no string userid.
	ErrMissingUserID = errors.New("users: record has no userid")
)
