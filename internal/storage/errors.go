package storage

import "errors"

var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict (e.g., duplicate key)")
	ErrDuplicateEmail = errors.New("email already in use")
)
