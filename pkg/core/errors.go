package core

import "errors"

// Common errors.
var (
	ErrReadOnly   = errors.New("storage is in read-only mode")
	ErrClosed     = errors.New("store is closed")
	ErrInvalidKey = errors.New("invalid storage key")
	ErrCorrupt    = errors.New("corrupt note collection")
)
