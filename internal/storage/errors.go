package storage

import "errors"

// Storage errors.
var (
	ErrNotFound         = errors.New("blob not found")
	ErrInvalidKey       = errors.New("invalid storage key")
	ErrPermissionDenied = errors.New("permission denied")
)
