package repositories

import "errors"

// Sentinel errors shared by all repositories. Services translate these into
// domain errors, handlers never see them directly.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
