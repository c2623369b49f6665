package repository

import "errors"

// Sentinel errors returned by the atomic write paths. Module services map
// these onto their own error vocabulary before they reach a handler.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("booking interval conflict")
	ErrToolNotFound      = errors.New("tool not found")
	ErrToolUnavailable   = errors.New("tool not available")
	ErrDuplicateCode     = errors.New("tool code already exists")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrNotEditable       = errors.New("booking no longer editable")
)
