package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("booking conflict")
	ErrToolNotFound      = errors.New("tool not found")
	ErrToolUnavailable   = errors.New("tool not available for booking")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrNotEditable       = errors.New("booking is no longer editable")
)
