package tools

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrDuplicateCode = errors.New("tool code already exists")
	ErrNotFound      = errors.New("tool not found")
	ErrInvalidStatus = errors.New("invalid tool status")
)
