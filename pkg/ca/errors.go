package ca

import "github.com/pkg/errors"

// Errors
var (
	ErrInvalidIndex   = errors.New("index out of range")
	ErrLengthMismatch = errors.New("state array length mismatch")
	ErrBadNotation    = errors.New("bad rule notation")
)
