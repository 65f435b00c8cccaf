package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid state")
	ErrConfiguration = errors.New("configuration error")
	ErrPersistence   = errors.New("persistence error")

	// ErrDivisionUndefined is a configuration error: a stage goal of zero.
	ErrDivisionUndefined = fmt.Errorf("%w: division undefined", ErrConfiguration)
)
