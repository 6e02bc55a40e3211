package screenings

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeInternal   = "internal_error"
	ErrorCodeNotFound   = "not_found"
)
