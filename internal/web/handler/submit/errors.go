package submit

import (
	"errors"
	"strings"
)

// ErrValidation marks a submission rejected before anything was stored.
var ErrValidation = errors.New("invalid recipe submission")

// ValidationError lists the problems of a rejected submission.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
