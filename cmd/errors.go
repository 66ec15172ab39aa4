package cmd

import (
	"errors"

	"github.com/metcalfc/docqa/internal/pipeline"
)

// inputError presents a pipeline input error with its user-facing wording.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return pipeline.Message(e.err) }
func (e *inputError) Unwrap() error { return e.err }

// userFacing wraps input errors so Execute prints the friendly message.
func userFacing(err error) error {
	if errors.Is(err, pipeline.ErrNoQuestion) ||
		errors.Is(err, pipeline.ErrNoFiles) ||
		errors.Is(err, pipeline.ErrNoText) {
		return &inputError{err: err}
	}
	return err
}
