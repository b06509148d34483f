// Package businessflow contains the core use cases for serving price predictions
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Request-shape errors, detected before the pipeline runs
	ErrRecordMissing = errors.New("feature record is missing")
	ErrEmptyBatch    = errors.New("batch contains no records")

	// Pipeline errors
	ErrPipelineNotLoaded = errors.New("pipeline is not loaded")
	ErrPredictionFailed  = errors.New("pipeline failed to produce a price")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsEmptyBatch reports whether err stems from an empty batch request.
func IsEmptyBatch(err error) bool {
	return errors.Is(err, ErrEmptyBatch)
}

// IsRecordMissing reports whether err stems from an absent feature record.
func IsRecordMissing(err error) bool {
	return errors.Is(err, ErrRecordMissing)
}

// IsPredictionFailed reports whether err stems from a pipeline invocation
// failure rather than a malformed request.
func IsPredictionFailed(err error) bool {
	return errors.Is(err, ErrPredictionFailed)
}
