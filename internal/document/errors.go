package document

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for an unknown category, type or mode.
	ErrConfiguration = errors.New("configuration error")
	// ErrLookup is returned when a region profile cannot be found.
	ErrLookup = errors.New("lookup error")
	// ErrValidation is returned for rejected manual input.
	ErrValidation = errors.New("validation error")
	// ErrCapture is returned when rasterization or page assembly fails.
	ErrCapture = errors.New("capture error")
	// ErrInconsistent is returned when a record breaks one of its invariants.
	ErrInconsistent = errors.New("inconsistent record")
	// ErrExportInProgress is returned when the render surface is already leased.
	ErrExportInProgress = errors.New("export in progress")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}

	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CaptureError wraps a failure in one step of the capture pipeline.
type CaptureError struct {
	Op  string
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Op, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

func (e *CaptureError) Is(target error) bool {
	return target == ErrCapture
}
