package sheet

import (
	"errors"
	"fmt"
)

// ErrEmptySheet indicates the export had no header row.
var ErrEmptySheet = errors.New("sheet has no header row")

// ErrUnsupportedFormat indicates an export format other than csv or xlsx.
var ErrUnsupportedFormat = errors.New("unsupported sheet format")

// LoadError wraps any failure to fetch or parse the sheet.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load sheet %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the export endpoint answers with a non-200 status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
