package skillvento

import "fmt"

// ConversionError reports a failed format conversion. Op identifies
// the direction ("image to pdf" or "pdf to image").
type ConversionError struct {
	Op  string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed (%s): %v", e.Op, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func newConversionError(op string, err error) *ConversionError {
	return &ConversionError{Op: op, Err: err}
}
