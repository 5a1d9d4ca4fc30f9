package fileencoding

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEncoding is returned when no candidate could decode the data.
	ErrUnknownEncoding = errors.New("unknown text encoding")

	// ErrDecodeFailure is returned when data is not valid in an encoding.
	ErrDecodeFailure = errors.New("cannot decode text")
)

// InapplicableEncodingError reports that data could not be read with the
// encoding the caller asked for.
type InapplicableEncodingError struct {
	Encoding Encoding
	Err      error
}

// Error implements error.
func (e *InapplicableEncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text is not applicable to %s: %v", e.Encoding, e.Err)
	}

	return fmt.Sprintf("text is not applicable to %s", e.Encoding)
}

// Unwrap returns the underlying decode error.
func (e *InapplicableEncodingError) Unwrap() error {
	return e.Err
}

// Is makes every InapplicableEncodingError match ErrDecodeFailure.
func (e *InapplicableEncodingError) Is(target error) bool {
	return target == ErrDecodeFailure
}
