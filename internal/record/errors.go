package record

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDensity     = errors.New("density must be positive")
	ErrNegativeCoordinate = errors.New("negative coordinate")
	ErrMalformed          = errors.New("malformed record")
	ErrMissingField       = errors.New("missing field")
	ErrNegativeValue      = errors.New("negative value")
	ErrUnsupportedVersion = errors.New("unsupported record version")
)

// DecodeError reports why a serialized record was rejected.
type DecodeError struct {
	// Field is the offending field path, e.g. "points[3].x". Empty when the
	// document did not parse at all.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record: decode %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("record: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
