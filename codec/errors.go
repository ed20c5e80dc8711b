package codec

import (
	"errors"
	"fmt"
)

// codec errors
var (
	ErrUnknownField      = errors.New("unknown field")
	ErrMalformedLength   = errors.New("malformed length prefix")
	ErrUnexpectedEnd     = errors.New("unexpected end of buffer")
	ErrTrailingData      = errors.New("trailing data")
	ErrAmountRange       = errors.New("amount out of range")
	ErrFieldTooLarge     = errors.New("field too large")
	ErrInvalidHashLength = errors.New("invalid hash length")
	ErrNestingTooDeep    = errors.New("nesting too deep")
	ErrInvalidValue      = errors.New("invalid value")
)

// Error carries the field and byte offset where encoding or decoding failed.
type Error struct {
	Err    error
	Field  string
	Offset int
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v (offset %d)", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v (field %s, offset %d)", e.Err, e.Field, e.Offset)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError attaches position info unless a nested call already did.
func wrapError(err error, field string, offset int) error {
	var codecErr *Error
	if errors.As(err, &codecErr) {
		return err
	}
	return &Error{Err: err, Field: field, Offset: offset}
}

func invalidValue(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
