package wire

import (
	"errors"
	"fmt"
)

// Kind names the family of a length-prefixed field in error messages.
type Kind string

const (
	KindString      Kind = "string"
	KindBytes       Kind = "bytes"
	KindArray       Kind = "array"
	KindStringArray Kind = "string array"
)

var (
	ErrNonNullable      = errors.New("non-nullable field was serialized as null")
	ErrInvalidLength    = errors.New("field had invalid length")
	ErrVarintOverflow   = errors.New("wire: varint overflows 32 bits")
	ErrTaggedFieldOrder = errors.New("wire: tagged fields out of order")
	ErrTaggedFieldSize  = errors.New("wire: tagged field size mismatch")
)

// NullError reports a null marker read for a non-nullable field.
type NullError struct {
	Field string
}

func (e *NullError) Error() string {
	return fmt.Sprintf("non-nullable field %s was serialized as null", e.Field)
}

// Is reports whether target is ErrNonNullable.
func (e *NullError) Is(target error) bool {
	return target == ErrNonNullable
}

// InvalidLengthError reports a length that does not fit the field's width,
// read from a compact prefix or attempted on write.
type InvalidLengthError struct {
	Kind   Kind
	Field  string
	Length int64
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("%s field %s had invalid length %d", e.Kind, e.Field, e.Length)
}

// Is reports whether target is ErrInvalidLength.
func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// LengthErrorFunc builds the error returned for an out-of-range length.
type LengthErrorFunc func(length int64) error

// InvalidLength returns a LengthErrorFunc producing *InvalidLengthError for
// the named field.
func InvalidLength(kind Kind, field string) LengthErrorFunc {
	return func(length int64) error {
		return &InvalidLengthError{Kind: kind, Field: field, Length: length}
	}
}
