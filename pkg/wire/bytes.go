package wire

import (
	"io"
	"math"
)

// MaxBytesLen is the longest byte blob.
const MaxBytesLen = math.MaxInt32

// ReadBytes reads a non-nullable byte blob. A null marker fails with
// *NullError. An empty blob is returned as a non-nil empty slice.
func ReadBytes(r io.Reader, field string, compact bool) ([]byte, error) {
	b, err := ReadNullableBytes(r, field, compact)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &NullError{Field: field}
	}
	return b, nil
}

// ReadNullableBytes reads a byte blob that may be null. Null is returned as
// a nil slice; an empty blob as a non-nil empty slice.
func ReadNullableBytes(r io.Reader, field string, compact bool) ([]byte, error) {
	n, err := ReadLen(r, Width32, compact, InvalidLength(KindBytes, field))
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	return readN(r, int(n))
}

// WriteBytes writes a non-nullable byte blob. A nil slice is written as an
// empty blob.
func WriteBytes(w io.Writer, field string, b []byte, compact bool) error {
	if err := WriteLen(w, Width32, int64(len(b)), compact, InvalidLength(KindBytes, field)); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

// WriteNullableBytes writes b, or the null marker if b is nil.
func WriteNullableBytes(w io.Writer, field string, b []byte, compact bool) error {
	if b == nil {
		return WriteLen(w, Width32, Null, compact, InvalidLength(KindBytes, field))
	}
	return WriteBytes(w, field, b, compact)
}
