package wire

import (
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// MaxStringLen is the longest string payload in bytes.
const MaxStringLen = 1<<15 - 1

// ReadString reads a non-nullable string. A null marker fails with
// *NullError.
func ReadString(r io.Reader, field string, compact bool) (string, error) {
	s, ok, err := readString(r, field, compact)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &NullError{Field: field}
	}
	return s, nil
}

// ReadNullableString reads a string that may be null, returned as nil.
func ReadNullableString(r io.Reader, field string, compact bool) (*string, error) {
	s, ok, err := readString(r, field, compact)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func readString(r io.Reader, field string, compact bool) (string, bool, error) {
	n, err := ReadLen(r, Width16, compact, InvalidLength(KindString, field))
	if err != nil {
		return "", false, err
	}
	if n < 0 {
		return "", false, nil
	}
	buf, err := readN(r, int(n))
	if err != nil {
		return "", false, err
	}
	return decodeUTF8(buf), true, nil
}

// decodeUTF8 replaces malformed sequences with U+FFFD instead of failing.
func decodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// WriteString writes a non-nullable string. Strings longer than
// MaxStringLen bytes fail with *InvalidLengthError and nothing is written.
func WriteString(w io.Writer, field, s string, compact bool) error {
	if err := WriteLen(w, Width16, int64(len(s)), compact, InvalidLength(KindString, field)); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// WriteNullableString writes s, or the null marker if s is nil.
func WriteNullableString(w io.Writer, field string, s *string, compact bool) error {
	if s == nil {
		return WriteLen(w, Width16, Null, compact, InvalidLength(KindString, field))
	}
	return WriteString(w, field, *s, compact)
}
