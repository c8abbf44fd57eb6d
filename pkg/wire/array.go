package wire

import "io"

// Decoder is implemented by array elements that read themselves from a
// stream. It is normally implemented on the pointer type.
type Decoder interface {
	Decode(r io.Reader) error
}

// Encoder is implemented by array elements that write themselves to a
// stream.
type Encoder interface {
	Encode(w io.Writer) error
}

// ReadArray reads a non-nullable array of T. A null marker fails with
// *NullError.
func ReadArray[T any, PT interface {
	*T
	Decoder
}](r io.Reader, field string, compact bool) ([]T, error) {
	return ReadArrayFunc[T](r, field, compact, decodeElement[T, PT])
}

// ReadNullableArray reads an array of T that may be null. Null is returned
// as a nil slice; an empty array as a non-nil empty slice.
func ReadNullableArray[T any, PT interface {
	*T
	Decoder
}](r io.Reader, field string, compact bool) ([]T, error) {
	return ReadNullableArrayFunc[T](r, field, compact, decodeElement[T, PT])
}

// WriteArray writes a non-nullable array. A nil slice is written as an empty
// array.
func WriteArray[T any, PT interface {
	*T
	Encoder
}](w io.Writer, field string, elems []T, compact bool) error {
	if err := writeCount(w, KindArray, field, len(elems), compact); err != nil {
		return err
	}
	for i := range elems {
		if err := PT(&elems[i]).Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteNullableArray writes elems, or the null marker if elems is nil.
func WriteNullableArray[T any, PT interface {
	*T
	Encoder
}](w io.Writer, field string, elems []T, compact bool) error {
	if elems == nil {
		return writeNull(w, KindArray, field, compact)
	}
	return WriteArray[T, PT](w, field, elems, compact)
}

// ReadArrayFunc reads a non-nullable array, decoding each element with
// decode. The first element error aborts the read and is returned as is.
func ReadArrayFunc[T any](r io.Reader, field string, compact bool, decode func(io.Reader) (T, error)) ([]T, error) {
	elems, ok, err := readArray(r, KindArray, field, compact, decode)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NullError{Field: field}
	}
	return elems, nil
}

// ReadNullableArrayFunc is the nullable form of ReadArrayFunc.
func ReadNullableArrayFunc[T any](r io.Reader, field string, compact bool, decode func(io.Reader) (T, error)) ([]T, error) {
	elems, _, err := readArray(r, KindArray, field, compact, decode)
	return elems, err
}

// WriteArrayFunc writes a non-nullable array, encoding each element with
// encode in slice order.
func WriteArrayFunc[T any](w io.Writer, field string, elems []T, compact bool, encode func(io.Writer, T) error) error {
	if err := writeCount(w, KindArray, field, len(elems), compact); err != nil {
		return err
	}
	for _, e := range elems {
		if err := encode(w, e); err != nil {
			return err
		}
	}
	return nil
}

// WriteNullableArrayFunc is the nullable form of WriteArrayFunc.
func WriteNullableArrayFunc[T any](w io.Writer, field string, elems []T, compact bool, encode func(io.Writer, T) error) error {
	if elems == nil {
		return writeNull(w, KindArray, field, compact)
	}
	return WriteArrayFunc(w, field, elems, compact, encode)
}

// ReadStringArray reads a non-nullable array of non-nullable strings.
func ReadStringArray(r io.Reader, field string, compact bool) ([]string, error) {
	elems, ok, err := readArray(r, KindStringArray, field, compact, stringDecoder(field, compact))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NullError{Field: field}
	}
	return elems, nil
}

// ReadNullableStringArray reads an array of strings that may be null.
func ReadNullableStringArray(r io.Reader, field string, compact bool) ([]string, error) {
	elems, _, err := readArray(r, KindStringArray, field, compact, stringDecoder(field, compact))
	return elems, err
}

// WriteStringArray writes a non-nullable array of strings.
func WriteStringArray(w io.Writer, field string, elems []string, compact bool) error {
	if err := writeCount(w, KindStringArray, field, len(elems), compact); err != nil {
		return err
	}
	for _, s := range elems {
		if err := WriteString(w, field, s, compact); err != nil {
			return err
		}
	}
	return nil
}

// WriteNullableStringArray writes elems, or the null marker if elems is nil.
func WriteNullableStringArray(w io.Writer, field string, elems []string, compact bool) error {
	if elems == nil {
		return writeNull(w, KindStringArray, field, compact)
	}
	return WriteStringArray(w, field, elems, compact)
}

func readArray[T any](r io.Reader, kind Kind, field string, compact bool, decode func(io.Reader) (T, error)) ([]T, bool, error) {
	n, err := ReadLen(r, Width32, compact, InvalidLength(kind, field))
	if err != nil {
		return nil, false, err
	}
	if n < 0 {
		return nil, false, nil
	}
	elems := make([]T, 0, min(n, maxPrealloc))
	for i := int64(0); i < n; i++ {
		v, err := decode(r)
		if err != nil {
			return nil, false, err
		}
		elems = append(elems, v)
	}
	return elems, true, nil
}

func decodeElement[T any, PT interface {
	*T
	Decoder
}](r io.Reader) (T, error) {
	var v T
	err := PT(&v).Decode(r)
	return v, err
}

func stringDecoder(field string, compact bool) func(io.Reader) (string, error) {
	return func(r io.Reader) (string, error) {
		return ReadString(r, field, compact)
	}
}

func writeCount(w io.Writer, kind Kind, field string, n int, compact bool) error {
	return WriteLen(w, Width32, int64(n), compact, InvalidLength(kind, field))
}

func writeNull(w io.Writer, kind Kind, field string, compact bool) error {
	return WriteLen(w, Width32, Null, compact, InvalidLength(kind, field))
}
