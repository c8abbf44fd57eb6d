package wire

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"
)

// RawTaggedField is a tagged field carried as opaque bytes so records can
// round-trip tags they do not know.
type RawTaggedField struct {
	Tag  uint32
	Data []byte
}

// TagHandler is offered each tagged field in turn. It returns true if it
// consumed the payload, which must then be read in full from r. Returning
// false keeps the field as a RawTaggedField; the handler must not read from
// r in that case.
type TagHandler func(tag uint32, size int, r io.Reader) (bool, error)

// ReadTaggedFields reads a tagged-field tail: a varint count followed by
// (tag, size, payload) entries. Fields not claimed by handle are returned in
// wire order. handle may be nil.
func ReadTaggedFields(r io.Reader, handle TagHandler) ([]RawTaggedField, error) {
	count, err := ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	var unknown []RawTaggedField
	for i := uint32(0); i < count; i++ {
		tag, err := ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		size, err := ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		if size > math.MaxInt32 {
			return nil, &InvalidLengthError{Kind: KindBytes, Field: tagFieldName(tag), Length: int64(size)}
		}
		if handle != nil {
			lr := &io.LimitedReader{R: r, N: int64(size)}
			claimed, err := handle(tag, int(size), lr)
			if err != nil {
				return nil, err
			}
			if claimed {
				if lr.N != 0 {
					return nil, fmt.Errorf("%w: tag %d left %d of %d bytes", ErrTaggedFieldSize, tag, lr.N, size)
				}
				continue
			}
			if lr.N != int64(size) {
				return nil, fmt.Errorf("%w: tag %d read without being claimed", ErrTaggedFieldSize, tag)
			}
		}
		data, err := readN(r, int(size))
		if err != nil {
			return nil, err
		}
		unknown = append(unknown, RawTaggedField{Tag: tag, Data: data})
	}
	return unknown, nil
}

// WriteTaggedFields writes fields as a tagged-field tail. Tags must be
// strictly increasing.
func WriteTaggedFields(w io.Writer, fields []RawTaggedField) error {
	for i := 1; i < len(fields); i++ {
		if fields[i].Tag <= fields[i-1].Tag {
			return fmt.Errorf("%w: tag %d after tag %d", ErrTaggedFieldOrder, fields[i].Tag, fields[i-1].Tag)
		}
	}
	if err := WriteUvarint(w, uint32(len(fields))); err != nil {
		return err
	}
	for _, f := range fields {
		if int64(len(f.Data)) > math.MaxInt32 {
			return &InvalidLengthError{Kind: KindBytes, Field: tagFieldName(f.Tag), Length: int64(len(f.Data))}
		}
		if err := WriteUvarint(w, f.Tag); err != nil {
			return err
		}
		if err := WriteUvarint(w, uint32(len(f.Data))); err != nil {
			return err
		}
		if _, err := w.Write(f.Data); err != nil {
			return err
		}
	}
	return nil
}

// TaggedField encodes a known field into its raw form using encode.
func TaggedField(tag uint32, encode func(w io.Writer) error) (RawTaggedField, error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return RawTaggedField{}, err
	}
	return RawTaggedField{Tag: tag, Data: buf.Bytes()}, nil
}

// MergeTaggedFields combines known and unknown fields into tag order. A known
// field replaces an unknown one with the same tag.
func MergeTaggedFields(known, unknown []RawTaggedField) []RawTaggedField {
	out := make([]RawTaggedField, 0, len(known)+len(unknown))
	out = append(out, known...)
	for _, f := range unknown {
		if !slices.ContainsFunc(known, func(k RawTaggedField) bool { return k.Tag == f.Tag }) {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(a, b RawTaggedField) int {
		switch {
		case a.Tag < b.Tag:
			return -1
		case a.Tag > b.Tag:
			return 1
		}
		return 0
	})
	return out
}

func tagFieldName(tag uint32) string {
	return fmt.Sprintf("tag %d", tag)
}
