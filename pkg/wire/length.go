package wire

import (
	"io"
	"math"
)

// Width is the size in bytes of a classic length prefix.
type Width int

const (
	Width16 Width = 2
	Width32 Width = 4
)

// Null is the logical length of an absent field.
const Null int64 = -1

// Max returns the largest logical length the width can carry.
func (w Width) Max() int64 {
	if w == Width16 {
		return math.MaxInt16
	}
	return math.MaxInt32
}

// ReadLen reads a length prefix and returns the logical length. A negative
// result means the field is null.
//
// Classic prefixes are returned as read, so any negative value passes
// through. Compact prefixes hold length+1; a raw 0 yields Null and a length
// above w.Max() fails with invalid(length).
func ReadLen(r io.Reader, w Width, compact bool, invalid LengthErrorFunc) (int64, error) {
	if !compact {
		if w == Width16 {
			v, err := ReadInt16(r)
			return int64(v), err
		}
		v, err := ReadInt32(r)
		return int64(v), err
	}
	raw, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	if raw == 0 {
		return Null, nil
	}
	n := int64(raw) - 1
	if n > w.Max() {
		return 0, invalid(n)
	}
	return n, nil
}

// WriteLen writes logical length n as a prefix of width w. Null writes the
// null marker of the chosen encoding. Lengths above w.Max() or below Null
// fail with invalid(n) before anything is written.
func WriteLen(wr io.Writer, w Width, n int64, compact bool, invalid LengthErrorFunc) error {
	if n > w.Max() || n < Null {
		return invalid(n)
	}
	if compact {
		return WriteUvarint(wr, uint32(n+1))
	}
	if w == Width16 {
		return WriteInt16(wr, int16(n))
	}
	return WriteInt32(wr, int32(n))
}
