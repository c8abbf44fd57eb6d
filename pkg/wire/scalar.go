package wire

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/google/uuid"
)

func readFixed(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

// ReadInt8 reads one signed byte.
func ReadInt8(r io.Reader) (int8, error) {
	b, err := readByte(r)
	return int8(b), err
}

// WriteInt8 writes one signed byte.
func WriteInt8(w io.Writer, v int8) error {
	_, err := w.Write([]byte{byte(v)})
	return err
}

// ReadBool reads one byte; any non-zero value is true.
func ReadBool(r io.Reader) (bool, error) {
	b, err := readByte(r)
	return b != 0, err
}

// WriteBool writes 1 for true and 0 for false.
func WriteBool(w io.Writer, v bool) error {
	var b byte
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadInt16 reads a big-endian int16.
func ReadInt16(r io.Reader) (int16, error) {
	var buf [2]byte
	if err := readFixed(r, buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

// WriteInt16 writes a big-endian int16.
func WriteInt16(w io.Writer, v int16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadUint16 reads a big-endian uint16.
func ReadUint16(r io.Reader) (uint16, error) {
	v, err := ReadInt16(r)
	return uint16(v), err
}

// WriteUint16 writes a big-endian uint16.
func WriteUint16(w io.Writer, v uint16) error {
	return WriteInt16(w, int16(v))
}

// ReadInt32 reads a big-endian int32.
func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if err := readFixed(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteInt32 writes a big-endian int32.
func WriteInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadUint32 reads a big-endian uint32.
func ReadUint32(r io.Reader) (uint32, error) {
	v, err := ReadInt32(r)
	return uint32(v), err
}

// WriteUint32 writes a big-endian uint32.
func WriteUint32(w io.Writer, v uint32) error {
	return WriteInt32(w, int32(v))
}

// ReadInt64 reads a big-endian int64.
func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if err := readFixed(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// WriteInt64 writes a big-endian int64.
func WriteInt64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadFloat64 reads a big-endian IEEE 754 double.
func ReadFloat64(r io.Reader) (float64, error) {
	v, err := ReadInt64(r)
	return math.Float64frombits(uint64(v)), err
}

// WriteFloat64 writes a big-endian IEEE 754 double.
func WriteFloat64(w io.Writer, v float64) error {
	return WriteInt64(w, int64(math.Float64bits(v)))
}

// ReadUUID reads 16 raw bytes.
func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	err := readFixed(r, id[:])
	return id, err
}

// WriteUUID writes the 16 bytes of id.
func WriteUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}

// Element types. Each satisfies Decoder through its pointer and Encoder
// through its value, so slices of them work with ReadArray and WriteArray.

type (
	Bool    bool
	Int8    int8
	Int16   int16
	Uint16  uint16
	Int32   int32
	Uint32  uint32
	Int64   int64
	Float64 float64
	UUID    uuid.UUID
)

func (v *Bool) Decode(r io.Reader) error {
	x, err := ReadBool(r)
	*v = Bool(x)
	return err
}

func (v Bool) Encode(w io.Writer) error { return WriteBool(w, bool(v)) }

func (v *Int8) Decode(r io.Reader) error {
	x, err := ReadInt8(r)
	*v = Int8(x)
	return err
}

func (v Int8) Encode(w io.Writer) error { return WriteInt8(w, int8(v)) }

func (v *Int16) Decode(r io.Reader) error {
	x, err := ReadInt16(r)
	*v = Int16(x)
	return err
}

func (v Int16) Encode(w io.Writer) error { return WriteInt16(w, int16(v)) }

func (v *Uint16) Decode(r io.Reader) error {
	x, err := ReadUint16(r)
	*v = Uint16(x)
	return err
}

func (v Uint16) Encode(w io.Writer) error { return WriteUint16(w, uint16(v)) }

func (v *Int32) Decode(r io.Reader) error {
	x, err := ReadInt32(r)
	*v = Int32(x)
	return err
}

func (v Int32) Encode(w io.Writer) error { return WriteInt32(w, int32(v)) }

func (v *Uint32) Decode(r io.Reader) error {
	x, err := ReadUint32(r)
	*v = Uint32(x)
	return err
}

func (v Uint32) Encode(w io.Writer) error { return WriteUint32(w, uint32(v)) }

func (v *Int64) Decode(r io.Reader) error {
	x, err := ReadInt64(r)
	*v = Int64(x)
	return err
}

func (v Int64) Encode(w io.Writer) error { return WriteInt64(w, int64(v)) }

func (v *Float64) Decode(r io.Reader) error {
	x, err := ReadFloat64(r)
	*v = Float64(x)
	return err
}

func (v Float64) Encode(w io.Writer) error { return WriteFloat64(w, float64(v)) }

func (v *UUID) Decode(r io.Reader) error {
	x, err := ReadUUID(r)
	*v = UUID(x)
	return err
}

func (v UUID) Encode(w io.Writer) error { return WriteUUID(w, uuid.UUID(v)) }

func (v UUID) String() string { return uuid.UUID(v).String() }
