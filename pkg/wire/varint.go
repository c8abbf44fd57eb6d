package wire

import (
	"encoding/binary"
	"io"
)

// MaxVarintLen32 is the longest encoding of a 32-bit varint.
const MaxVarintLen32 = binary.MaxVarintLen32

// ReadUvarint reads an unsigned LEB128 varint of at most 32 bits.
func ReadUvarint(r io.Reader) (uint32, error) {
	var x uint32
	for i := 0; i < MaxVarintLen32; i++ {
		b, err := readByte(r)
		if err != nil {
			if i > 0 && err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		// the fifth byte may only carry the top four bits
		if i == MaxVarintLen32-1 && b > 0x0f {
			return 0, ErrVarintOverflow
		}
		x |= uint32(b&0x7f) << (7 * i)
		if b < 0x80 {
			return x, nil
		}
	}
	return 0, ErrVarintOverflow
}

// WriteUvarint writes v as an unsigned LEB128 varint.
func WriteUvarint(w io.Writer, v uint32) error {
	var buf [MaxVarintLen32]byte
	n := binary.PutUvarint(buf[:], uint64(v))
	_, err := w.Write(buf[:n])
	return err
}

// ReadVarint reads a zig-zag encoded signed varint.
func ReadVarint(r io.Reader) (int32, error) {
	u, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return int32(u>>1) ^ -int32(u&1), nil
}

// WriteVarint writes v zig-zag encoded.
func WriteVarint(w io.Writer, v int32) error {
	return WriteUvarint(w, uint32(v<<1)^uint32(v>>31))
}

// UvarintSize returns the number of bytes WriteUvarint uses for v.
func UvarintSize(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
