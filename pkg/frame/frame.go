// Package frame reads and writes size-prefixed protocol messages.
//
// Every message on the wire is a big-endian int32 size followed by that many
// bytes of header and body.
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ssargent/kwire/pkg/wire"
)

// SizeLen is the length of the size prefix.
const SizeLen = 4

var (
	ErrShortFrame    = errors.New("frame: short frame")
	ErrNegativeSize  = errors.New("frame: negative size")
	ErrFrameTooLarge = errors.New("frame: frame too large")
	ErrTrailingBytes = errors.New("frame: trailing bytes after message")
)

// Limits constrains frame memory use.
type Limits struct {
	MaxFrameBytes int32
}

// DefaultLimits matches the usual broker request size cap.
func DefaultLimits() Limits {
	return Limits{MaxFrameBytes: 100 * 1024 * 1024}
}

func (l Limits) max() int32 {
	if l.MaxFrameBytes <= 0 {
		return math.MaxInt32
	}
	return l.MaxFrameBytes
}

// ReadFrame reads one frame and returns its payload.
func ReadFrame(r io.Reader, limits Limits) ([]byte, error) {
	var size [SizeLen]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortFrame
		}
		return nil, err
	}
	n := int32(binary.BigEndian.Uint32(size[:]))
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if n > limits.max() {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, limits.max())
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortFrame
		}
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes payload with its size prefix.
func WriteFrame(w io.Writer, payload []byte, limits Limits) error {
	if int64(len(payload)) > int64(limits.max()) {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(payload), limits.max())
	}
	buf := make([]byte, SizeLen, SizeLen+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	buf = append(buf, payload...)
	_, err := w.Write(buf)
	return err
}

// Marshal encodes parts back to back into one payload.
func Marshal(parts ...wire.Encoder) ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range parts {
		if err := p.Encode(&buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes payload into parts in order. The payload must be
// consumed exactly.
func Unmarshal(payload []byte, parts ...wire.Decoder) error {
	r := bytes.NewReader(payload)
	for _, p := range parts {
		if err := p.Decode(r); err != nil {
			return err
		}
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingBytes, r.Len())
	}
	return nil
}
