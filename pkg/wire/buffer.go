package wire

import (
	"io"
	"slices"
)

const (
	// allocChunk bounds how far ahead of the stream a payload buffer grows.
	allocChunk = 1 << 20
	// maxPrealloc bounds the capacity reserved for a decoded array.
	maxPrealloc = 1024
)

// readN reads exactly n bytes. Buffers larger than allocChunk grow as data
// arrives, so a corrupt length costs at most one chunk past the real input.
func readN(r io.Reader, n int) ([]byte, error) {
	if n <= allocChunk {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	var buf []byte
	for len(buf) < n {
		start := len(buf)
		step := min(n-start, allocChunk)
		buf = slices.Grow(buf, step)[:start+step]
		if _, err := io.ReadFull(r, buf[start:]); err != nil {
			if err == io.EOF && start > 0 {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return buf, nil
}
