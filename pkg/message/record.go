// Package message holds hand-written protocol records built on package wire.
package message

import (
	"fmt"
	"io"

	"github.com/ssargent/kwire/pkg/wire"
)

// API keys of the records in this package.
const (
	APIKeyMetadata    int16 = 3
	APIKeyAPIVersions int16 = 18
)

// Record is a message body whose layout depends on the API version.
type Record interface {
	Decode(r io.Reader, version int16) error
	Encode(w io.Writer, version int16) error
}

// UnsupportedVersionError is returned for a version a record cannot encode
// or decode.
type UnsupportedVersionError struct {
	Message string
	Version int16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("message: %s does not support version %d", e.Message, e.Version)
}

func checkVersion(name string, version, lowest, highest int16) error {
	if version < lowest || version > highest {
		return &UnsupportedVersionError{Message: name, Version: version}
	}
	return nil
}

// Bound pairs a record with a version so it satisfies wire.Decoder and
// wire.Encoder.
type Bound struct {
	Record  Record
	Version int16
}

// Bind returns rec bound to version.
func Bind(rec Record, version int16) *Bound {
	return &Bound{Record: rec, Version: version}
}

func (b *Bound) Decode(r io.Reader) error { return b.Record.Decode(r, b.Version) }

func (b *Bound) Encode(w io.Writer) error { return b.Record.Encode(w, b.Version) }

// decoderAt adapts a versioned element type for wire.ReadArrayFunc.
func decoderAt[T any, PT interface {
	*T
	Record
}](version int16) func(io.Reader) (T, error) {
	return func(r io.Reader) (T, error) {
		var v T
		err := PT(&v).Decode(r, version)
		return v, err
	}
}

// encoderAt adapts a versioned element type for wire.WriteArrayFunc.
func encoderAt[T any, PT interface {
	*T
	Record
}](version int16) func(io.Writer, T) error {
	return func(w io.Writer, v T) error {
		return PT(&v).Encode(w, version)
	}
}

func readTagged(r io.Reader, flexible bool, handle wire.TagHandler) ([]wire.RawTaggedField, error) {
	if !flexible {
		return nil, nil
	}
	return wire.ReadTaggedFields(r, handle)
}

func writeTagged(w io.Writer, flexible bool, known, unknown []wire.RawTaggedField) error {
	if !flexible {
		return nil
	}
	return wire.WriteTaggedFields(w, wire.MergeTaggedFields(known, unknown))
}
