package corpus

import (
	"bytes"
	"io"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/kwire/pkg/wire"
)

// Sample is one captured frame together with what it was sent as.
type Sample struct {
	ID         ksuid.KSUID
	APIKey     int16
	APIVersion int16
	Note       string
	Frame      []byte

	UnknownTaggedFields []wire.RawTaggedField
}

// Captured returns the time the sample was added.
func (s *Sample) Captured() time.Time {
	return s.ID.Time()
}

// Decode reads the stored form of a sample. ID is not part of it.
func (s *Sample) Decode(r io.Reader) error {
	var err error
	if s.APIKey, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if s.APIVersion, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if s.Note, err = wire.ReadString(r, "note", true); err != nil {
		return err
	}
	if s.Frame, err = wire.ReadBytes(r, "frame", true); err != nil {
		return err
	}
	s.UnknownTaggedFields, err = wire.ReadTaggedFields(r, nil)
	return err
}

// Encode writes the stored form of a sample.
func (s *Sample) Encode(w io.Writer) error {
	if err := wire.WriteInt16(w, s.APIKey); err != nil {
		return err
	}
	if err := wire.WriteInt16(w, s.APIVersion); err != nil {
		return err
	}
	if err := wire.WriteString(w, "note", s.Note, true); err != nil {
		return err
	}
	if err := wire.WriteBytes(w, "frame", s.Frame, true); err != nil {
		return err
	}
	return wire.WriteTaggedFields(w, s.UnknownTaggedFields)
}

func marshalSample(s *Sample) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
