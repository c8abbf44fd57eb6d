package message

import (
	"io"

	"github.com/ssargent/kwire/pkg/wire"
)

const (
	tagFinalizedFeaturesEpoch uint32 = 1
	tagZkMigrationReady       uint32 = 3
)

// APIVersionsRequest asks a broker which API versions it supports.
type APIVersionsRequest struct {
	ClientSoftwareName    string
	ClientSoftwareVersion string

	UnknownTaggedFields []wire.RawTaggedField
}

func (m *APIVersionsRequest) Decode(r io.Reader, version int16) error {
	if err := checkVersion("ApiVersionsRequest", version, 0, 3); err != nil {
		return err
	}
	if version < 3 {
		return nil
	}
	var err error
	if m.ClientSoftwareName, err = wire.ReadString(r, "client_software_name", true); err != nil {
		return err
	}
	if m.ClientSoftwareVersion, err = wire.ReadString(r, "client_software_version", true); err != nil {
		return err
	}
	m.UnknownTaggedFields, err = wire.ReadTaggedFields(r, nil)
	return err
}

func (m *APIVersionsRequest) Encode(w io.Writer, version int16) error {
	if err := checkVersion("ApiVersionsRequest", version, 0, 3); err != nil {
		return err
	}
	if version < 3 {
		return nil
	}
	if err := wire.WriteString(w, "client_software_name", m.ClientSoftwareName, true); err != nil {
		return err
	}
	if err := wire.WriteString(w, "client_software_version", m.ClientSoftwareVersion, true); err != nil {
		return err
	}
	return wire.WriteTaggedFields(w, m.UnknownTaggedFields)
}

// APIVersion is one supported API range in an APIVersionsResponse.
type APIVersion struct {
	APIKey     int16
	MinVersion int16
	MaxVersion int16

	UnknownTaggedFields []wire.RawTaggedField
}

func (v *APIVersion) Decode(r io.Reader, version int16) error {
	var err error
	if v.APIKey, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if v.MinVersion, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if v.MaxVersion, err = wire.ReadInt16(r); err != nil {
		return err
	}
	v.UnknownTaggedFields, err = readTagged(r, version >= 3, nil)
	return err
}

func (v *APIVersion) Encode(w io.Writer, version int16) error {
	if err := wire.WriteInt16(w, v.APIKey); err != nil {
		return err
	}
	if err := wire.WriteInt16(w, v.MinVersion); err != nil {
		return err
	}
	if err := wire.WriteInt16(w, v.MaxVersion); err != nil {
		return err
	}
	return writeTagged(w, version >= 3, nil, v.UnknownTaggedFields)
}

// APIVersionsResponse lists the API ranges a broker supports.
//
// FinalizedFeaturesEpoch and ZkMigrationReady travel as tagged fields in
// version 3; other tags, such as the feature lists, are kept raw.
type APIVersionsResponse struct {
	ErrorCode              int16
	APIKeys                []APIVersion
	ThrottleTimeMs         int32
	FinalizedFeaturesEpoch int64
	ZkMigrationReady       bool

	UnknownTaggedFields []wire.RawTaggedField
}

// NewAPIVersionsResponse returns a response with protocol defaults.
func NewAPIVersionsResponse() *APIVersionsResponse {
	return &APIVersionsResponse{FinalizedFeaturesEpoch: -1}
}

func (m *APIVersionsResponse) Decode(r io.Reader, version int16) error {
	if err := checkVersion("ApiVersionsResponse", version, 0, 3); err != nil {
		return err
	}
	flexible := version >= 3
	var err error
	if m.ErrorCode, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if m.APIKeys, err = wire.ReadArrayFunc(r, "api_keys", flexible, decoderAt[APIVersion](version)); err != nil {
		return err
	}
	m.ThrottleTimeMs = 0
	if version >= 1 {
		if m.ThrottleTimeMs, err = wire.ReadInt32(r); err != nil {
			return err
		}
	}
	m.FinalizedFeaturesEpoch = -1
	m.ZkMigrationReady = false
	m.UnknownTaggedFields, err = readTagged(r, flexible, func(tag uint32, size int, r io.Reader) (bool, error) {
		var err error
		switch tag {
		case tagFinalizedFeaturesEpoch:
			m.FinalizedFeaturesEpoch, err = wire.ReadInt64(r)
		case tagZkMigrationReady:
			m.ZkMigrationReady, err = wire.ReadBool(r)
		default:
			return false, nil
		}
		return true, err
	})
	return err
}

func (m *APIVersionsResponse) Encode(w io.Writer, version int16) error {
	if err := checkVersion("ApiVersionsResponse", version, 0, 3); err != nil {
		return err
	}
	flexible := version >= 3
	if err := wire.WriteInt16(w, m.ErrorCode); err != nil {
		return err
	}
	if err := wire.WriteArrayFunc(w, "api_keys", m.APIKeys, flexible, encoderAt[APIVersion](version)); err != nil {
		return err
	}
	if version >= 1 {
		if err := wire.WriteInt32(w, m.ThrottleTimeMs); err != nil {
			return err
		}
	}
	if !flexible {
		return nil
	}
	known, err := m.knownTaggedFields()
	if err != nil {
		return err
	}
	return writeTagged(w, flexible, known, m.UnknownTaggedFields)
}

// knownTaggedFields encodes the tagged fields that differ from their
// defaults.
func (m *APIVersionsResponse) knownTaggedFields() ([]wire.RawTaggedField, error) {
	var known []wire.RawTaggedField
	if m.FinalizedFeaturesEpoch != -1 {
		f, err := wire.TaggedField(tagFinalizedFeaturesEpoch, func(w io.Writer) error {
			return wire.WriteInt64(w, m.FinalizedFeaturesEpoch)
		})
		if err != nil {
			return nil, err
		}
		known = append(known, f)
	}
	if m.ZkMigrationReady {
		f, err := wire.TaggedField(tagZkMigrationReady, func(w io.Writer) error {
			return wire.WriteBool(w, true)
		})
		if err != nil {
			return nil, err
		}
		known = append(known, f)
	}
	return known, nil
}
