package message

import (
	"io"

	"github.com/ssargent/kwire/pkg/wire"
)

// RequestHeader precedes every request body.
//
// Version 0 carries only the routing fields, version 1 adds the client id and
// version 2 adds a tagged-field tail. The client id stays a classic nullable
// string in every version.
type RequestHeader struct {
	APIKey        int16
	APIVersion    int16
	CorrelationID int32
	ClientID      *string

	UnknownTaggedFields []wire.RawTaggedField
}

// RequestHeaderVersion returns the header version used by requests of the
// given API at apiVersion.
func RequestHeaderVersion(apiKey, apiVersion int16) int16 {
	switch apiKey {
	case APIKeyAPIVersions:
		if apiVersion >= 3 {
			return 2
		}
	case APIKeyMetadata:
		if apiVersion >= 9 {
			return 2
		}
	}
	return 1
}

func (h *RequestHeader) Decode(r io.Reader, version int16) error {
	if err := checkVersion("RequestHeader", version, 0, 2); err != nil {
		return err
	}
	var err error
	if h.APIKey, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if h.APIVersion, err = wire.ReadInt16(r); err != nil {
		return err
	}
	if h.CorrelationID, err = wire.ReadInt32(r); err != nil {
		return err
	}
	h.ClientID = nil
	if version >= 1 {
		if h.ClientID, err = wire.ReadNullableString(r, "client_id", false); err != nil {
			return err
		}
	}
	h.UnknownTaggedFields, err = readTagged(r, version >= 2, nil)
	return err
}

func (h *RequestHeader) Encode(w io.Writer, version int16) error {
	if err := checkVersion("RequestHeader", version, 0, 2); err != nil {
		return err
	}
	if err := wire.WriteInt16(w, h.APIKey); err != nil {
		return err
	}
	if err := wire.WriteInt16(w, h.APIVersion); err != nil {
		return err
	}
	if err := wire.WriteInt32(w, h.CorrelationID); err != nil {
		return err
	}
	if version >= 1 {
		if err := wire.WriteNullableString(w, "client_id", h.ClientID, false); err != nil {
			return err
		}
	}
	return writeTagged(w, version >= 2, nil, h.UnknownTaggedFields)
}
