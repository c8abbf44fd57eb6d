package message

import (
	"io"

	"github.com/ssargent/kwire/pkg/wire"
)

// MetadataRequestTopic names one topic whose metadata is requested.
type MetadataRequestTopic struct {
	// TopicID is sent from version 10.
	TopicID wire.UUID
	// Name is nullable from version 10 and required before it.
	Name *string

	UnknownTaggedFields []wire.RawTaggedField
}

func (t *MetadataRequestTopic) Decode(r io.Reader, version int16) error {
	flexible := version >= 9
	var err error
	if version >= 10 {
		if err = t.TopicID.Decode(r); err != nil {
			return err
		}
		if t.Name, err = wire.ReadNullableString(r, "name", flexible); err != nil {
			return err
		}
	} else {
		t.TopicID = wire.UUID{}
		name, err := wire.ReadString(r, "name", flexible)
		if err != nil {
			return err
		}
		t.Name = &name
	}
	t.UnknownTaggedFields, err = readTagged(r, flexible, nil)
	return err
}

func (t *MetadataRequestTopic) Encode(w io.Writer, version int16) error {
	flexible := version >= 9
	if version >= 10 {
		if err := t.TopicID.Encode(w); err != nil {
			return err
		}
		if err := wire.WriteNullableString(w, "name", t.Name, flexible); err != nil {
			return err
		}
	} else {
		if t.Name == nil {
			return &wire.NullError{Field: "name"}
		}
		if err := wire.WriteString(w, "name", *t.Name, flexible); err != nil {
			return err
		}
	}
	return writeTagged(w, flexible, nil, t.UnknownTaggedFields)
}

// MetadataRequest asks for topic and broker metadata. A nil Topics requests
// every topic from version 1; version 0 uses an empty array for that.
type MetadataRequest struct {
	Topics                             []MetadataRequestTopic
	AllowAutoTopicCreation             bool
	IncludeClusterAuthorizedOperations bool
	IncludeTopicAuthorizedOperations   bool

	UnknownTaggedFields []wire.RawTaggedField
}

// NewMetadataRequest returns a request with protocol defaults.
func NewMetadataRequest() *MetadataRequest {
	return &MetadataRequest{AllowAutoTopicCreation: true}
}

func (m *MetadataRequest) Decode(r io.Reader, version int16) error {
	if err := checkVersion("MetadataRequest", version, 0, 12); err != nil {
		return err
	}
	flexible := version >= 9
	var err error
	if version >= 1 {
		m.Topics, err = wire.ReadNullableArrayFunc(r, "topics", flexible, decoderAt[MetadataRequestTopic](version))
	} else {
		m.Topics, err = wire.ReadArrayFunc(r, "topics", flexible, decoderAt[MetadataRequestTopic](version))
	}
	if err != nil {
		return err
	}
	m.AllowAutoTopicCreation = true
	if version >= 4 {
		if m.AllowAutoTopicCreation, err = wire.ReadBool(r); err != nil {
			return err
		}
	}
	m.IncludeClusterAuthorizedOperations = false
	if version >= 8 && version <= 10 {
		if m.IncludeClusterAuthorizedOperations, err = wire.ReadBool(r); err != nil {
			return err
		}
	}
	m.IncludeTopicAuthorizedOperations = false
	if version >= 8 {
		if m.IncludeTopicAuthorizedOperations, err = wire.ReadBool(r); err != nil {
			return err
		}
	}
	m.UnknownTaggedFields, err = readTagged(r, flexible, nil)
	return err
}

func (m *MetadataRequest) Encode(w io.Writer, version int16) error {
	if err := checkVersion("MetadataRequest", version, 0, 12); err != nil {
		return err
	}
	flexible := version >= 9
	var err error
	if version >= 1 {
		err = wire.WriteNullableArrayFunc(w, "topics", m.Topics, flexible, encoderAt[MetadataRequestTopic](version))
	} else {
		err = wire.WriteArrayFunc(w, "topics", m.Topics, flexible, encoderAt[MetadataRequestTopic](version))
	}
	if err != nil {
		return err
	}
	if version >= 4 {
		if err := wire.WriteBool(w, m.AllowAutoTopicCreation); err != nil {
			return err
		}
	}
	if version >= 8 && version <= 10 {
		if err := wire.WriteBool(w, m.IncludeClusterAuthorizedOperations); err != nil {
			return err
		}
	}
	if version >= 8 {
		if err := wire.WriteBool(w, m.IncludeTopicAuthorizedOperations); err != nil {
			return err
		}
	}
	return writeTagged(w, flexible, nil, m.UnknownTaggedFields)
}
