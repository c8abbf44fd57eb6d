package cmd

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ssargent/kwire/pkg/wire"
)

// primitive decodes and encodes one kind of wire value for the CLI
type primitive struct {
	decode func(r *bytes.Reader, compact bool) (string, error)
	encode func(buf *bytes.Buffer, value string, compact, null bool) error
}

const fieldName = "value"

var primitives = map[string]primitive{
	"string": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			s, err := wire.ReadString(r, fieldName, compact)
			return strconv.Quote(s), err
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			return wire.WriteString(buf, fieldName, value, compact)
		},
	},
	"nullable-string": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			s, err := wire.ReadNullableString(r, fieldName, compact)
			if err != nil || s == nil {
				return "null", err
			}
			return strconv.Quote(*s), nil
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			if null {
				return wire.WriteNullableString(buf, fieldName, nil, compact)
			}
			return wire.WriteNullableString(buf, fieldName, &value, compact)
		},
	},
	"bytes": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			b, err := wire.ReadBytes(r, fieldName, compact)
			return hex.EncodeToString(b), err
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			b, err := parseHex(value)
			if err != nil {
				return err
			}
			return wire.WriteBytes(buf, fieldName, b, compact)
		},
	},
	"nullable-bytes": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			b, err := wire.ReadNullableBytes(r, fieldName, compact)
			if err != nil || b == nil {
				return "null", err
			}
			return hex.EncodeToString(b), nil
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			if null {
				return wire.WriteNullableBytes(buf, fieldName, nil, compact)
			}
			b, err := parseHex(value)
			if err != nil {
				return err
			}
			if b == nil {
				b = []byte{}
			}
			return wire.WriteNullableBytes(buf, fieldName, b, compact)
		},
	},
	"int32-array": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			elems, err := wire.ReadNullableArray[wire.Int32](r, fieldName, compact)
			if err != nil || elems == nil {
				return "null", err
			}
			parts := make([]string, len(elems))
			for i, e := range elems {
				parts[i] = strconv.FormatInt(int64(e), 10)
			}
			return "[" + strings.Join(parts, ",") + "]", nil
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			if null {
				return wire.WriteNullableArray[wire.Int32](buf, fieldName, nil, compact)
			}
			elems := []wire.Int32{}
			for _, part := range splitList(value) {
				n, err := strconv.ParseInt(part, 10, 32)
				if err != nil {
					return fmt.Errorf("invalid int32 %q: %w", part, err)
				}
				elems = append(elems, wire.Int32(n))
			}
			return wire.WriteNullableArray(buf, fieldName, elems, compact)
		},
	},
	"string-array": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			elems, err := wire.ReadNullableStringArray(r, fieldName, compact)
			if err != nil || elems == nil {
				return "null", err
			}
			parts := make([]string, len(elems))
			for i, e := range elems {
				parts[i] = strconv.Quote(e)
			}
			return "[" + strings.Join(parts, ",") + "]", nil
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			if null {
				return wire.WriteNullableStringArray(buf, fieldName, nil, compact)
			}
			elems := splitList(value)
			if elems == nil {
				elems = []string{}
			}
			return wire.WriteNullableStringArray(buf, fieldName, elems, compact)
		},
	},
	"uvarint": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			v, err := wire.ReadUvarint(r)
			return strconv.FormatUint(uint64(v), 10), err
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid uvarint %q: %w", value, err)
			}
			return wire.WriteUvarint(buf, uint32(v))
		},
	},
	"tagged-fields": {
		decode: func(r *bytes.Reader, compact bool) (string, error) {
			fields, err := wire.ReadTaggedFields(r, nil)
			if err != nil {
				return "", err
			}
			parts := make([]string, len(fields))
			for i, f := range fields {
				parts[i] = fmt.Sprintf("%d=%s", f.Tag, hex.EncodeToString(f.Data))
			}
			return "{" + strings.Join(parts, ",") + "}", nil
		},
		encode: func(buf *bytes.Buffer, value string, compact, null bool) error {
			var fields []wire.RawTaggedField
			for _, part := range splitList(value) {
				tag, data, ok := strings.Cut(part, "=")
				if !ok {
					return fmt.Errorf("invalid tagged field %q, want tag=hex", part)
				}
				n, err := strconv.ParseUint(tag, 10, 32)
				if err != nil {
					return fmt.Errorf("invalid tag %q: %w", tag, err)
				}
				b, err := parseHex(data)
				if err != nil {
					return err
				}
				fields = append(fields, wire.RawTaggedField{Tag: uint32(n), Data: b})
			}
			return wire.WriteTaggedFields(buf, fields)
		},
	},
}

// primitiveKinds returns the supported kinds in sorted order
func primitiveKinds() []string {
	kinds := make([]string, 0, len(primitives))
	for k := range primitives {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func lookupPrimitive(kind string) (primitive, error) {
	p, ok := primitives[kind]
	if !ok {
		return primitive{}, fmt.Errorf("unknown kind %q (supported: %s)", kind, strings.Join(primitiveKinds(), ", "))
	}
	return p, nil
}

// decodePrimitive decodes data as kind and returns the formatted value and
// the number of bytes left over
func decodePrimitive(kind string, data []byte, compact bool) (string, int, error) {
	p, err := lookupPrimitive(kind)
	if err != nil {
		return "", 0, err
	}
	r := bytes.NewReader(data)
	out, err := p.decode(r, compact)
	if err != nil {
		return "", 0, err
	}
	return out, r.Len(), nil
}

// encodePrimitive encodes value as kind
func encodePrimitive(kind, value string, compact, null bool) ([]byte, error) {
	p, err := lookupPrimitive(kind)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := p.encode(&buf, value, compact, null); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseHex accepts hex with optional spaces, colons or a 0x prefix
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "\n", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// splitList splits a comma-separated list; an empty string is an empty list
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
