package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSink = errors.New("sink closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errSink }

func TestString_RoundTrip(t *testing.T) {
	values := []string{
		"",
		"a",
		"client-1",
		"🔑 unicode key with émojis",
		strings.Repeat("x", 200),
		strings.Repeat("a", MaxStringLen),
	}

	for _, compact := range []bool{false, true} {
		for _, v := range values {
			var buf bytes.Buffer
			require.NoError(t, WriteString(&buf, "test", v, compact))

			got, err := ReadString(&buf, "test", compact)
			require.NoError(t, err)
			assert.Equal(t, v, got)
			assert.Zero(t, buf.Len())
		}
	}
}

func TestString_ClassicLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "test", "abc", false))
	assert.Equal(t, []byte{0x00, 0x03, 'a', 'b', 'c'}, buf.Bytes())

	buf.Reset()
	require.NoError(t, WriteString(&buf, "test", "abc", true))
	assert.Equal(t, []byte{0x04, 'a', 'b', 'c'}, buf.Bytes())
}

func TestString_LengthCountsBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "test", "é", true))
	assert.Equal(t, []byte{0x03, 0xc3, 0xa9}, buf.Bytes())
}

func TestString_TooLong(t *testing.T) {
	value := strings.Repeat("a", MaxStringLen+1)

	for _, compact := range []bool{false, true} {
		var buf bytes.Buffer
		err := WriteString(&buf, "test", value, compact)
		require.Error(t, err)
		assert.Equal(t, "string field test had invalid length 32768", err.Error())
		assert.ErrorIs(t, err, ErrInvalidLength)
		assert.Zero(t, buf.Len(), "nothing should be written")
	}
}

func TestString_NullInNonNullable(t *testing.T) {
	_, err := ReadString(bytes.NewReader([]byte{0xff, 0xff}), "client_id", false)
	require.Error(t, err)
	assert.Equal(t, "non-nullable field client_id was serialized as null", err.Error())
	assert.ErrorIs(t, err, ErrNonNullable)

	_, err = ReadString(bytes.NewReader([]byte{0x00}), "client_id", true)
	assert.ErrorIs(t, err, ErrNonNullable)
}

func TestString_CompactLengthOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUvarint(&buf, MaxStringLen+2))

	_, err := ReadString(&buf, "name", true)
	require.Error(t, err)
	assert.Equal(t, "string field name had invalid length 32768", err.Error())
}

func TestNullableString(t *testing.T) {
	for _, compact := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteNullableString(&buf, "test", nil, compact))
		got, err := ReadNullableString(&buf, "test", compact)
		require.NoError(t, err)
		assert.Nil(t, got)

		empty := ""
		require.NoError(t, WriteNullableString(&buf, "test", &empty, compact))
		got, err = ReadNullableString(&buf, "test", compact)
		require.NoError(t, err)
		require.NotNil(t, got, "empty string must not decode as null")
		assert.Equal(t, "", *got)

		value := "rack-a"
		require.NoError(t, WriteNullableString(&buf, "test", &value, compact))
		got, err = ReadNullableString(&buf, "test", compact)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, value, *got)
	}
}

func TestString_LossyUTF8(t *testing.T) {
	in := []byte{0x00, 0x03, 'a', 0xff, 'b'}
	got, err := ReadString(bytes.NewReader(in), "test", false)
	require.NoError(t, err)
	assert.Equal(t, "a�b", got)

	truncated := []byte{0x04, 'x', 0xe2, 0x82}
	got, err = ReadString(bytes.NewReader(truncated), "test", true)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasPrefix(got, "x�"))
}

func TestString_Truncated(t *testing.T) {
	_, err := ReadString(bytes.NewReader([]byte{0x00, 0x05, 'a', 'b'}), "test", false)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadString(bytes.NewReader(nil), "test", false)
	assert.ErrorIs(t, err, io.EOF)
}

func TestString_WriterErrorPropagates(t *testing.T) {
	err := WriteString(failingWriter{}, "test", "value", true)
	assert.Same(t, errSink, err)

	err = WriteNullableString(failingWriter{}, "test", nil, false)
	assert.Same(t, errSink, err)
}
