package wire

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// partition is a nested record: scalars, a compact array, a nullable string
// and a tagged-field tail.
type partition struct {
	Index    Int32
	Replicas []Int32
	Leader   *string
	Unknown  []RawTaggedField
}

func (p *partition) Decode(r io.Reader) error {
	if err := p.Index.Decode(r); err != nil {
		return err
	}
	replicas, err := ReadArray[Int32](r, "replicas", true)
	if err != nil {
		return err
	}
	p.Replicas = replicas
	if p.Leader, err = ReadNullableString(r, "leader", true); err != nil {
		return err
	}
	p.Unknown, err = ReadTaggedFields(r, nil)
	return err
}

func (p *partition) Encode(w io.Writer) error {
	if err := p.Index.Encode(w); err != nil {
		return err
	}
	if err := WriteArray(w, "replicas", p.Replicas, true); err != nil {
		return err
	}
	if err := WriteNullableString(w, "leader", p.Leader, true); err != nil {
		return err
	}
	return WriteTaggedFields(w, p.Unknown)
}

func TestArray_EmptyClassic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArray(&buf, "test", []Int32{}, false))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, buf.Bytes())

	got, err := ReadArray[Int32](&buf, "test", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestArray_CompactInt32Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArray(&buf, "test", []Int32{1, 2, 3}, true))
	assert.Equal(t, []byte{
		0x04,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x03,
	}, buf.Bytes())

	got, err := ReadArray[Int32](&buf, "test", true)
	require.NoError(t, err)
	assert.Equal(t, []Int32{1, 2, 3}, got)
}

func TestArray_NullInNonNullable(t *testing.T) {
	_, err := ReadArray[Int32](bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff}), "test", false)
	require.Error(t, err)
	assert.Equal(t, "non-nullable field test was serialized as null", err.Error())

	var nerr *NullError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "test", nerr.Field)
}

func TestArray_CompactLengthOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUvarint(&buf, uint32(math.MaxInt32)+2))

	_, err := ReadArray[Int32](&buf, "test", true)
	require.Error(t, err)
	assert.Equal(t, "array field test had invalid length 2147483648", err.Error())

	var lerr *InvalidLengthError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, KindArray, lerr.Kind)
	assert.Equal(t, int64(2147483648), lerr.Length)
}

func TestNullableArray(t *testing.T) {
	for _, compact := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteNullableArray[Int64](&buf, "test", nil, compact))
		got, err := ReadNullableArray[Int64](&buf, "test", compact)
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, WriteNullableArray(&buf, "test", []Int64{}, compact))
		got, err = ReadNullableArray[Int64](&buf, "test", compact)
		require.NoError(t, err)
		assert.NotNil(t, got, "empty array must not decode as null")
		assert.Empty(t, got)

		require.NoError(t, WriteNullableArray(&buf, "test", []Int64{-1, math.MaxInt64}, compact))
		got, err = ReadNullableArray[Int64](&buf, "test", compact)
		require.NoError(t, err)
		assert.Equal(t, []Int64{-1, math.MaxInt64}, got)
	}
}

func TestArray_NestedRecords(t *testing.T) {
	leader := "broker-2"
	in := []partition{
		{Index: 0, Replicas: []Int32{1, 2, 3}, Leader: &leader},
		{Index: 1, Replicas: []Int32{}, Unknown: []RawTaggedField{{Tag: 7, Data: []byte{0xde, 0xad}}}},
		{Index: 2, Replicas: []Int32{3}},
	}

	for _, compact := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteArray(&buf, "partitions", in, compact))

		got, err := ReadArray[partition](&buf, "partitions", compact)
		require.NoError(t, err)
		require.Len(t, got, len(in))
		for i := range in {
			assert.Equal(t, in[i].Index, got[i].Index)
			assert.Equal(t, in[i].Replicas, got[i].Replicas)
			assert.Equal(t, in[i].Leader, got[i].Leader)
			assert.Equal(t, in[i].Unknown, got[i].Unknown)
		}
		assert.Zero(t, buf.Len())
	}
}

func TestArray_OrderPreserved(t *testing.T) {
	in := []Int16{5, -3, 5, 0, 32767, -32768}

	var buf bytes.Buffer
	require.NoError(t, WriteArray(&buf, "test", in, true))
	got, err := ReadArray[Int16](&buf, "test", true)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestArray_ScalarElements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArray(&buf, "flags", []Bool{true, false, true}, false))
	flags, err := ReadArray[Bool](&buf, "flags", false)
	require.NoError(t, err)
	assert.Equal(t, []Bool{true, false, true}, flags)

	require.NoError(t, WriteArray(&buf, "raw", []Int8{-1, 0, 1}, true))
	raw, err := ReadArray[Int8](&buf, "raw", true)
	require.NoError(t, err)
	assert.Equal(t, []Int8{-1, 0, 1}, raw)

	require.NoError(t, WriteArray(&buf, "weights", []Float64{0.5, -2.25}, true))
	weights, err := ReadArray[Float64](&buf, "weights", true)
	require.NoError(t, err)
	assert.Equal(t, []Float64{0.5, -2.25}, weights)

	ids := []UUID{{1, 2, 3}, {}}
	require.NoError(t, WriteArray(&buf, "ids", ids, true))
	gotIDs, err := ReadArray[UUID](&buf, "ids", true)
	require.NoError(t, err)
	assert.Equal(t, ids, gotIDs)
	assert.Zero(t, buf.Len())
}

func TestArray_ElementErrorAborts(t *testing.T) {
	errBad := errors.New("bad element")

	var buf bytes.Buffer
	require.NoError(t, WriteArray(&buf, "test", []Int32{1, 2, 3}, true))

	calls := 0
	got, err := ReadArrayFunc(&buf, "test", true, func(r io.Reader) (int32, error) {
		calls++
		if calls == 2 {
			return 0, errBad
		}
		return ReadInt32(r)
	})
	assert.Same(t, errBad, err)
	assert.Nil(t, got)
	assert.Equal(t, 2, calls)
}

func TestArray_WriteElementErrorAborts(t *testing.T) {
	errBad := errors.New("bad element")

	var buf bytes.Buffer
	written := 0
	err := WriteArrayFunc(&buf, "test", []int32{1, 2, 3}, true, func(w io.Writer, v int32) error {
		if v == 2 {
			return errBad
		}
		written++
		return WriteInt32(w, v)
	})
	assert.Same(t, errBad, err)
	assert.Equal(t, 1, written)
}

func TestArray_TruncatedElements(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt32(&buf, 3))
	require.NoError(t, WriteInt32(&buf, 1))

	_, err := ReadArray[Int32](&buf, "test", false)
	assert.ErrorIs(t, err, io.EOF)
}

func TestArray_HugeDeclaredCountDoesNotPreallocate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInt32(&buf, math.MaxInt32))

	_, err := ReadArray[Int64](&buf, "test", false)
	assert.ErrorIs(t, err, io.EOF)
}

func TestArrayFunc_Nullable(t *testing.T) {
	encode := func(w io.Writer, s string) error { return WriteString(w, "name", s, true) }
	decode := func(r io.Reader) (string, error) { return ReadString(r, "name", true) }

	var buf bytes.Buffer
	require.NoError(t, WriteNullableArrayFunc[string](&buf, "names", nil, true, encode))
	got, err := ReadNullableArrayFunc(&buf, "names", true, decode)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, WriteNullableArrayFunc(&buf, "names", []string{"a", "b"}, true, encode))
	got, err = ReadNullableArrayFunc(&buf, "names", true, decode)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = ReadArrayFunc(bytes.NewReader([]byte{0x00}), "names", true, decode)
	assert.EqualError(t, err, "non-nullable field names was serialized as null")
}

func TestStringArray(t *testing.T) {
	in := []string{"orders", "", "payments.v2"}

	for _, compact := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteStringArray(&buf, "topics", in, compact))
		got, err := ReadStringArray(&buf, "topics", compact)
		require.NoError(t, err)
		assert.Equal(t, in, got)

		require.NoError(t, WriteNullableStringArray(&buf, "topics", nil, compact))
		got, err = ReadNullableStringArray(&buf, "topics", compact)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestStringArray_Errors(t *testing.T) {
	_, err := ReadStringArray(bytes.NewReader([]byte{0x00}), "topics", true)
	assert.EqualError(t, err, "non-nullable field topics was serialized as null")

	var buf bytes.Buffer
	require.NoError(t, WriteUvarint(&buf, uint32(math.MaxInt32)+2))
	_, err = ReadStringArray(&buf, "topics", true)
	assert.EqualError(t, err, "string array field topics had invalid length 2147483648")

	// a null element inside a string array is a null-violation for the field
	buf.Reset()
	require.NoError(t, WriteInt32(&buf, 1))
	require.NoError(t, WriteInt16(&buf, -1))
	_, err = ReadStringArray(&buf, "topics", false)
	assert.EqualError(t, err, "non-nullable field topics was serialized as null")
}
