// Package wire provides the shared encoding primitives used by every
// message record in kwire.
//
// The package implements the length-prefixed framing that a request/response
// protocol uses for its variable-length fields: strings, byte blobs and
// arrays. Each of these has a nullable and a non-nullable variant, and each
// can be written in one of two encodings.
//
// # Length Encodings
//
// Classic encoding uses a fixed-width big-endian signed integer:
//
//	string length:       int16, -1 = null
//	bytes/array length:  int32, -1 = null
//
// Compact encoding uses an unsigned varint holding the length plus one:
//
//	raw 0       null
//	raw N+1     N bytes or elements follow
//
// A compact length that does not fit the field's classic width (32767 for
// strings, 2147483647 for bytes and arrays) is rejected with an
// *InvalidLengthError rather than truncated.
//
// # Element Contract
//
// Arrays are generic over any element type whose pointer implements Decoder
// and Encoder:
//
//	type Decoder interface{ Decode(r io.Reader) error }
//	type Encoder interface{ Encode(w io.Writer) error }
//
// The scalar types in this package (Int8, Int16, Int32, Int64, ...) and the
// records in package message all satisfy it, so arrays of scalars, strings and
// nested records share one implementation. Records whose layout depends on a
// protocol version use the function-driven variants (ReadArrayFunc and
// friends) instead.
//
// # Usage
//
//	var buf bytes.Buffer
//	if err := wire.WriteArray(&buf, "partitions", []wire.Int32{1, 2, 3}, true); err != nil {
//	    return err
//	}
//	partitions, err := wire.ReadArray[wire.Int32](&buf, "partitions", true)
//
// # Error Handling
//
// Stream errors are returned exactly as the underlying io.Reader or io.Writer
// produced them. Two codec conditions have their own types:
//   - *NullError: a non-nullable field decoded as null
//   - *InvalidLengthError: a length outside the field's representable range
//
// Both match ErrNonNullable and ErrInvalidLength through errors.Is.
//
// Invalid UTF-8 in a string payload is not an error. It is replaced with
// U+FFFD on decode.
//
// # Thread Safety
//
// The functions in this package keep no state between calls. Concurrent use
// of distinct streams is safe; sharing one stream between goroutines needs
// external synchronization, as with any io.Reader.
package wire
