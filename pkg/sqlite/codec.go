package sqlite

import "github.com/leapstack-labs/litetype/pkg/sqltype"

// Decoder converts a stored value of logical type T into a Go value of type H.
//
// SQLType returns the zero tag. Its only job is to make the tag part of the
// method set, so a decoder for one logical type cannot stand in for another.
type Decoder[T sqltype.Tag, H any] interface {
	SQLType() T
	FromSQL(v ValueReader) (H, error)
}

// Encoder converts a Go value of type H into a bind parameter of logical
// type T.
type Encoder[T sqltype.Tag, H any] interface {
	SQLType() T
	ToSQL(h H, out OutputSink) (IsNull, error)
}

// Codec converts in both directions.
type Codec[T sqltype.Tag, H any] interface {
	Decoder[T, H]
	Encoder[T, H]
}

// Decode reads v with d. Failures are returned as *DecodeError wrapping the
// reader's error; a failed read never yields a default value.
func Decode[T sqltype.Tag, H any](d Decoder[T, H], v ValueReader) (H, error) {
	h, err := d.FromSQL(v)
	if err != nil {
		var zero H
		return zero, newDecodeError[H](d.SQLType(), err)
	}
	return h, nil
}

// Encode writes h to out with e. Failures are returned as *EncodeError.
func Encode[T sqltype.Tag, H any](e Encoder[T, H], h H, out OutputSink) (IsNull, error) {
	isNull, err := e.ToSQL(h, out)
	if err != nil {
		return NotNull, newEncodeError[H](e.SQLType(), err)
	}
	return isNull, nil
}

// Codecs for the built-in logical types.
var (
	Int16   Codec[sqltype.SmallInt, int16] = int16Codec{}
	Int32   Codec[sqltype.Integer, int32]  = int32Codec{}
	Int64   Codec[sqltype.BigInt, int64]   = int64Codec{}
	Bool    Codec[sqltype.Bool, bool]      = boolCodec{}
	Float32 Codec[sqltype.Float, float32]  = float32Codec{}
	Float64 Codec[sqltype.Double, float64] = float64Codec{}
	String  Codec[sqltype.Text, string]    = stringCodec{}
	Bytes   Codec[sqltype.Binary, []byte]  = bytesCodec{}

	// TimestamptzText reads and writes a Timestamptz column as its raw text.
	TimestamptzText Codec[sqltype.Timestamptz, string] = timestamptzTextCodec{}
)

// Zero-copy decoders. See TextView and BlobView for the lifetime rules.
var (
	StringView Decoder[sqltype.Text, TextView]   = textViewCodec{}
	BytesView  Decoder[sqltype.Binary, BlobView] = blobViewCodec{}
)
