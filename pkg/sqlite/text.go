package sqlite

import "github.com/leapstack-labs/litetype/pkg/sqltype"

type stringCodec struct{}

func (stringCodec) SQLType() sqltype.Text { return sqltype.Text{} }

func (stringCodec) FromSQL(v ValueReader) (string, error) {
	t, err := v.ReadText()
	if err != nil {
		return "", err
	}
	return t.Clone()
}

func (stringCodec) ToSQL(h string, out OutputSink) (IsNull, error) {
	return NotNull, out.SetText(h)
}

type bytesCodec struct{}

func (bytesCodec) SQLType() sqltype.Binary { return sqltype.Binary{} }

func (bytesCodec) FromSQL(v ValueReader) ([]byte, error) {
	b, err := v.ReadBlob()
	if err != nil {
		return nil, err
	}
	return b.Clone()
}

func (bytesCodec) ToSQL(h []byte, out OutputSink) (IsNull, error) {
	return NotNull, out.SetBlob(h)
}

type timestamptzTextCodec struct{}

func (timestamptzTextCodec) SQLType() sqltype.Timestamptz { return sqltype.Timestamptz{} }

func (timestamptzTextCodec) FromSQL(v ValueReader) (string, error) {
	return stringCodec{}.FromSQL(v)
}

func (timestamptzTextCodec) ToSQL(h string, out OutputSink) (IsNull, error) {
	return stringCodec{}.ToSQL(h, out)
}

// textViewCodec returns the reader's view as is. The view is only valid
// until the row is advanced.
type textViewCodec struct{}

func (textViewCodec) SQLType() sqltype.Text { return sqltype.Text{} }

func (textViewCodec) FromSQL(v ValueReader) (TextView, error) {
	return v.ReadText()
}

func (textViewCodec) borrowsRow() {}

// blobViewCodec is the Binary counterpart of textViewCodec.
type blobViewCodec struct{}

func (blobViewCodec) SQLType() sqltype.Binary { return sqltype.Binary{} }

func (blobViewCodec) FromSQL(v ValueReader) (BlobView, error) {
	return v.ReadBlob()
}

func (blobViewCodec) borrowsRow() {}
