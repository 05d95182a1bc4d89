package sqlite

import "github.com/leapstack-labs/litetype/pkg/sqltype"

type int16Codec struct{}

func (int16Codec) SQLType() sqltype.SmallInt { return sqltype.SmallInt{} }

func (int16Codec) FromSQL(v ValueReader) (int16, error) {
	n, err := v.ReadInteger()
	if err != nil {
		return 0, err
	}
	return int16(n), nil //nolint:gosec // we want to truncate here
}

func (int16Codec) ToSQL(h int16, out OutputSink) (IsNull, error) {
	return NotNull, out.SetInt32(int32(h))
}

type int32Codec struct{}

func (int32Codec) SQLType() sqltype.Integer { return sqltype.Integer{} }

func (int32Codec) FromSQL(v ValueReader) (int32, error) {
	return v.ReadInteger()
}

func (int32Codec) ToSQL(h int32, out OutputSink) (IsNull, error) {
	return NotNull, out.SetInt32(h)
}

type int64Codec struct{}

func (int64Codec) SQLType() sqltype.BigInt { return sqltype.BigInt{} }

func (int64Codec) FromSQL(v ValueReader) (int64, error) {
	return v.ReadLong()
}

func (int64Codec) ToSQL(h int64, out OutputSink) (IsNull, error) {
	return NotNull, out.SetInt64(h)
}

type boolCodec struct{}

func (boolCodec) SQLType() sqltype.Bool { return sqltype.Bool{} }

func (boolCodec) FromSQL(v ValueReader) (bool, error) {
	n, err := v.ReadInteger()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (boolCodec) ToSQL(h bool, out OutputSink) (IsNull, error) {
	var n int32
	if h {
		n = 1
	}
	return int32Codec{}.ToSQL(n, out)
}

type float32Codec struct{}

func (float32Codec) SQLType() sqltype.Float { return sqltype.Float{} }

func (float32Codec) FromSQL(v ValueReader) (float32, error) {
	f, err := v.ReadDouble()
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// ToSQL widens to float64; SQLite only binds doubles.
func (float32Codec) ToSQL(h float32, out OutputSink) (IsNull, error) {
	return NotNull, out.SetFloat64(float64(h))
}

type float64Codec struct{}

func (float64Codec) SQLType() sqltype.Double { return sqltype.Double{} }

func (float64Codec) FromSQL(v ValueReader) (float64, error) {
	return v.ReadDouble()
}

func (float64Codec) ToSQL(h float64, out OutputSink) (IsNull, error) {
	return NotNull, out.SetFloat64(h)
}
