package sqlite

import (
	"math"
	"testing"
	"time"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_ReadLong(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want int64
	}{
		{"integer", int64(42), 42},
		{"real truncates", 3.9, 3},
		{"negative real truncates toward zero", -3.9, -3},
		{"huge real saturates", 1e300, math.MaxInt64},
		{"huge negative real saturates", -1e300, math.MinInt64},
		{"NaN", math.NaN(), 0},
		{"bool", true, 1},
		{"text", "42", 42},
		{"text with garbage", "  -17abc", -17},
		{"text with plus sign", "+5", 5},
		{"text without digits", "abc", 0},
		{"text real", "1.9", 1},
		{"text overflow", "99999999999999999999", math.MaxInt64},
		{"text negative overflow", "-99999999999999999999", math.MinInt64},
		{"text min int64", "-9223372036854775808", math.MinInt64},
		{"blob", []byte("12"), 12},
		{"time", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewValue(tt.src, nil).ReadLong()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_ReadInteger(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want int32
	}{
		{"small", int64(7), 7},
		{"negative", int64(-1), -1},
		{"keeps low 32 bits", int64(1<<32 + 7), 7},
		{"sign bit of low word", int64(0x80000000), math.MinInt32},
		{"text", "123", 123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewValue(tt.src, nil).ReadInteger()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_ReadDouble(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want float64
	}{
		{"integer", int64(3), 3},
		{"real", 2.5, 2.5},
		{"text with exponent and garbage", "1.5e3xyz", 1500},
		{"leading dot", "  .5", 0.5},
		{"trailing dot", "-2.", -2},
		{"dangling exponent", "1e", 1},
		{"exponent without mantissa", "e5", 0},
		{"no digits", "abc", 0},
		{"out of range", "1e400", math.Inf(1)},
		{"blob", []byte("0.25"), 0.25},
		{"bool", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewValue(tt.src, nil).ReadDouble()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_ReadText(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"text", "hello", "hello"},
		{"blob", []byte("bytes"), "bytes"},
		{"integer", int64(-12), "-12"},
		{"real", 1.5, "1.5"},
		{"integral real keeps decimal point", 100.0, "100.0"},
		{"exponent real keeps decimal point", 1e20, "1.0e+20"},
		{"fraction", 0.1, "0.1"},
		{"bool", true, "1"},
		{"time", ts, "2024-05-01 12:30:00+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := NewValue(tt.src, nil).ReadText()
			require.NoError(t, err)
			got, err := view.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_ReadText_InvalidUTF8(t *testing.T) {
	for _, src := range []any{[]byte{0xff, 0xfe}, string([]byte{'a', 0xc3})} {
		_, err := NewValue(src, nil).ReadText()
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	}
}

func TestValue_ReadBlob(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want []byte
	}{
		{"blob", []byte{1, 2}, []byte{1, 2}},
		{"text", "ab", []byte("ab")},
		{"integer", int64(7), []byte("7")},
		{"real", 0.5, []byte("0.5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := NewValue(tt.src, nil).ReadBlob()
			require.NoError(t, err)
			got, err := view.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_Null(t *testing.T) {
	v := NewValue(nil, nil)
	assert.True(t, v.IsNull())

	_, err := v.ReadInteger()
	assert.ErrorIs(t, err, ErrUnexpectedNull)
	_, err = v.ReadLong()
	assert.ErrorIs(t, err, ErrUnexpectedNull)
	_, err = v.ReadDouble()
	assert.ErrorIs(t, err, ErrUnexpectedNull)
	_, err = v.ReadText()
	assert.ErrorIs(t, err, ErrUnexpectedNull)
	_, err = v.ReadBlob()
	assert.ErrorIs(t, err, ErrUnexpectedNull)
}

func TestValue_UnsupportedSource(t *testing.T) {
	v := NewValue(int32(1), nil)

	_, err := v.ReadLong()
	require.ErrorIs(t, err, ErrUnsupportedSource)
	assert.Contains(t, err.Error(), "int32")

	_, err = v.ReadText()
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestValue_Storage(t *testing.T) {
	assert.Equal(t, sqltype.StorageNull, NewValue(nil, nil).Storage())
	assert.Equal(t, sqltype.StorageInteger, NewValue(int64(1), nil).Storage())
	assert.Equal(t, sqltype.StorageInteger, NewValue(true, nil).Storage())
	assert.Equal(t, sqltype.StorageReal, NewValue(1.0, nil).Storage())
	assert.Equal(t, sqltype.StorageText, NewValue("x", nil).Storage())
	assert.Equal(t, sqltype.StorageText, NewValue(time.Now(), nil).Storage())
	assert.Equal(t, sqltype.StorageBlob, NewValue([]byte("x"), nil).Storage())
}
