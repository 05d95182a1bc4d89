package sqlite

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

// ValueReader is a borrowed accessor over one column of the current row.
// Each read interprets the stored value through SQLite's storage class
// conversions. Views returned by ReadText and ReadBlob are only valid for the
// row the reader belongs to.
type ValueReader interface {
	ReadInteger() (int32, error)
	ReadLong() (int64, error)
	ReadDouble() (float64, error)
	ReadText() (TextView, error)
	ReadBlob() (BlobView, error)
}

// TimeFormat is the text form of time.Time values, matching what
// modernc.org/sqlite writes for them.
const TimeFormat = "2006-01-02 15:04:05.999999999-07:00"

// Value is a ValueReader over a value delivered by database/sql to an
// sql.Scanner: nil, int64, float64, bool, string, []byte or time.Time.
// A []byte source is not copied.
type Value struct {
	src   any
	epoch *Epoch
	stamp uint64
}

var _ ValueReader = (*Value)(nil)

// NewValue wraps src as read at the current position of epoch.
// epoch may be nil for values that are not tied to a cursor.
func NewValue(src any, epoch *Epoch) *Value {
	return &Value{src: src, epoch: epoch, stamp: epoch.Current()}
}

// Storage returns the storage class of the wrapped value.
func (v *Value) Storage() sqltype.StorageClass {
	switch v.src.(type) {
	case nil:
		return sqltype.StorageNull
	case int64, bool:
		return sqltype.StorageInteger
	case float64:
		return sqltype.StorageReal
	case []byte:
		return sqltype.StorageBlob
	default:
		return sqltype.StorageText
	}
}

// IsNull reports whether the value is SQL NULL.
func (v *Value) IsNull() bool { return v.src == nil }

// ReadInteger returns the value as a 32-bit integer. Like
// sqlite3_column_int it keeps the low 32 bits of the 64-bit value.
func (v *Value) ReadInteger() (int32, error) {
	n, err := v.ReadLong()
	if err != nil {
		return 0, err
	}
	return int32(n), nil //nolint:gosec // sqlite3_column_int truncates
}

// ReadLong returns the value as a 64-bit integer.
func (v *Value) ReadLong() (int64, error) {
	switch src := v.src.(type) {
	case nil:
		return 0, ErrUnexpectedNull
	case int64:
		return src, nil
	case float64:
		return realToInt(src), nil
	case bool:
		if src {
			return 1, nil
		}
		return 0, nil
	case string:
		return atoi(src), nil
	case []byte:
		return atoi(src), nil
	case time.Time:
		return atoi(src.Format(TimeFormat)), nil
	default:
		return 0, unsupported(src)
	}
}

// ReadDouble returns the value as a 64-bit float.
func (v *Value) ReadDouble() (float64, error) {
	switch src := v.src.(type) {
	case nil:
		return 0, ErrUnexpectedNull
	case int64:
		return float64(src), nil
	case float64:
		return src, nil
	case bool:
		if src {
			return 1, nil
		}
		return 0, nil
	case string:
		return atof(src), nil
	case []byte:
		return atof(src), nil
	case time.Time:
		return atof(src.Format(TimeFormat)), nil
	default:
		return 0, unsupported(src)
	}
}

// ReadText returns the value as text. Text stored as []byte is aliased, not
// copied. Text that is not valid UTF-8 is an error.
func (v *Value) ReadText() (TextView, error) {
	var s string
	switch src := v.src.(type) {
	case nil:
		return TextView{}, ErrUnexpectedNull
	case string:
		s = src
	case []byte:
		s = unsafe.String(unsafe.SliceData(src), len(src))
	case int64:
		s = strconv.FormatInt(src, 10)
	case float64:
		s = formatReal(src)
	case bool:
		s = "0"
		if src {
			s = "1"
		}
	case time.Time:
		s = src.Format(TimeFormat)
	default:
		return TextView{}, unsupported(src)
	}
	if !utf8.ValidString(s) {
		return TextView{}, ErrInvalidUTF8
	}
	return TextView{s: s, epoch: v.epoch, stamp: v.stamp}, nil
}

// ReadBlob returns the value as bytes. A []byte source is aliased; other
// sources are converted to their text form first.
func (v *Value) ReadBlob() (BlobView, error) {
	var b []byte
	switch src := v.src.(type) {
	case nil:
		return BlobView{}, ErrUnexpectedNull
	case []byte:
		b = src
	case string:
		b = []byte(src)
	case int64, float64, bool, time.Time:
		t, err := v.ReadText()
		if err != nil {
			return BlobView{}, err
		}
		b = []byte(t.s)
	default:
		return BlobView{}, unsupported(src)
	}
	return BlobView{b: b, epoch: v.epoch, stamp: v.stamp}, nil
}

func unsupported(src any) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
}

// realToInt converts like SQLite's doubleToInt64: truncation toward zero,
// saturating at the int64 range.
func realToInt(r float64) int64 {
	switch {
	case math.IsNaN(r):
		return 0
	case r <= math.MinInt64:
		return math.MinInt64
	case r >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(r)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// atoi parses the longest leading integer of s the way SQLite does when it
// converts text to INTEGER: leading whitespace and a sign are allowed,
// trailing garbage is ignored, no digits yields 0, overflow saturates.
func atoi[S ~string | ~[]byte](s S) int64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	var u uint64
	overflow := false
	for ; i < len(s) && isDigit(s[i]); i++ {
		d := uint64(s[i] - '0')
		if u > (math.MaxUint64-d)/10 {
			overflow = true
			continue
		}
		u = u*10 + d
	}
	switch {
	case neg && (overflow || u > 1<<63):
		return math.MinInt64
	case neg:
		return -int64(u) //nolint:gosec // u <= 1<<63 checked above
	case overflow || u > math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(u)
	}
}

// atof parses the longest leading real number of s: whitespace, sign,
// digits, optional fraction, optional exponent. No digits yields 0.
func atof[S ~string | ~[]byte](s S) float64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	// ParseFloat returns ±Inf alongside a range error, which is also
	// what SQLite produces for out of range input.
	f, _ := strconv.ParseFloat(string(s[start:i]), 64)
	return f
}

// formatReal renders a double the way SQLite's "%!.15g" does: 15
// significant digits and always a decimal point.
func formatReal(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', 15, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	if idx := strings.IndexByte(s, 'e'); idx != -1 {
		return s[:idx] + ".0" + s[idx:]
	}
	return s + ".0"
}
