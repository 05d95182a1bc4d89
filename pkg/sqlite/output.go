package sqlite

import (
	"database/sql/driver"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

// OutputSink receives the encoded form of one bind parameter.
type OutputSink interface {
	SetInt32(n int32) error
	SetInt64(n int64) error
	SetFloat64(f float64) error
	SetText(s string) error
	SetBlob(b []byte) error
}

// IsNull reports whether an encoded parameter denotes SQL NULL.
type IsNull bool

const (
	// NotNull means the sink holds a value.
	NotNull IsNull = false
	// Null means the parameter is SQL NULL and the sink should be ignored.
	Null IsNull = true
)

// BindKind names the sqlite3_bind_* call a bind slot corresponds to.
type BindKind int

// Bind kinds, one per sqlite3_bind_* function used.
const (
	BindNone BindKind = iota
	BindInt
	BindInt64
	BindDouble
	BindText
	BindBlob
)

// String returns the name of the bind kind.
func (k BindKind) String() string {
	switch k {
	case BindInt:
		return "int"
	case BindInt64:
		return "int64"
	case BindDouble:
		return "double"
	case BindText:
		return "text"
	case BindBlob:
		return "blob"
	default:
		return "none"
	}
}

// DefaultMaxLength is SQLite's default SQLITE_MAX_LENGTH.
const DefaultMaxLength = 1_000_000_000

// Output is an OutputSink holding a single bind slot. Text and blobs are
// stored by reference. The zero value is not usable; call NewOutput.
type Output struct {
	kind      BindKind
	i         int64
	f         float64
	s         string
	b         []byte
	maxLength int
}

var _ OutputSink = (*Output)(nil)

// NewOutput returns an empty Output limited to DefaultMaxLength bytes.
func NewOutput() *Output {
	return NewOutputWithLimit(DefaultMaxLength)
}

// NewOutputWithLimit returns an empty Output that rejects text and blobs
// longer than maxLength bytes. A non-positive limit means DefaultMaxLength.
func NewOutputWithLimit(maxLength int) *Output {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Output{maxLength: maxLength}
}

// SetInt32 binds a 32-bit integer.
func (o *Output) SetInt32(n int32) error {
	o.Reset()
	o.kind, o.i = BindInt, int64(n)
	return nil
}

// SetInt64 binds a 64-bit integer.
func (o *Output) SetInt64(n int64) error {
	o.Reset()
	o.kind, o.i = BindInt64, n
	return nil
}

// SetFloat64 binds a double.
func (o *Output) SetFloat64(f float64) error {
	o.Reset()
	o.kind, o.f = BindDouble, f
	return nil
}

// SetText binds s without copying it.
func (o *Output) SetText(s string) error {
	if len(s) > o.maxLength {
		return &TooBigError{Kind: BindText, Size: len(s), Limit: o.maxLength}
	}
	o.Reset()
	o.kind, o.s = BindText, s
	return nil
}

// SetBlob binds b without copying it. b must not change until the
// statement has executed.
func (o *Output) SetBlob(b []byte) error {
	if len(b) > o.maxLength {
		return &TooBigError{Kind: BindBlob, Size: len(b), Limit: o.maxLength}
	}
	o.Reset()
	o.kind, o.b = BindBlob, b
	return nil
}

// Kind returns the bind kind written last, or BindNone.
func (o *Output) Kind() BindKind { return o.kind }

// Storage returns the storage class of the bound value.
func (o *Output) Storage() sqltype.StorageClass {
	switch o.kind {
	case BindInt, BindInt64:
		return sqltype.StorageInteger
	case BindDouble:
		return sqltype.StorageReal
	case BindText:
		return sqltype.StorageText
	case BindBlob:
		return sqltype.StorageBlob
	default:
		return sqltype.StorageNull
	}
}

// Value returns the bound value as a driver.Value. Integers of either
// width are returned as int64. An empty blob is returned as a non-nil empty
// slice so drivers do not mistake it for NULL.
func (o *Output) Value() driver.Value {
	switch o.kind {
	case BindInt, BindInt64:
		return o.i
	case BindDouble:
		return o.f
	case BindText:
		return o.s
	case BindBlob:
		if o.b == nil {
			return []byte{}
		}
		return o.b
	default:
		return nil
	}
}

// Reset clears the slot, keeping the length limit.
func (o *Output) Reset() {
	*o = Output{maxLength: o.maxLength}
}
