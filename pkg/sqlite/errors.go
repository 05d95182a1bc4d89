package sqlite

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

var (
	// ErrUnexpectedNull is returned when a non-nullable read meets SQL NULL.
	ErrUnexpectedNull = errors.New("unexpected null value")

	// ErrInvalidUTF8 is returned when stored text is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

	// ErrViewExpired is returned when a TextView or BlobView is used after
	// the row it was read from has been advanced.
	ErrViewExpired = errors.New("view used after its row was advanced")

	// ErrNilReference is returned when a reference encoder is given nil.
	ErrNilReference = errors.New("nil reference")

	// ErrUnsupportedSource is returned when the driver hands over a Go type
	// that does not correspond to a SQLite storage class.
	ErrUnsupportedSource = errors.New("unsupported driver value")
)

// DecodeError is returned when a stored value cannot be read as the
// requested Go type.
type DecodeError struct {
	SQLType string
	GoType  string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s as %s: %v", e.SQLType, e.GoType, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned when a Go value cannot be written to a bind slot.
type EncodeError struct {
	SQLType string
	GoType  string
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode %s as %s: %v", e.GoType, e.SQLType, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// MisuseError is returned when a logical type is used with a column or value
// it cannot describe, and the mismatch could only be seen at runtime.
type MisuseError struct {
	SQLType  string
	DeclType string
	Reason   string
}

func (e *MisuseError) Error() string {
	if e.DeclType != "" {
		return fmt.Sprintf("cannot use %s for column declared %q: %s", e.SQLType, e.DeclType, e.Reason)
	}
	return fmt.Sprintf("cannot use %s: %s", e.SQLType, e.Reason)
}

// TooBigError is returned by Output when text or a blob exceeds its limit.
type TooBigError struct {
	Kind  BindKind
	Size  int
	Limit int
}

func (e *TooBigError) Error() string {
	return fmt.Sprintf("%s value of %d bytes exceeds limit of %d bytes", e.Kind, e.Size, e.Limit)
}

func goTypeName[H any]() string {
	return reflect.TypeFor[H]().String()
}

func newDecodeError[H any](tag sqltype.Tag, err error) *DecodeError {
	return &DecodeError{SQLType: tag.Name(), GoType: goTypeName[H](), Err: err}
}

func newEncodeError[H any](tag sqltype.Tag, err error) *EncodeError {
	return &EncodeError{SQLType: tag.Name(), GoType: goTypeName[H](), Err: err}
}
