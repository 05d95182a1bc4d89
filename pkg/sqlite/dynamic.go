package sqlite

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

// CheckDeclared reports a *MisuseError when a column declared as declType
// cannot hold values of the logical type tag: numeric types on a TEXT
// column, or text types on an INTEGER or REAL column. SQLite would convert
// silently in both cases. BLOB and NUMERIC columns accept any type.
func CheckDeclared(tag sqltype.Tag, declType string) error {
	if tag == nil {
		return nilTagError(declType)
	}
	aff := sqltype.AffinityOf(declType)
	switch tag.Storage() {
	case sqltype.StorageInteger, sqltype.StorageReal:
		if aff == sqltype.AffinityText {
			return &MisuseError{
				SQLType:  tag.Name(),
				DeclType: declType,
				Reason:   "numeric type on a column with TEXT affinity",
			}
		}
	case sqltype.StorageText:
		if aff == sqltype.AffinityInteger || aff == sqltype.AffinityReal {
			return &MisuseError{
				SQLType:  tag.Name(),
				DeclType: declType,
				Reason:   fmt.Sprintf("text type on a column with %s affinity", aff),
			}
		}
	}
	return nil
}

// DecodeAny decodes v with the default codec of a logical type known only
// at runtime. JsonValidFlags columns decode as int32.
func DecodeAny(tag sqltype.Tag, v ValueReader) (any, error) {
	if tag == nil {
		return nil, nilTagError("")
	}
	switch tag.(type) {
	case sqltype.SmallInt:
		return decodeAny(Int16, v)
	case sqltype.Integer, sqltype.JSONValidFlags:
		return decodeAny(Int32, v)
	case sqltype.BigInt:
		return decodeAny(Int64, v)
	case sqltype.Bool:
		return decodeAny(Bool, v)
	case sqltype.Float:
		return decodeAny(Float32, v)
	case sqltype.Double:
		return decodeAny(Float64, v)
	case sqltype.Text:
		return decodeAny(String, v)
	case sqltype.Binary:
		return decodeAny(Bytes, v)
	case sqltype.Timestamptz:
		return decodeAny(TimestamptzText, v)
	default:
		return nil, &MisuseError{SQLType: tag.Name(), Reason: "no decoder registered"}
	}
}

// HostType returns the Go type DecodeAny produces for tag, or "" if no
// decoder is registered for it.
func HostType(tag sqltype.Tag) string {
	switch tag.(type) {
	case sqltype.SmallInt:
		return goTypeName[int16]()
	case sqltype.Integer, sqltype.JSONValidFlags:
		return goTypeName[int32]()
	case sqltype.BigInt:
		return goTypeName[int64]()
	case sqltype.Bool:
		return goTypeName[bool]()
	case sqltype.Float:
		return goTypeName[float32]()
	case sqltype.Double:
		return goTypeName[float64]()
	case sqltype.Text, sqltype.Timestamptz:
		return goTypeName[string]()
	case sqltype.Binary:
		return goTypeName[[]byte]()
	default:
		return ""
	}
}

func nilTagError(declType string) *MisuseError {
	return &MisuseError{SQLType: "<nil>", DeclType: declType, Reason: "no logical type given"}
}

func decodeAny[T sqltype.Tag, H any](d Decoder[T, H], v ValueReader) (any, error) {
	h, err := Decode(d, v)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// EncodeText parses a literal for a logical type known only at runtime and
// encodes it with that type's codec. Integers and floats use Go's strconv
// syntax, booleans strconv.ParseBool. Binary accepts SQLite's x'0A1B' blob
// literal or raw text. JsonValidFlags accepts a flag name or a bare integer;
// the integer goes through the raw encoder.
func EncodeText(tag sqltype.Tag, lit string, out OutputSink) (IsNull, error) {
	if tag == nil {
		return NotNull, nilTagError("")
	}
	switch tag.(type) {
	case sqltype.SmallInt:
		n, err := strconv.ParseInt(lit, 10, 16)
		if err != nil {
			return NotNull, newEncodeError[int16](tag, err)
		}
		return Encode(Int16, int16(n), out)
	case sqltype.Integer:
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			return NotNull, newEncodeError[int32](tag, err)
		}
		return Encode(Int32, int32(n), out)
	case sqltype.BigInt:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return NotNull, newEncodeError[int64](tag, err)
		}
		return Encode(Int64, n, out)
	case sqltype.Bool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return NotNull, newEncodeError[bool](tag, err)
		}
		return Encode(Bool, b, out)
	case sqltype.Float:
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return NotNull, newEncodeError[float32](tag, err)
		}
		return Encode(Float32, float32(f), out)
	case sqltype.Double:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return NotNull, newEncodeError[float64](tag, err)
		}
		return Encode(Float64, f, out)
	case sqltype.Text:
		return Encode(String, lit, out)
	case sqltype.Timestamptz:
		return Encode(TimestamptzText, lit, out)
	case sqltype.Binary:
		b, err := parseBlobLiteral(lit)
		if err != nil {
			return NotNull, newEncodeError[[]byte](tag, err)
		}
		return Encode(Bytes, b, out)
	case sqltype.JSONValidFlags:
		if n, err := strconv.ParseInt(lit, 10, 32); err == nil {
			return Encode(JSONFlagInt32, int32(n), out)
		}
		f, err := ParseJSONValidFlag(lit)
		if err != nil {
			return NotNull, newEncodeError[JSONValidFlag](tag, err)
		}
		return Encode(JSONFlag, f, out)
	default:
		return NotNull, &MisuseError{SQLType: tag.Name(), Reason: "no encoder registered"}
	}
}

func parseBlobLiteral(lit string) ([]byte, error) {
	if len(lit) >= 3 && (lit[0] == 'x' || lit[0] == 'X') && lit[1] == '\'' && strings.HasSuffix(lit, "'") {
		b, err := hex.DecodeString(lit[2 : len(lit)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid blob literal: %w", err)
		}
		return b, nil
	}
	return []byte(lit), nil
}
