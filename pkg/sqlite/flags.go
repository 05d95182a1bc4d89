package sqlite

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

// JSONValidFlag selects what json_valid accepts as well-formed JSON.
//
// The defined bits are:
//   - 0x01: text that strictly complies with RFC-8259 JSON
//   - 0x02: text that is JSON with JSON5 extensions
//   - 0x04: a BLOB that superficially appears to be JSONB
//   - 0x08: a BLOB that strictly conforms to the JSONB format
//
// The named values below are the useful combinations of those bits.
type JSONValidFlag int32

const (
	// FlagRFC8259JSON accepts RFC-8259 JSON text.
	FlagRFC8259JSON JSONValidFlag = 1
	// FlagJSON5 accepts JSON5 text.
	FlagJSON5 JSONValidFlag = 2
	// FlagJSONBLike accepts anything that is probably JSONB.
	FlagJSONBLike JSONValidFlag = 4
	// FlagRFC8259JSONOrJSONB accepts RFC-8259 JSON text or JSONB.
	FlagRFC8259JSONOrJSONB JSONValidFlag = 5
	// FlagJSON5OrJSONB accepts JSON5 text or JSONB. Recommended for most uses.
	FlagJSON5OrJSONB JSONValidFlag = 6
	// FlagJSONBStrict accepts strictly conforming JSONB.
	FlagJSONBStrict JSONValidFlag = 8
	// FlagRFC8259JSONOrJSONBStrict accepts RFC-8259 JSON text or strict JSONB.
	FlagRFC8259JSONOrJSONBStrict JSONValidFlag = 9
	// FlagJSON5OrJSONBStrict accepts JSON5 text or strict JSONB.
	FlagJSON5OrJSONBStrict JSONValidFlag = 10
)

var jsonValidFlagNames = []struct {
	flag JSONValidFlag
	name string
}{
	{FlagRFC8259JSON, "rfc8259-json"},
	{FlagJSON5, "json5"},
	{FlagJSONBLike, "jsonb-like"},
	{FlagRFC8259JSONOrJSONB, "rfc8259-json-or-jsonb"},
	{FlagJSON5OrJSONB, "json5-or-jsonb"},
	{FlagJSONBStrict, "jsonb-strict"},
	{FlagRFC8259JSONOrJSONBStrict, "rfc8259-json-or-jsonb-strict"},
	{FlagJSON5OrJSONBStrict, "json5-or-jsonb-strict"},
}

// JSONValidFlagValues returns every named flag in ascending order.
func JSONValidFlagValues() []JSONValidFlag {
	flags := make([]JSONValidFlag, len(jsonValidFlagNames))
	for i, n := range jsonValidFlagNames {
		flags[i] = n.flag
	}
	return flags
}

// IsValid reports whether f is one of the named flags.
func (f JSONValidFlag) IsValid() bool {
	for _, n := range jsonValidFlagNames {
		if n.flag == f {
			return true
		}
	}
	return false
}

func (f JSONValidFlag) String() string {
	for _, n := range jsonValidFlagNames {
		if n.flag == f {
			return n.name
		}
	}
	return fmt.Sprintf("JSONValidFlag(%d)", int32(f))
}

// ParseJSONValidFlag parses a flag name such as "json5-or-jsonb". Case,
// dashes and underscores are ignored, so "Json5OrJsonb" parses too.
func ParseJSONValidFlag(s string) (JSONValidFlag, error) {
	key := normalizeFlagName(s)
	for _, n := range jsonValidFlagNames {
		if normalizeFlagName(n.name) == key {
			return n.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown JSON validity flag %q", s)
}

func normalizeFlagName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "").Replace(s)
}

// Encoders for the JsonValidFlags logical type. JSONFlag binds a named flag.
// JSONFlagInt32 and JSONFlagInt32Ref bind a bare integer, which is all
// earlier versions accepted; they stay separate so both call shapes keep
// compiling. Read the column back with Int32.
var (
	JSONFlag         Encoder[sqltype.JSONValidFlags, JSONValidFlag] = jsonFlagCodec{}
	JSONFlagInt32    Encoder[sqltype.JSONValidFlags, int32]         = jsonFlagInt32Codec{}
	JSONFlagInt32Ref Encoder[sqltype.JSONValidFlags, *int32]        = jsonFlagInt32RefCodec{}
)

type jsonFlagCodec struct{}

func (jsonFlagCodec) SQLType() sqltype.JSONValidFlags { return sqltype.JSONValidFlags{} }

func (jsonFlagCodec) ToSQL(f JSONValidFlag, out OutputSink) (IsNull, error) {
	if !f.IsValid() {
		return NotNull, fmt.Errorf("invalid JSON validity flag %d", int32(f))
	}
	return NotNull, out.SetInt32(int32(f))
}

type jsonFlagInt32Codec struct{}

func (jsonFlagInt32Codec) SQLType() sqltype.JSONValidFlags { return sqltype.JSONValidFlags{} }

func (jsonFlagInt32Codec) ToSQL(n int32, out OutputSink) (IsNull, error) {
	return int32Codec{}.ToSQL(n, out)
}

type jsonFlagInt32RefCodec struct{}

func (jsonFlagInt32RefCodec) SQLType() sqltype.JSONValidFlags { return sqltype.JSONValidFlags{} }

func (jsonFlagInt32RefCodec) ToSQL(n *int32, out OutputSink) (IsNull, error) {
	if n == nil {
		return NotNull, ErrNilReference
	}
	return jsonFlagInt32Codec{}.ToSQL(*n, out)
}
