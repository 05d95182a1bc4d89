package sqltype

import (
	"fmt"
	"sort"
	"strings"
)

// aliases maps upper-cased SQL spellings to logical types.
var aliases = map[string]Tag{
	"SMALLINT":         SmallInt{},
	"INT2":             SmallInt{},
	"INTEGER":          Integer{},
	"INT":              Integer{},
	"INT4":             Integer{},
	"MEDIUMINT":        Integer{},
	"BIGINT":           BigInt{},
	"INT8":             BigInt{},
	"BOOL":             Bool{},
	"BOOLEAN":          Bool{},
	"FLOAT":            Float{},
	"FLOAT4":           Float{},
	"REAL":             Double{},
	"DOUBLE":           Double{},
	"DOUBLE PRECISION": Double{},
	"FLOAT8":           Double{},
	"TEXT":             Text{},
	"VARCHAR":          Text{},
	"CHAR":             Text{},
	"CHARACTER":        Text{},
	"NVARCHAR":         Text{},
	"CLOB":             Text{},
	"BINARY":           Binary{},
	"VARBINARY":        Binary{},
	"BLOB":             Binary{},
	"TIMESTAMPTZ":      Timestamptz{},
	"JSONVALIDFLAGS":   JSONValidFlags{},
}

// UnknownTypeError is returned when a type name does not name a logical type.
type UnknownTypeError struct {
	Name      string
	Available []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown SQL type %q\nKnown types: %v", e.Name, e.Available)
}

// Lookup returns the logical type for a tag name ("SmallInt", "VarChar") or a
// declared SQL type ("INTEGER", "VARCHAR(100)", "double precision").
// Matching is case-insensitive and ignores a parenthesized size suffix.
func Lookup(name string) (Tag, error) {
	key := baseType(name)
	if key == "" {
		return nil, &UnknownTypeError{Name: name, Available: Names()}
	}
	for _, t := range All() {
		if strings.EqualFold(t.Name(), key) {
			return t, nil
		}
	}
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	return nil, &UnknownTypeError{Name: name, Available: Names()}
}

// Names returns the canonical names of all logical types, sorted.
func Names() []string {
	tags := All()
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}

// Aliases returns the SQL spellings that Lookup maps to t, sorted.
func Aliases(t Tag) []string {
	var names []string
	for name, tag := range aliases {
		if tag == t {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// baseType upper-cases a declared type and strips "(n)" / "(p,s)" and
// collapses inner whitespace.
func baseType(declType string) string {
	s := strings.ToUpper(strings.TrimSpace(declType))
	if idx := strings.Index(s, "("); idx != -1 {
		s = s[:idx]
	}
	return strings.Join(strings.Fields(s), " ")
}
