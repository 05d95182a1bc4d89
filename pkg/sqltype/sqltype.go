// Package sqltype defines the logical column types understood by litetype.
//
// Each logical type is a zero-size marker type. Values of these types carry no
// state; they exist so codecs in pkg/sqlite can name the logical type they
// convert for as a type parameter, and so the compiler can reject pairs that
// were never implemented (for example decoding a Text column into an int32).
//
// Every tag is backed by one SQLite storage class. SQLite itself only knows
// the storage classes; the tag is the program's promise about what the column
// means.
package sqltype

// StorageClass is one of the five SQLite storage classes.
type StorageClass int

const (
	// StorageNull is the storage class of SQL NULL.
	StorageNull StorageClass = iota
	// StorageInteger is a signed integer stored in up to 8 bytes.
	StorageInteger
	// StorageReal is an 8-byte IEEE floating point number.
	StorageReal
	// StorageText is a text string in the database encoding.
	StorageText
	// StorageBlob is a blob of bytes stored exactly as input.
	StorageBlob
)

// String returns the SQLite name of the storage class.
func (c StorageClass) String() string {
	switch c {
	case StorageNull:
		return "NULL"
	case StorageInteger:
		return "INTEGER"
	case StorageReal:
		return "REAL"
	case StorageText:
		return "TEXT"
	case StorageBlob:
		return "BLOB"
	default:
		return "UNKNOWN"
	}
}

// Tag identifies a column's logical SQL type.
type Tag interface {
	// Name returns the canonical name of the logical type.
	Name() string
	// Storage returns the storage class the type is read and bound through.
	Storage() StorageClass
}

// SmallInt is a 16-bit integer. SQLite stores it as INTEGER.
type SmallInt struct{}

// Name implements Tag.
func (SmallInt) Name() string { return "SmallInt" }

// Storage implements Tag.
func (SmallInt) Storage() StorageClass { return StorageInteger }

// Integer is a 32-bit integer.
type Integer struct{}

// Name implements Tag.
func (Integer) Name() string { return "Integer" }

// Storage implements Tag.
func (Integer) Storage() StorageClass { return StorageInteger }

// BigInt is a 64-bit integer.
type BigInt struct{}

// Name implements Tag.
func (BigInt) Name() string { return "BigInt" }

// Storage implements Tag.
func (BigInt) Storage() StorageClass { return StorageInteger }

// Bool is a boolean stored as the integers 0 and 1.
type Bool struct{}

// Name implements Tag.
func (Bool) Name() string { return "Bool" }

// Storage implements Tag.
func (Bool) Storage() StorageClass { return StorageInteger }

// Float is a 32-bit float. SQLite only stores 64-bit reals.
type Float struct{}

// Name implements Tag.
func (Float) Name() string { return "Float" }

// Storage implements Tag.
func (Float) Storage() StorageClass { return StorageReal }

// Double is a 64-bit float.
type Double struct{}

// Name implements Tag.
func (Double) Name() string { return "Double" }

// Storage implements Tag.
func (Double) Storage() StorageClass { return StorageReal }

// Text is a character string.
type Text struct{}

// Name implements Tag.
func (Text) Name() string { return "Text" }

// Storage implements Tag.
func (Text) Storage() StorageClass { return StorageText }

// VarChar is the same logical type as Text. SQLite ignores length limits.
type VarChar = Text

// Binary is an uninterpreted byte sequence.
type Binary struct{}

// Name implements Tag.
func (Binary) Name() string { return "Binary" }

// Storage implements Tag.
func (Binary) Storage() StorageClass { return StorageBlob }

// Timestamptz is a timestamp with time zone. SQLite has no date type, so
// the value is kept as TEXT.
type Timestamptz struct{}

// Name implements Tag.
func (Timestamptz) Name() string { return "Timestamptz" }

// Storage implements Tag.
func (Timestamptz) Storage() StorageClass { return StorageText }

// JSONValidFlags is the flags argument of SQLite's json_valid function.
// It is backed by an INTEGER.
type JSONValidFlags struct{}

// Name implements Tag.
func (JSONValidFlags) Name() string { return "JsonValidFlags" }

// Storage implements Tag.
func (JSONValidFlags) Storage() StorageClass { return StorageInteger }

// All returns every logical type in declaration order.
func All() []Tag {
	return []Tag{
		SmallInt{},
		Integer{},
		BigInt{},
		Bool{},
		Float{},
		Double{},
		Text{},
		Binary{},
		Timestamptz{},
		JSONValidFlags{},
	}
}
