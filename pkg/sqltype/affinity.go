package sqltype

import "strings"

// Affinity is the type affinity SQLite derives from a column's declared type.
type Affinity int

const (
	// AffinityBlob stores values as given. Also called NONE.
	AffinityBlob Affinity = iota
	// AffinityText converts numeric input to text.
	AffinityText
	// AffinityNumeric prefers INTEGER or REAL when text looks numeric.
	AffinityNumeric
	// AffinityInteger behaves like NUMERIC for storage.
	AffinityInteger
	// AffinityReal forces integer values to floating point.
	AffinityReal
)

// String returns the SQLite name of the affinity.
func (a Affinity) String() string {
	switch a {
	case AffinityText:
		return "TEXT"
	case AffinityNumeric:
		return "NUMERIC"
	case AffinityInteger:
		return "INTEGER"
	case AffinityReal:
		return "REAL"
	default:
		return "BLOB"
	}
}

// AffinityOf applies SQLite's affinity rules to a declared column type.
// The rules are checked in order and the first match wins.
func AffinityOf(declType string) Affinity {
	t := strings.ToUpper(declType)
	switch {
	case strings.Contains(t, "INT"):
		return AffinityInteger
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return AffinityText
	case strings.Contains(t, "BLOB"), strings.TrimSpace(t) == "":
		return AffinityBlob
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return AffinityReal
	default:
		return AffinityNumeric
	}
}

// ForStorage returns the default logical type for a storage class. Used
// when nothing but the runtime value is known about a column.
func ForStorage(c StorageClass) Tag {
	switch c {
	case StorageInteger:
		return BigInt{}
	case StorageReal:
		return Double{}
	case StorageBlob:
		return Binary{}
	default:
		return Text{}
	}
}
