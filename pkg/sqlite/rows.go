package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

// Column is an sql.Scanner that decodes one result column with a Decoder.
type Column[T sqltype.Tag, H any] struct {
	dec   Decoder[T, H]
	dst   *H
	epoch *Epoch
}

// Into returns a scan destination that decodes the column with d and
// stores the result in *dst. StringView and BytesView columns must be
// scanned through Rows; a plain *sql.Rows or *sql.Row rejects them.
//
//	rows := sqlite.WrapRows(sqlRows)
//	var id int64
//	var name sqlite.TextView
//	err := rows.Scan(sqlite.Into(sqlite.Int64, &id), sqlite.Into(sqlite.StringView, &name))
func Into[T sqltype.Tag, H any](d Decoder[T, H], dst *H) *Column[T, H] {
	return &Column[T, H]{dec: d, dst: dst}
}

// Scan implements sql.Scanner. *dst is left untouched on failure.
//
// Views alias driver memory that database/sql reuses once the cursor moves,
// so view decoders are only accepted when the column is scanned through
// Rows, which attaches the row epoch first.
func (c *Column[T, H]) Scan(src any) error {
	if c.epoch == nil {
		if _, ok := any(c.dec).(rowBorrower); ok {
			return &MisuseError{SQLType: c.dec.SQLType().Name(), Reason: "views require sqlite.Rows"}
		}
	}
	h, err := Decode(c.dec, NewValue(src, c.epoch))
	if err != nil {
		return err
	}
	*c.dst = h
	return nil
}

// SQLType returns the logical type the column is decoded as.
func (c *Column[T, H]) SQLType() sqltype.Tag { return c.dec.SQLType() }

func (c *Column[T, H]) attach(e *Epoch) { c.epoch = e }

// DynamicColumn is an sql.Scanner for a column whose logical type is only
// known at runtime. It decodes with DecodeAny. A nil tag picks the default
// type for each value's storage class, and SQL NULL stores nil.
type DynamicColumn struct {
	tag   sqltype.Tag
	dst   *any
	epoch *Epoch
}

// IntoAny returns a scan destination that decodes the column as tag.
func IntoAny(tag sqltype.Tag, dst *any) *DynamicColumn {
	return &DynamicColumn{tag: tag, dst: dst}
}

// Scan implements sql.Scanner.
func (c *DynamicColumn) Scan(src any) error {
	v := NewValue(src, c.epoch)
	if v.IsNull() {
		*c.dst = nil
		return nil
	}
	tag := c.tag
	if tag == nil {
		tag = sqltype.ForStorage(v.Storage())
	}
	h, err := DecodeAny(tag, v)
	if err != nil {
		return err
	}
	*c.dst = h
	return nil
}

// SQLType returns the tag given to IntoAny, which may be nil.
func (c *DynamicColumn) SQLType() sqltype.Tag { return c.tag }

func (c *DynamicColumn) attach(e *Epoch) { c.epoch = e }

// rowBorrower is implemented by decoders whose results alias the current
// row.
type rowBorrower interface {
	borrowsRow()
}

type epochAttacher interface {
	attach(e *Epoch)
}

type tagged interface {
	SQLType() sqltype.Tag
}

// Arg returns a query argument that encodes h with e when the driver asks
// for its value. For text and blobs h is passed by reference and must stay
// unchanged until the statement has run.
//
//	db.ExecContext(ctx, "INSERT INTO t(flags) VALUES (?)", sqlite.Arg(sqlite.JSONFlag, sqlite.FlagJSON5OrJSONB))
func Arg[T sqltype.Tag, H any](e Encoder[T, H], h H) driver.Valuer {
	return arg[T, H]{enc: e, val: h}
}

type arg[T sqltype.Tag, H any] struct {
	enc Encoder[T, H]
	val H
}

func (a arg[T, H]) Value() (driver.Value, error) {
	out := NewOutput()
	isNull, err := Encode(a.enc, a.val, out)
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	return out.Value(), nil
}

// Rows wraps *sql.Rows and tracks an Epoch, so views scanned from one row
// expire when the cursor moves on.
type Rows struct {
	*sql.Rows
	epoch Epoch
}

// WrapRows wraps rows. The caller still owns rows and must close it, either
// directly or through the returned Rows.
func WrapRows(rows *sql.Rows) *Rows {
	return &Rows{Rows: rows}
}

// Next advances the epoch, then the cursor.
func (r *Rows) Next() bool {
	r.epoch.Advance()
	return r.Rows.Next()
}

// NextResultSet advances the epoch, then moves to the next result set.
func (r *Rows) NextResultSet() bool {
	r.epoch.Advance()
	return r.Rows.NextResultSet()
}

// Close advances the epoch and closes the cursor.
func (r *Rows) Close() error {
	r.epoch.Advance()
	return r.Rows.Close()
}

// Epoch returns the epoch of the cursor.
func (r *Rows) Epoch() *Epoch { return &r.epoch }

// Scan attaches the cursor's epoch to every Column in dest and scans the
// current row. Other destinations are passed through to sql.Rows.Scan.
func (r *Rows) Scan(dest ...any) error {
	for _, d := range dest {
		if a, ok := d.(epochAttacher); ok {
			a.attach(&r.epoch)
		}
	}
	return r.Rows.Scan(dest...)
}

// CheckColumns compares the declared type of each result column with the
// logical type of the Column or DynamicColumn scanning it, in order.
// Other destinations, and dynamic columns without a tag, are skipped.
func (r *Rows) CheckColumns(dest ...any) error {
	types, err := r.ColumnTypes()
	if err != nil {
		return fmt.Errorf("failed to get column types: %w", err)
	}
	for i, d := range dest {
		t, ok := d.(tagged)
		if !ok || i >= len(types) || t.SQLType() == nil {
			continue
		}
		if err := CheckDeclared(t.SQLType(), types[i].DatabaseTypeName()); err != nil {
			return fmt.Errorf("column %q: %w", types[i].Name(), err)
		}
	}
	return nil
}
