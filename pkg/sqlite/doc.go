// Package sqlite converts between SQLite's stored values and typed Go values.
//
// A codec converts for exactly one pair of logical type (a tag from
// pkg/sqltype) and Go type. Each codec's SQLType method returns its tag, so
// the compiler accepts a codec only where a Decoder or Encoder for that exact
// pair is expected:
//
//	n, err := sqlite.Decode(sqlite.Int16, v)    // SmallInt -> int16
//	_, err = sqlite.Encode(sqlite.Bool, true, out) // Bool -> INTEGER 1
//
// There is no codec from Text to any integer type, so such a conversion does
// not compile. Where the logical type is only known at runtime (declared
// column types, command-line input) use CheckDeclared, DecodeAny and
// EncodeText, which report misuse as a *MisuseError instead.
//
// # Reading
//
// A ValueReader exposes one column of the current row. *Value is the
// implementation over the values database/sql hands to an sql.Scanner; it
// applies SQLite's own storage class conversions (sqlite3_column_int and
// friends), so reading an INTEGER column as text yields its decimal form.
// SQL NULL fails every read with ErrUnexpectedNull; nullable columns belong
// to a wrapping layer.
//
// # Narrowing
//
// Int16 keeps the low 16 bits of the stored 32-bit integer and Float32 rounds
// the stored double to float32. Neither checks range: 65536 decodes to 0 and
// 32768 to -32768.
//
// # Zero-copy views
//
// StringView and BytesView return a TextView or BlobView that aliases the
// driver's buffer for the current row. A view is stamped with the row's
// Epoch and stops working once the row is advanced (Rows.Next, Rows.Close):
// its accessors then return ErrViewExpired. Do not keep a view, or anything
// sliced from it, past the row it came from; call Clone for an owned copy.
// String and Bytes copy up front and are the default choice.
//
// # Writing
//
// An OutputSink receives one bind parameter. *Output records it together
// with the sqlite3_bind_* kind it corresponds to. Text and blobs are kept by
// reference, so the caller's value must stay unchanged until the statement
// runs. Every encoder in this package reports NotNull.
//
// # JSON validity flags
//
// JSONValidFlag is the flags argument of json_valid. It can be bound either
// as a named flag through JSONFlag, or as a bare int32 through JSONFlagInt32
// and JSONFlagInt32Ref, which keep older call sites that pass integers
// working. Both paths write the same INTEGER.
package sqlite
