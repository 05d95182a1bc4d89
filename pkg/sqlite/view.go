package sqlite

import (
	"bytes"
	"strings"
)

// Epoch counts row advances on one result set. Values and views read while
// the epoch is at n are valid until it moves past n. A nil *Epoch never
// advances, which suits values that do not come from a cursor.
//
// Epoch is not safe for concurrent use; neither is the cursor it tracks.
type Epoch struct {
	n uint64
}

// Advance invalidates every view read at the current epoch.
func (e *Epoch) Advance() {
	if e != nil {
		e.n++
	}
}

// Current returns the current epoch number.
func (e *Epoch) Current() uint64 {
	if e == nil {
		return 0
	}
	return e.n
}

// TextView is a borrowed view of a text value. It may alias memory owned by
// the driver and must not be retained past the row it was read from.
type TextView struct {
	s     string
	epoch *Epoch
	stamp uint64
}

// Valid reports whether the row the view was read from is still current.
func (v TextView) Valid() bool {
	return v.epoch.Current() == v.stamp
}

// Text returns the viewed string without copying it.
// The result is subject to the same lifetime as the view itself.
func (v TextView) Text() (string, error) {
	if !v.Valid() {
		return "", ErrViewExpired
	}
	return v.s, nil
}

// Clone returns an owned copy of the viewed string.
func (v TextView) Clone() (string, error) {
	if !v.Valid() {
		return "", ErrViewExpired
	}
	return strings.Clone(v.s), nil
}

// Len returns the length of the viewed text in bytes.
func (v TextView) Len() int { return len(v.s) }

// BlobView is a borrowed view of a blob value. The bytes may be owned by
// the driver: do not modify them, and do not retain them past the row they
// were read from.
type BlobView struct {
	b     []byte
	epoch *Epoch
	stamp uint64
}

// Valid reports whether the row the view was read from is still current.
func (v BlobView) Valid() bool {
	return v.epoch.Current() == v.stamp
}

// Bytes returns the viewed bytes without copying them.
func (v BlobView) Bytes() ([]byte, error) {
	if !v.Valid() {
		return nil, ErrViewExpired
	}
	return v.b, nil
}

// Clone returns an owned copy of the viewed bytes. The copy of an empty blob
// is an empty, non-nil slice.
func (v BlobView) Clone() ([]byte, error) {
	if !v.Valid() {
		return nil, ErrViewExpired
	}
	if v.b == nil {
		return []byte{}, nil
	}
	return bytes.Clone(v.b), nil
}

// Len returns the length of the viewed blob.
func (v BlobView) Len() int { return len(v.b) }
