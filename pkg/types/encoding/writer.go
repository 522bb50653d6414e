// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"encoding/binary"
	"io"
	"math"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
)

// Writer encodes values in the ledger's canonical binary form: big-endian
// fixed-width integers and length-prefixed opaques padded to four bytes. The
// first error sticks and suppresses all subsequent writes.
type Writer struct {
	w   io.Writer
	n   int
	err error
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Reset discards any sticky error and resets the byte count.
func (w *Writer) Reset() {
	w.n, w.err = 0, nil
}

// Done returns the number of bytes written and the first error encountered,
// if any.
func (w *Writer) Done() (int, error) {
	return w.n, w.err
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += n
	if err != nil {
		w.err = errors.EncodingError.Wrap(err)
	}
}

// WriteUint writes a 32-bit unsigned integer.
func (w *Writer) WriteUint(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.write(b[:])
}

// WriteUint64 writes a 64-bit unsigned integer.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.write(b[:])
}

// WriteInt64 writes a 64-bit signed integer.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteBool writes a boolean as a 32-bit 0 or 1.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint(1)
	} else {
		w.WriteUint(0)
	}
}

// WriteBytes writes a length-prefixed opaque, padded to a multiple of four
// bytes.
func (w *Writer) WriteBytes(v []byte) {
	if len(v) > math.MaxUint32 {
		w.err = errors.EncodingError.WithFormat("opaque too long: %d bytes", len(v))
		return
	}
	w.WriteUint(uint32(len(v)))
	w.write(v)
	if pad := (4 - len(v)%4) % 4; pad > 0 {
		w.write(make([]byte, pad))
	}
}

// WriteString writes a length-prefixed string.
func (w *Writer) WriteString(v string) {
	w.WriteBytes([]byte(v))
}

// WriteFixed writes raw bytes without a length prefix.
func (w *Writer) WriteFixed(v []byte) {
	w.write(v)
}

// WriteOptional writes a presence marker. The caller writes the value itself
// when present is true.
func (w *Writer) WriteOptional(present bool) {
	w.WriteBool(present)
}
