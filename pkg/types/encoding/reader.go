// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package encoding

import (
	"encoding/binary"
	"io"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
)

// maxOpaqueLen bounds the length prefix of an opaque to keep a corrupt or
// hostile payload from forcing a huge allocation.
const maxOpaqueLen = 1 << 24

// Reader decodes values written by a [Writer]. The first error sticks and
// suppresses all subsequent reads.
type Reader struct {
	r   io.Reader
	n   int
	err error
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Done returns the number of bytes read and the first error encountered, if
// any.
func (r *Reader) Done() (int, error) {
	return r.n, r.err
}

func (r *Reader) read(b []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.r, b)
	r.n += n
	if err != nil {
		r.err = errors.EncodingError.WithFormat("unexpected end of input: %w", err)
	}
}

// ReadUint reads a 32-bit unsigned integer.
func (r *Reader) ReadUint() uint32 {
	var b [4]byte
	r.read(b[:])
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}

// ReadUint64 reads a 64-bit unsigned integer.
func (r *Reader) ReadUint64() uint64 {
	var b [8]byte
	r.read(b[:])
	if r.err != nil {
		return 0
	}
	return binary.BigEndian.Uint64(b[:])
}

// ReadInt64 reads a 64-bit signed integer.
func (r *Reader) ReadInt64() int64 {
	return int64(r.ReadUint64())
}

// ReadBool reads a boolean.
func (r *Reader) ReadBool() bool {
	switch v := r.ReadUint(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		if r.err == nil {
			r.err = errors.EncodingError.WithFormat("invalid boolean value %d", v)
		}
		return false
	}
}

// ReadBytes reads a length-prefixed opaque, consuming the padding.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadUint()
	if r.err != nil {
		return nil
	}
	if n > maxOpaqueLen {
		r.err = errors.EncodingError.WithFormat("opaque too long: %d bytes", n)
		return nil
	}
	pad := (4 - n%4) % 4
	b := make([]byte, n+pad)
	r.read(b)
	if r.err != nil {
		return nil
	}
	return b[:n]
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() string {
	return string(r.ReadBytes())
}

// ReadFixed reads exactly n raw bytes.
func (r *Reader) ReadFixed(n int) []byte {
	b := make([]byte, n)
	r.read(b)
	if r.err != nil {
		return nil
	}
	return b
}

// ReadOptional reads a presence marker. The caller reads the value itself
// when the result is true.
func (r *Reader) ReadOptional() bool {
	return r.ReadBool()
}
