/*
NAME
  stream.go

DESCRIPTION
  stream.go provides Cursor, a sequential reader over a byte stream with
  shape-aware bulk reads, used by the decoders to pull kept-sample grids
  out of the code stream and mode indices out of the metadata stream.

  Grounded on codec/codecutil/bytescanner.go's ByteScanner: a buffered
  io.Reader wrapper that reloads its internal buffer on exhaustion rather
  than requiring the whole stream resident in memory up front (the
  original_source implementation loads the entire .code/.meta file via
  np.fromfile; Cursor generalizes that to streaming reads of arbitrary
  sources, per spec.md §4.2).

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package yuvcodec

import (
	"fmt"
	"io"
)

// Cursor is a sequential reader over an immutable byte stream, with
// shape-aware bulk reads that reshape the next shape.Count() bytes into a
// Tensor3 in row-major (rows, cols, frames) order.
type Cursor struct {
	buf []byte
	off int
	r   io.Reader
	eof bool
}

// NewCursor returns a Cursor reading from r, using buf as its internal
// read buffer (buf's capacity controls the reload granularity).
func NewCursor(r io.Reader, buf []byte) *Cursor {
	return &Cursor{r: r, buf: buf[:0]}
}

// Get returns the next byte and advances the cursor by one. It reports
// ErrTruncatedInput if the underlying stream is exhausted.
func (c *Cursor) Get() (byte, error) {
	if c.off >= len(c.buf) {
		if err := c.reload(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTruncatedInput, err)
		}
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// GetMany reads shape.Count() bytes and reshapes them, row-major, into a
// Tensor3 of the given shape, advancing the cursor by that count. It
// reports ErrTruncatedInput on a short read.
func (c *Cursor) GetMany(shape Shape3D) (Tensor3, error) {
	n := shape.Count()
	out := make([]byte, n)
	read := 0
	for read < n {
		if c.off >= len(c.buf) {
			if err := c.reload(); err != nil {
				return Tensor3{}, fmt.Errorf("%w: expected %d bytes, got %d: %v", ErrTruncatedInput, n, read, err)
			}
		}
		k := copy(out[read:], c.buf[c.off:])
		c.off += k
		read += k
	}
	return TensorFromFlat(out, shape), nil
}

// HasNext reports whether the cursor is strictly before the end of the
// stream. Reading past a true HasNext implies a truncated input (an I/O
// error or short read that occurs in the middle of a GetMany/Get call,
// which is reported directly by those methods rather than by HasNext).
func (c *Cursor) HasNext() bool {
	if c.off < len(c.buf) {
		return true
	}
	if c.eof {
		return false
	}
	return c.reload() == nil
}

// reload refills c's buffer from its underlying reader.
func (c *Cursor) reload() error {
	n, err := c.r.Read(c.buf[:cap(c.buf)])
	c.buf = c.buf[:n]
	c.off = 0
	if n > 0 {
		return nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	c.eof = true
	if err == io.EOF {
		return io.EOF
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}
