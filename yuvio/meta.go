/*
NAME
  meta.go

DESCRIPTION
  meta.go implements yuvcodec.MetaWriter over a plain file, writing a
  4-byte little-endian (rows uint16, cols uint16) header followed by one
  mode-index byte per block, forming the .meta stream described in
  spec.md §6.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package yuvio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

// MetaWriter writes the 4-byte (rows, cols) header and per-block mode
// bytes to a .meta file.
type MetaWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewMetaWriter creates (truncating any existing content) the .meta file
// at path.
func NewMetaWriter(path string) (*MetaWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", yuvcodec.ErrIO, path, err)
	}
	return &MetaWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteHeader implements yuvcodec.MetaWriter.
func (mw *MetaWriter) WriteHeader(rows, cols int) error {
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(rows))
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(cols))
	if _, err := mw.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("%w: writing meta header: %v", yuvcodec.ErrIO, err)
	}
	return nil
}

// WriteMode implements yuvcodec.MetaWriter.
func (mw *MetaWriter) WriteMode(modeIdx int) error {
	if err := mw.w.WriteByte(byte(modeIdx)); err != nil {
		return fmt.Errorf("%w: writing mode byte: %v", yuvcodec.ErrIO, err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (mw *MetaWriter) Close() error {
	if err := mw.w.Flush(); err != nil {
		mw.f.Close()
		return fmt.Errorf("%w: flushing meta stream: %v", yuvcodec.ErrIO, err)
	}
	return mw.f.Close()
}

// ReadHeader reads path's 4-byte (rows, cols) header and returns a cursor
// positioned at the first mode byte, wrapped as a yuvcodec.Cursor. The
// returned close func must be called once the cursor is no longer
// needed.
func ReadHeader(path string, bufSize int) (rows, cols int, cur *yuvcodec.Cursor, closeFn func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, nil, fmt.Errorf("%w: opening %s: %v", yuvcodec.ErrIO, path, err)
	}
	var hdr [4]byte
	if _, err := f.Read(hdr[:]); err != nil {
		f.Close()
		return 0, 0, nil, nil, fmt.Errorf("%w: reading meta header: %v", yuvcodec.ErrIO, err)
	}
	rows = int(binary.LittleEndian.Uint16(hdr[0:2]))
	cols = int(binary.LittleEndian.Uint16(hdr[2:4]))
	return rows, cols, yuvcodec.NewCursor(f, make([]byte, bufSize)), f.Close, nil
}
