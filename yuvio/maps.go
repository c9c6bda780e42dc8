/*
NAME
  maps.go

DESCRIPTION
  maps.go implements MapWriter, a flat single-plane frame writer shared
  by stats.ErrorMap and stats.IntensityMap, matching
  original_source/yuv_io/maps_writer.py's MapsWriter: each write_next
  call flattens and appends one plane, with no header.

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
	"fmt"
	"io"
	"os"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

// MapWriter appends flat single-plane frames to a .error_map or
// .intensity_map file.
type MapWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewMapWriter creates (truncating any existing content) the map file at
// path.
func NewMapWriter(path string) (*MapWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", yuvcodec.ErrIO, path, err)
	}
	return &MapWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteFrame appends one flattened plane.
func (m *MapWriter) WriteFrame(plane yuvcodec.Tensor3) error {
	if _, err := m.w.Write(plane.Flatten()); err != nil {
		return fmt.Errorf("%w: writing map frame: %v", yuvcodec.ErrIO, err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (m *MapWriter) Close() error {
	if err := m.w.Flush(); err != nil {
		m.f.Close()
		return fmt.Errorf("%w: flushing map stream: %v", yuvcodec.ErrIO, err)
	}
	return m.f.Close()
}

// MapReader reads successive flat single-plane frames from a .error_map
// or .intensity_map file, matching original_source/yuv_io/maps_reader.py's
// MapsReader.read_next.
type MapReader struct {
	f          *os.File
	rows, cols int
	buf        []byte
}

// NewMapReader opens path and returns a MapReader for frames of the given
// dimensions.
func NewMapReader(path string, rows, cols int) (*MapReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", yuvcodec.ErrIO, path, err)
	}
	return &MapReader{f: f, rows: rows, cols: cols, buf: make([]byte, rows*cols)}, nil
}

// ReadFrame reads the next flat plane, reporting ok=false at a clean end
// of stream (including a trailing short frame, which is dropped).
func (m *MapReader) ReadFrame() (plane yuvcodec.Tensor3, ok bool, err error) {
	_, err = io.ReadFull(m.f, m.buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return yuvcodec.Tensor3{}, false, nil
	}
	if err != nil {
		return yuvcodec.Tensor3{}, false, fmt.Errorf("%w: reading map frame: %v", yuvcodec.ErrIO, err)
	}
	shape := yuvcodec.NewShape3D(m.rows, m.cols, 1)
	plane = yuvcodec.TensorFromFlat(append([]byte(nil), m.buf...), shape)
	return plane, true, nil
}

// Close closes the underlying file.
func (m *MapReader) Close() error { return m.f.Close() }
