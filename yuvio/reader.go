/*
NAME
  reader.go

DESCRIPTION
  reader.go implements yuvcodec.FrameReader over a raw planar 4:2:0 YUV
  file: native-resolution Y followed by half-resolution U then V, each
  plane row-major. Chroma is upsampled to full (codec-internal 4:4:4)
  resolution on read by repeating each native sample across its 2x2
  footprint.

  Grounded on original_source/yuv_io/yuv_reader.py (YuvReader.read_frame
  reads Y then U then V and upsamples U/V with repeat_2d(..., (2, 2)))
  and device/file/file.go's os.File-backed, logging.Logger-carrying
  device convention.

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
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

// Reader reads successive frames from a planar 4:2:0 YUV file, upsampling
// chroma to full resolution as required by codec/yuvcodec's internal
// representation.
type Reader struct {
	f          *os.File
	rows, cols int
	log        logging.Logger

	ySize, cSize int
	buf          []byte
}

// NewReader opens path and returns a Reader for a sequence of the given
// frame dimensions. rows and cols must both be even, since chroma planes
// are stored at half resolution.
func NewReader(path string, rows, cols int, log logging.Logger) (*Reader, error) {
	if rows%2 != 0 || cols%2 != 0 {
		return nil, fmt.Errorf("%w: frame dimensions (%d, %d) must be even for 4:2:0 chroma", yuvcodec.ErrShapeMismatch, rows, cols)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", yuvcodec.ErrIO, path, err)
	}
	ySize := rows * cols
	cSize := (rows / 2) * (cols / 2)
	return &Reader{
		f: f, rows: rows, cols: cols, log: log,
		ySize: ySize, cSize: cSize,
		buf: make([]byte, ySize+2*cSize),
	}, nil
}

// NewReaderFromDir is NewReader with dimensions derived from path's parent
// directory name via DimensionsFromDir.
func NewReaderFromDir(path string, log logging.Logger) (*Reader, error) {
	rows, cols, err := DimensionsFromDir(path)
	if err != nil {
		return nil, err
	}
	return NewReader(path, rows, cols, log)
}

// Dimensions implements yuvcodec.FrameReader.
func (r *Reader) Dimensions() (rows, cols int) { return r.rows, r.cols }

// ReadFrame implements yuvcodec.FrameReader. A short final read (fewer
// bytes than one whole frame) reports ok=false, matching a trailing
// partial frame being dropped rather than decoded.
func (r *Reader) ReadFrame() (y, u, v yuvcodec.Tensor3, ok bool, err error) {
	_, err = io.ReadFull(r.f, r.buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return yuvcodec.Tensor3{}, yuvcodec.Tensor3{}, yuvcodec.Tensor3{}, false, nil
	}
	if err != nil {
		return yuvcodec.Tensor3{}, yuvcodec.Tensor3{}, yuvcodec.Tensor3{}, false, fmt.Errorf("%w: reading frame: %v", yuvcodec.ErrIO, err)
	}

	full := yuvcodec.NewShape3D(r.rows, r.cols, 1)
	y = yuvcodec.TensorFromFlat(append([]byte(nil), r.buf[:r.ySize]...), full)

	half := yuvcodec.NewShape3D(r.rows/2, r.cols/2, 1)
	uHalf := yuvcodec.TensorFromFlat(append([]byte(nil), r.buf[r.ySize:r.ySize+r.cSize]...), half)
	vHalf := yuvcodec.TensorFromFlat(append([]byte(nil), r.buf[r.ySize+r.cSize:]...), half)
	u = yuvcodec.Repeat3D(uHalf, yuvcodec.NewShape3D(2, 2, 1))
	v = yuvcodec.Repeat3D(vHalf, yuvcodec.NewShape3D(2, 2, 1))

	if r.log != nil {
		r.log.Log(logging.Debug, "yuvio: read frame")
	}
	return y, u, v, true, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error { return r.f.Close() }
