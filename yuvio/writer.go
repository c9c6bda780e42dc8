/*
NAME
  writer.go

DESCRIPTION
  writer.go implements yuvcodec.FrameWriter over a raw planar 4:2:0 YUV
  file: each frame's full-resolution Y is written as-is; its full-
  resolution U and V are downsampled back to native 4:2:0 by keeping the
  bottom-right sample of every 2x2 footprint, then written.

  Grounded on original_source/yuv_io/yuv_writer.py (YuvWriter.write_frame
  downsamples chroma with frame[1::2, 1::2] before writing), which is
  exactly yuvcodec.PickLast with a (2, 2, 1) chunk.

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
	"os"

	"github.com/ausocean/utils/logging"
	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

// Writer writes successive decoded frames to a planar 4:2:0 YUV file,
// downsampling chroma from the codec's full-resolution internal
// representation.
type Writer struct {
	f   *os.File
	log logging.Logger
}

// NewWriter creates (truncating any existing content) the file at path
// and returns a Writer.
func NewWriter(path string, log logging.Logger) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", yuvcodec.ErrIO, path, err)
	}
	return &Writer{f: f, log: log}, nil
}

// WriteFrame implements yuvcodec.FrameWriter.
func (w *Writer) WriteFrame(y, u, v yuvcodec.Tensor3) error {
	chroma := yuvcodec.NewShape3D(2, 2, 1)
	uSub := yuvcodec.PickLast(u, chroma)
	vSub := yuvcodec.PickLast(v, chroma)

	if _, err := w.f.Write(y.Flatten()); err != nil {
		return fmt.Errorf("%w: writing Y plane: %v", yuvcodec.ErrIO, err)
	}
	if _, err := w.f.Write(uSub.Flatten()); err != nil {
		return fmt.Errorf("%w: writing U plane: %v", yuvcodec.ErrIO, err)
	}
	if _, err := w.f.Write(vSub.Flatten()); err != nil {
		return fmt.Errorf("%w: writing V plane: %v", yuvcodec.ErrIO, err)
	}
	if w.log != nil {
		w.log.Log(logging.Debug, "yuvio: wrote frame")
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error { return w.f.Close() }
