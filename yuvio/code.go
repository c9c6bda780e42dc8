/*
NAME
  code.go

DESCRIPTION
  code.go implements yuvcodec.CodeWriter over a plain file, appending each
  block's kept-sample bytes in encode order to form the .code stream
  described in spec.md §6.

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
	"os"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

// CodeWriter appends block code bytes to a .code file.
type CodeWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewCodeWriter creates (truncating any existing content) the .code file
// at path.
func NewCodeWriter(path string) (*CodeWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", yuvcodec.ErrIO, path, err)
	}
	return &CodeWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteCode implements yuvcodec.CodeWriter.
func (cw *CodeWriter) WriteCode(b []byte) error {
	if _, err := cw.w.Write(b); err != nil {
		return fmt.Errorf("%w: writing code: %v", yuvcodec.ErrIO, err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (cw *CodeWriter) Close() error {
	if err := cw.w.Flush(); err != nil {
		cw.f.Close()
		return fmt.Errorf("%w: flushing code stream: %v", yuvcodec.ErrIO, err)
	}
	return cw.f.Close()
}

// OpenCodeCursor opens the .code file at path and wraps it as a
// yuvcodec.Cursor for decoding. The returned close func must be called
// once the cursor is no longer needed.
func OpenCodeCursor(path string, bufSize int) (cur *yuvcodec.Cursor, closeFn func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %s: %v", yuvcodec.ErrIO, path, err)
	}
	return yuvcodec.NewCursor(f, make([]byte, bufSize)), f.Close, nil
}
