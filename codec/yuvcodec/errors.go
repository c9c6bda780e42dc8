/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the error kinds observable by callers of this package,
  per the error handling design: ConfigInvalid, IoError, TruncatedInput,
  ShapeMismatch and InvalidModeIndex. Call sites wrap one of these sentinels
  with fmt.Errorf's %w so that errors.Is still identifies the kind while the
  message carries call-specific context.

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

import "errors"

// Error kinds returned by this package. Numeric kernels never return these:
// a divisibility or shape violation reaching a kernel is a programming
// error and panics instead (see kernels.go).
var (
	// ErrConfigInvalid indicates a block shape that isn't a power of two,
	// a target bpp outside (0, 24], or an unsupported encoding/decoding
	// pairing.
	ErrConfigInvalid = errors.New("yuvcodec: invalid config")

	// ErrIO wraps an open/read/write failure on a code, metadata, or
	// source/decoded stream.
	ErrIO = errors.New("yuvcodec: io error")

	// ErrTruncatedInput indicates the metadata or code stream ended
	// mid-block.
	ErrTruncatedInput = errors.New("yuvcodec: truncated input")

	// ErrShapeMismatch indicates the source YUV size is inconsistent with
	// the caller-supplied rows/cols.
	ErrShapeMismatch = errors.New("yuvcodec: shape mismatch")

	// ErrInvalidModeIndex indicates a metadata byte referencing a mode
	// index the current Config never generated.
	ErrInvalidModeIndex = errors.New("yuvcodec: invalid mode index")
)
