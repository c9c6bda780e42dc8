/*
NAME
  paths.go

DESCRIPTION
  paths.go derives a sequence's frame dimensions from its parent directory
  name, and builds the three sibling file paths (code, meta, decoded
  output) that share a source file's base name.

  Grounded on original_source/helpers/paths.py: video_shape parses the
  immediate (or grandparent, for a results-tree path) directory name
  "H_W"; modify_path/code_path/metadata_path/decoded_sequence_path derive
  sibling paths by swapping the file extension.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvio provides on-disk I/O for the codec/yuvcodec package: planar
// YUV 4:2:0 source and decoded-output readers/writers, and the .code/.meta
// stream formats, per spec.md §6.
package yuvio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

// DimensionsFromDir parses a sequence's frame dimensions from its parent
// directory name, which must be of the form "H_W" (e.g. "144_176"). It
// reports yuvcodec.ErrShapeMismatch if the name doesn't parse.
func DimensionsFromDir(sequencePath string) (rows, cols int, err error) {
	dir := filepath.Base(filepath.Dir(sequencePath))
	parts := strings.SplitN(dir, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: directory %q is not of the form H_W", yuvcodec.ErrShapeMismatch, dir)
	}
	rows, err1 := strconv.Atoi(parts[0])
	cols, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: directory %q is not of the form H_W", yuvcodec.ErrShapeMismatch, dir)
	}
	return rows, cols, nil
}

// withExt replaces path's extension with ext.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// CodePath returns the .code path sibling to a .yuv source path.
func CodePath(sequencePath string) string { return withExt(sequencePath, "code") }

// MetaPath returns the .meta path sibling to a .yuv source path.
func MetaPath(sequencePath string) string { return withExt(sequencePath, "meta") }

// DecodedPath returns the .yuv_decoded path sibling to a .yuv source path.
func DecodedPath(sequencePath string) string { return withExt(sequencePath, "yuv_decoded") }

// ErrorMapPath returns the .error_map path sibling to a .yuv source path.
func ErrorMapPath(sequencePath string) string { return withExt(sequencePath, "error_map") }

// IntensityMapPath returns the .intensity_map path sibling to a .yuv
// source path.
func IntensityMapPath(sequencePath string) string { return withExt(sequencePath, "intensity_map") }

// StatsPath returns the .stats path sibling to a .yuv source path.
func StatsPath(sequencePath string) string { return withExt(sequencePath, "stats") }

// FrameSize returns the number of bytes one 4:2:0-encoded frame of the
// given dimensions occupies on disk: a full-resolution Y plane plus two
// quarter-resolution chroma planes.
func FrameSize(rows, cols int) int {
	return rows*cols + 2*(rows/2)*(cols/2)
}

// FramesCount returns the number of whole frames stored in the 4:2:0 YUV
// file at sequencePath, given its dimensions.
func FramesCount(sequencePath string, rows, cols int) (int, error) {
	info, err := os.Stat(sequencePath)
	if err != nil {
		return 0, fmt.Errorf("%w: statting %s: %v", yuvcodec.ErrIO, sequencePath, err)
	}
	return int(info.Size()) / FrameSize(rows, cols), nil
}
