/*
NAME
  maps.go

DESCRIPTION
  maps.go computes two per-sequence diagnostic overlays against a
  decoded .yuv_decoded sequence: ErrorMap, a per-pixel amplified
  reconstruction-error image, and IntensityMap, a bitmap marking which
  luma samples were actually transmitted by each block's chosen mode.
  Both write one flat single-plane frame per source frame via
  yuvio.MapWriter, matching original_source/yuv_io/maps_writer.py.

  Grounded on original_source/stats/error_map.py (ErrorMap.create) and
  original_source/stats/intensity_map.py (IntensityMap.create).

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stats computes and reports codec performance diagnostics:
// per-pixel error/intensity overlays and per-sequence summary metrics.
package stats

import (
	"github.com/kortschak/yuvcodec/codec/yuvcodec"
	"github.com/kortschak/yuvcodec/yuvio"
)

// ErrorMap computes a per-pixel amplified reconstruction-error image for
// a sequence against its decoded output.
type ErrorMap struct {
	sequencePath, decodedPath string
	rows, cols                int
}

// NewErrorMap prepares an ErrorMap for sequencePath against decodedPath,
// both of the dimensions derived from sequencePath's parent directory.
func NewErrorMap(sequencePath, decodedPath string) (*ErrorMap, error) {
	rows, cols, err := yuvio.DimensionsFromDir(sequencePath)
	if err != nil {
		return nil, err
	}
	return &ErrorMap{sequencePath: sequencePath, decodedPath: decodedPath, rows: rows, cols: cols}, nil
}

// Create writes the error map to outPath, one frame per input frame
// pair. Reading stops at whichever of the two sequences is shorter.
func (m *ErrorMap) Create(outPath string) error {
	src, err := yuvio.NewReader(m.sequencePath, m.rows, m.cols, nil)
	if err != nil {
		return err
	}
	defer src.Close()
	dec, err := yuvio.NewReader(m.decodedPath, m.rows, m.cols, nil)
	if err != nil {
		return err
	}
	defer dec.Close()

	w, err := yuvio.NewMapWriter(outPath)
	if err != nil {
		return err
	}
	defer w.Close()

	shape := yuvcodec.NewShape3D(m.rows, m.cols, 1)
	for {
		sy, su, sv, sok, err := src.ReadFrame()
		if err != nil {
			return err
		}
		dy, du, dv, dok, err := dec.ReadFrame()
		if err != nil {
			return err
		}
		if !sok || !dok {
			return w.Close()
		}

		diff := yuvcodec.NewTensor3(shape)
		for r := 0; r < m.rows; r++ {
			for c := 0; c < m.cols; c++ {
				d := absDiff(sy.At(r, c, 0), dy.At(r, c, 0)) +
					absDiff(su.At(r, c, 0), du.At(r, c, 0)) +
					absDiff(sv.At(r, c, 0), dv.At(r, c, 0))
				diff.Set(r, c, 0, clampAmplified(d, 10))
			}
		}
		if err := w.WriteFrame(diff); err != nil {
			return err
		}
	}
}

func absDiff(a, b byte) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

func clampAmplified(sum, scale int) byte {
	v := sum * scale
	if v > 255 {
		return 255
	}
	return byte(v)
}

// IntensityMap marks, for each decoded part, which luma sample
// positions were actually transmitted by each block's chosen mode.
type IntensityMap struct {
	metaPath string
	config   *yuvcodec.Config
}

// NewIntensityMap prepares an IntensityMap reading block modes from the
// .meta file at metaPath under config.
func NewIntensityMap(metaPath string, config *yuvcodec.Config) *IntensityMap {
	return &IntensityMap{metaPath: metaPath, config: config}
}

// Create writes the intensity map to outPath: one flat single-plane
// frame per decoded frame, 255 at every transmitted luma sample
// position and 0 elsewhere.
func (m *IntensityMap) Create(outPath string) error {
	rows, cols, cur, closeMeta, err := yuvio.ReadHeader(m.metaPath, 4096)
	if err != nil {
		return err
	}
	defer closeMeta()

	w, err := yuvio.NewMapWriter(outPath)
	if err != nil {
		return err
	}
	defer w.Close()

	block := m.config.Block
	for cur.HasNext() {
		part := yuvcodec.NewTensor3(yuvcodec.NewShape3D(rows, cols, block.Frames))
		for _, spec := range yuvcodec.BlockSpecs(rows, cols, block) {
			modeID, err := cur.Get()
			if err != nil {
				return err
			}
			mode, err := m.config.GetMode(int(modeID), spec.Block)
			if err != nil {
				return err
			}
			markKeptSamples(part, spec, mode)
		}
		for i := 0; i < block.Frames; i++ {
			if err := w.WriteFrame(part.View(0, 0, i, yuvcodec.NewShape3D(rows, cols, 1))); err != nil {
				return err
			}
		}
	}
	return nil
}

// markKeptSamples sets to 255 every position within spec's block that
// mode.YChunk's grid keeps (the bottom-right sample of every chunk,
// matching kernels.go's PickLast as used by PickSamples).
func markKeptSamples(part yuvcodec.Tensor3, spec yuvcodec.BlockSpec, mode yuvcodec.Mode) {
	chunk := mode.YChunk
	for r := chunk.Rows - 1; r < spec.Block.Rows; r += chunk.Rows {
		for c := chunk.Cols - 1; c < spec.Block.Cols; c += chunk.Cols {
			for f := chunk.Frames - 1; f < spec.Block.Frames; f += chunk.Frames {
				part.Set(spec.Row+r, spec.Col+c, f, 255)
			}
		}
	}
}
