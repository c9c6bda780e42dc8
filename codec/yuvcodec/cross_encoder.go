/*
NAME
  cross_encoder.go

DESCRIPTION
  cross_encoder.go implements the cross-boundary encoder, used when
  EncodingType is PickInterpolate: blocks are sampled from a one-sample
  bordered window shared with already-processed top/left/past-frame
  neighbors, using pick_first rather than pick_last, so the eventual
  cross-boundary decoder can reconstruct a globally C⁰-continuous
  trilinear surface.

  Grounded on original_source/codec/interpolation_encoder.py.

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

	"github.com/ausocean/utils/logging"
)

// CrossEncoder encodes a sequence with the cross-boundary, border-aware
// sampling PickInterpolate requires.
type CrossEncoder struct {
	config *Config
	log    logging.Logger
}

// NewCrossEncoder returns a CrossEncoder for config. config.EncodingType
// must be PickInterpolate.
func NewCrossEncoder(config *Config, log logging.Logger) (*CrossEncoder, error) {
	if config.EncodingType != PickInterpolate {
		return nil, fmt.Errorf("%w: cross-boundary encoder requires PickInterpolate", ErrConfigInvalid)
	}
	return &CrossEncoder{config: config, log: log}, nil
}

// EncodePart builds the RD hull for every block in part (whose buffers
// must already carry this part's propagated borders; see
// Part.PropagateEncodeBorders), bisects against the Config's target bpp,
// and returns the resulting per-block interior code bytes and chosen mode
// indices, in raster order.
func (e *CrossEncoder) EncodePart(part *Part, sourceRows, sourceCols int) ([]EncodedBlock, error) {
	specs := BlockSpecs(sourceRows, sourceCols, e.config.Block)

	hulls := make([][]Candidate, len(specs))
	extended := make([]struct{ y, u, v Tensor3 }, len(specs))

	for i, spec := range specs {
		y, u, v := part.ExtendedBlockWindow(spec)
		extended[i] = struct{ y, u, v Tensor3 }{y, u, v}
		ySrc, uSrc, vSrc := part.BlockWindow(spec)

		modes := e.config.GetModes(spec.Block)
		if len(modes) == 0 {
			return nil, fmt.Errorf("%w: no admissible mode for block %s", ErrConfigInvalid, spec.Block)
		}
		candidates := make([]Candidate, len(modes))
		for j, mode := range modes {
			yPick := PickFirst(y, mode.YChunk)
			uPick := PickFirst(u, mode.UVChunk)
			vPick := PickFirst(v, mode.UVChunk)

			extShape := mode.Block.Add(1)
			yDecExt := Zoom3D(yPick, extShape)
			uDecExt := Zoom3D(uPick, extShape)
			vDecExt := Zoom3D(vPick, extShape)

			yDec := yDecExt.View(1, 1, 1, mode.Block)
			uDec := uDecExt.View(1, 1, 1, mode.Block)
			vDec := vDecExt.View(1, 1, 1, mode.Block)

			candidates[j] = Candidate{
				ModeIdx:    mode.Idx,
				Rate:       mode.Rate,
				Distortion: BlockMSE(ySrc, uSrc, vSrc, yDec, uDec, vDec),
			}
		}
		hulls[i] = Hull(candidates)
	}

	modeIDs := Bisection(hulls, e.config.TargetBPP)

	out := make([]EncodedBlock, len(specs))
	for i, spec := range specs {
		mode, err := e.config.GetMode(modeIDs[i], spec.Block)
		if err != nil {
			return nil, fmt.Errorf("block (%d,%d): %w", spec.Row, spec.Col, err)
		}

		yPick := PickFirst(extended[i].y, mode.YChunk)
		uPick := PickFirst(extended[i].u, mode.UVChunk)
		vPick := PickFirst(extended[i].v, mode.UVChunk)

		yInterior := yPick.View(1, 1, 1, mode.YPoints)
		uInterior := uPick.View(1, 1, 1, mode.UVPoints)
		vInterior := vPick.View(1, 1, 1, mode.UVPoints)

		code := make([]byte, 0, yInterior.Shape().Count()+2*uInterior.Shape().Count())
		code = append(code, yInterior.Flatten()...)
		code = append(code, uInterior.Flatten()...)
		code = append(code, vInterior.Flatten()...)

		out[i] = EncodedBlock{ModeIdx: mode.Idx, Code: code}
	}

	if e.log != nil {
		e.log.Log(logging.Debug, "cross-boundary encoder: part encoded", "blocks", len(specs))
	}

	return out, nil
}

// Encode reads F-frame parts from r until a short read, encoding each part
// and writing the resulting code and mode-index bytes through cw and mw.
func (e *CrossEncoder) Encode(r FrameReader, cw CodeWriter, mw MetaWriter) error {
	rows, cols := r.Dimensions()
	if err := mw.WriteHeader(rows, cols); err != nil {
		return err
	}

	part := NewPart(rows, cols, e.config.Block.Frames, true)
	isFirstPart := true

	for {
		ok, err := readCrossPart(r, part, e.config.Block.Frames)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		part.PropagateEncodeBorders(isFirstPart)
		isFirstPart = false

		blocks, err := e.EncodePart(part, rows, cols)
		if err != nil {
			return err
		}
		for _, b := range blocks {
			if err := cw.WriteCode(b.Code); err != nil {
				return err
			}
			if err := mw.WriteMode(b.ModeIdx); err != nil {
				return err
			}
		}

		part.SeedNextFrameBorder()
	}
}

// readCrossPart reads frames frames from r into part's interior, returning
// ok=false (and no error) if r is exhausted before a complete part is
// read.
func readCrossPart(r FrameReader, part *Part, frames int) (ok bool, err error) {
	for i := 0; i < frames; i++ {
		y, u, v, has, err := r.ReadFrame()
		if err != nil {
			return false, err
		}
		if !has {
			return false, nil
		}
		part.SetFrame(i, y, u, v)
	}
	return true, nil
}
