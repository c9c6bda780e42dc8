/*
NAME
  simple_encoder.go

DESCRIPTION
  simple_encoder.go implements the simple encoder: per-block independent
  sampling (PICK_REPEAT, AVERAGE_REPEAT, AVERAGE_INTERPOLATE), RD hull
  construction across admissible modes, Lagrangian bisection against a
  target bits-per-pixel, and serialized code + metadata emission.

  Grounded on original_source/codec/simple_encoder.py.

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

// extractFunc pulls a block's kept-sample grids out of its source planes
// for the chosen mode.
type extractFunc func(y, u, v Tensor3, mode Mode) (yOut, uOut, vOut Tensor3)

// PickSamples keeps the bottom-right-back corner sample of each chunk
// (PICK_REPEAT).
func PickSamples(y, u, v Tensor3, mode Mode) (Tensor3, Tensor3, Tensor3) {
	return PickLast(y, mode.YChunk), PickLast(u, mode.UVChunk), PickLast(v, mode.UVChunk)
}

// AverageSamples keeps the mean of each chunk (AVERAGE_REPEAT,
// AVERAGE_INTERPOLATE).
func AverageSamples(y, u, v Tensor3, mode Mode) (Tensor3, Tensor3, Tensor3) {
	return Averages3D(y, mode.YChunk, mode.YPoints),
		Averages3D(u, mode.UVChunk, mode.UVPoints),
		Averages3D(v, mode.UVChunk, mode.UVPoints)
}

func extractorFor(enc EncodingType) extractFunc {
	switch enc {
	case PickRepeat:
		return PickSamples
	case AverageRepeat, AverageInterpolate:
		return AverageSamples
	default:
		panic(fmt.Sprintf("yuvcodec: simple encoder doesn't support encoding type %s", enc))
	}
}

// inLoopReconstructorFor returns the reconstruction function the simple
// encoder uses during RD search to estimate distortion. This is keyed by
// EncodingType, not the Config's (possibly different) final DecodingType:
// PICK_REPEAT and AVERAGE_REPEAT both estimate via repetition,
// AVERAGE_INTERPOLATE via luma-trilinear/chroma-repeat, regardless of
// what the eventual standalone decoder run will use.
func inLoopReconstructorFor(enc EncodingType) reconstructFunc {
	switch enc {
	case PickRepeat, AverageRepeat:
		return ReconstructRepeat
	case AverageInterpolate:
		return ReconstructInterpolateAverage
	default:
		panic(fmt.Sprintf("yuvcodec: simple encoder doesn't support encoding type %s", enc))
	}
}

// SimpleEncoder encodes a sequence with per-block independent sampling.
type SimpleEncoder struct {
	config      *Config
	extract     extractFunc
	reconstruct reconstructFunc
	log         logging.Logger
}

// NewSimpleEncoder returns a SimpleEncoder for config. config.EncodingType
// must be one of PickRepeat, AverageRepeat, or AverageInterpolate;
// PickInterpolate requires NewCrossEncoder instead.
func NewSimpleEncoder(config *Config, log logging.Logger) (*SimpleEncoder, error) {
	if config.EncodingType == PickInterpolate {
		return nil, fmt.Errorf("%w: PickInterpolate requires the cross-boundary encoder", ErrConfigInvalid)
	}
	return &SimpleEncoder{
		config:      config,
		extract:     extractorFor(config.EncodingType),
		reconstruct: inLoopReconstructorFor(config.EncodingType),
		log:         log,
	}, nil
}

// EncodedBlock is one block's chosen mode and the byte sequence (Y then U
// then V, each flattened row-major) that should be appended to the code
// stream for it.
type EncodedBlock struct {
	ModeIdx int
	Code    []byte
}

// BlockCandidates evaluates every admissible mode for a block of the given
// shape, extracting and in-loop reconstructing samples with e's (encoding,
// decoding) pairing to measure each mode's distortion. It is exported so
// diagnostic tooling (stats.PlotHull) can inspect the unreduced candidate
// set EncodePart otherwise hulls and discards.
func (e *SimpleEncoder) BlockCandidates(y, u, v Tensor3, block Shape3D) ([]Candidate, error) {
	modes := e.config.GetModes(block)
	if len(modes) == 0 {
		return nil, fmt.Errorf("%w: no admissible mode for block %s", ErrConfigInvalid, block)
	}
	candidates := make([]Candidate, len(modes))
	for j, mode := range modes {
		yEnc, uEnc, vEnc := e.extract(y, u, v, mode)
		yDec, uDec, vDec := e.reconstruct(yEnc, uEnc, vEnc, mode)
		candidates[j] = Candidate{
			ModeIdx:    mode.Idx,
			Rate:       mode.Rate,
			Distortion: BlockMSE(y, u, v, yDec, uDec, vDec),
		}
	}
	return candidates, nil
}

// EncodePart builds the RD hull for every block in part, bisects against
// the Config's target bpp, and returns the resulting per-block code bytes
// and chosen mode indices, in raster order.
func (e *SimpleEncoder) EncodePart(part *Part, sourceRows, sourceCols int) ([]EncodedBlock, error) {
	specs := BlockSpecs(sourceRows, sourceCols, e.config.Block)

	hulls := make([][]Candidate, len(specs))
	blocks := make([]struct{ y, u, v Tensor3 }, len(specs))

	for i, spec := range specs {
		y, u, v := part.BlockWindow(spec)
		blocks[i] = struct{ y, u, v Tensor3 }{y, u, v}

		candidates, err := e.BlockCandidates(y, u, v, spec.Block)
		if err != nil {
			return nil, err
		}
		hulls[i] = Hull(candidates)
	}

	modeIDs := Bisection(hulls, e.config.TargetBPP)

	// At the rate ceiling every block takes the finest mode wherever it is
	// admissible, even where a coarser mode reconstructs equally well.
	if e.config.TargetBPP >= rMax {
		for i, spec := range specs {
			if _, err := e.config.GetMode(0, spec.Block); err == nil {
				modeIDs[i] = 0
			}
		}
	}

	out := make([]EncodedBlock, len(specs))
	for i, spec := range specs {
		mode, err := e.config.GetMode(modeIDs[i], spec.Block)
		if err != nil {
			return nil, fmt.Errorf("block (%d,%d): %w", spec.Row, spec.Col, err)
		}
		yEnc, uEnc, vEnc := e.extract(blocks[i].y, blocks[i].u, blocks[i].v, mode)
		code := make([]byte, 0, yEnc.Shape().Count()+2*uEnc.Shape().Count())
		code = append(code, yEnc.Flatten()...)
		code = append(code, uEnc.Flatten()...)
		code = append(code, vEnc.Flatten()...)
		out[i] = EncodedBlock{ModeIdx: mode.Idx, Code: code}
	}

	if e.log != nil {
		e.log.Log(logging.Debug, "simple encoder: part encoded", "blocks", len(specs))
	}

	return out, nil
}

// Encode reads F-frame parts from r until a short read, encoding each part
// and writing the resulting code and mode-index bytes through cw and mw.
// It processes floor(N/F) complete parts and silently drops any trailing
// partial part, per spec.md §6's frame count invariant.
func (e *SimpleEncoder) Encode(r FrameReader, cw CodeWriter, mw MetaWriter) error {
	rows, cols := r.Dimensions()
	if err := mw.WriteHeader(rows, cols); err != nil {
		return err
	}

	part := NewPart(rows, cols, e.config.Block.Frames, false)

	for {
		ok, err := readPart(r, part, e.config.Block.Frames)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

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
	}
}

// readPart reads frames frames from r into part, returning ok=false (and
// no error) if r is exhausted before a complete part is read.
func readPart(r FrameReader, part *Part, frames int) (ok bool, err error) {
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

// FrameReader supplies successive frames' Y, U, V planes (each shape
// (rows, cols, 1)) and the sequence's fixed rows/cols. yuvio.Reader
// implements this interface for on-disk YUV 4:2:0 sources.
type FrameReader interface {
	Dimensions() (rows, cols int)
	ReadFrame() (y, u, v Tensor3, ok bool, err error)
}

// CodeWriter appends one block's kept-sample bytes to the code stream.
type CodeWriter interface {
	WriteCode(b []byte) error
}

// MetaWriter writes the metadata stream: a 4-byte (rows, cols) header
// followed by one mode-index byte per block.
type MetaWriter interface {
	WriteHeader(rows, cols int) error
	WriteMode(modeIdx int) error
}
