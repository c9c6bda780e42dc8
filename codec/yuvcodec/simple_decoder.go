/*
NAME
  simple_decoder.go

DESCRIPTION
  simple_decoder.go implements the "simple" decoder: independent per-block
  reconstruction by nearest-neighbor repetition or, in the REPEAT/
  INTERPOLATE pairing's asymmetric case, chroma repetition with
  luma-only trilinear interpolation.

  Grounded on original_source/codec/simple_decoder.py. ReconstructRepeat
  and ReconstructInterpolateAverage are also the in-loop reconstruction
  SimpleEncoder uses during RD search, matching SimpleDecoder's static
  methods being reused by SimpleEncoder in the original.

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

// ReconstructRepeat reconstructs all three planes from their kept-sample
// grids by nearest-neighbor repetition.
func ReconstructRepeat(yCode, uCode, vCode Tensor3, mode Mode) (y, u, v Tensor3) {
	return Repeat3D(yCode, mode.YChunk), Repeat3D(uCode, mode.UVChunk), Repeat3D(vCode, mode.UVChunk)
}

// ReconstructInterpolateAverage reconstructs luma by trilinear
// interpolation between chunk centers and chroma by nearest-neighbor
// repetition. This asymmetric policy is intentional (spec.md §4.5):
// chroma is already half-resolution, so only luma is interpolated, to
// avoid double-interpolating chroma.
func ReconstructInterpolateAverage(yCode, uCode, vCode Tensor3, mode Mode) (y, u, v Tensor3) {
	y = InterpolateLumaCenters(yCode, mode.Block, mode.YChunk)
	u = Repeat3D(uCode, mode.UVChunk)
	v = Repeat3D(vCode, mode.UVChunk)
	return y, u, v
}

// reconstructFunc is the in-loop/final reconstruction function shape
// shared by ReconstructRepeat and ReconstructInterpolateAverage.
type reconstructFunc func(yCode, uCode, vCode Tensor3, mode Mode) (y, u, v Tensor3)

func reconstructorFor(dec DecodingType) reconstructFunc {
	switch dec {
	case Repeat:
		return ReconstructRepeat
	case Interpolate:
		return ReconstructInterpolateAverage
	default:
		panic(fmt.Sprintf("yuvcodec: unknown decoding type %d", int(dec)))
	}
}

// SimpleDecoder decodes a .code/.meta stream produced by SimpleEncoder,
// reconstructing each block independently.
type SimpleDecoder struct {
	config      *Config
	reconstruct reconstructFunc
	log         logging.Logger
}

// NewSimpleDecoder returns a SimpleDecoder for config. config.DecodingType
// selects the reconstruction function (REPEAT or INTERPOLATE).
func NewSimpleDecoder(config *Config, log logging.Logger) *SimpleDecoder {
	return &SimpleDecoder{config: config, reconstruct: reconstructorFor(config.DecodingType), log: log}
}

// DecodePart decodes one part's worth of blocks from meta and code,
// writing the reconstruction into part, whose rows/cols must match
// sourceRows/sourceCols.
func (d *SimpleDecoder) DecodePart(meta, code *Cursor, part *Part, sourceRows, sourceCols int) error {
	for _, spec := range BlockSpecs(sourceRows, sourceCols, d.config.Block) {
		modeID, err := meta.Get()
		if err != nil {
			return fmt.Errorf("reading mode index at block (%d,%d): %w", spec.Row, spec.Col, err)
		}
		mode, err := d.config.GetMode(int(modeID), spec.Block)
		if err != nil {
			return fmt.Errorf("block (%d,%d): %w", spec.Row, spec.Col, err)
		}

		yCode, err := code.GetMany(mode.YPoints)
		if err != nil {
			return fmt.Errorf("reading Y samples at block (%d,%d): %w", spec.Row, spec.Col, err)
		}
		uCode, err := code.GetMany(mode.UVPoints)
		if err != nil {
			return fmt.Errorf("reading U samples at block (%d,%d): %w", spec.Row, spec.Col, err)
		}
		vCode, err := code.GetMany(mode.UVPoints)
		if err != nil {
			return fmt.Errorf("reading V samples at block (%d,%d): %w", spec.Row, spec.Col, err)
		}

		yBlock, uBlock, vBlock := d.reconstruct(yCode, uCode, vCode, mode)

		yDst, uDst, vDst := part.BlockWindow(spec)
		yDst.CopyFrom(yBlock)
		uDst.CopyFrom(uBlock)
		vDst.CopyFrom(vBlock)
	}
	return nil
}

// Decode reads a complete code/meta stream pair and writes reconstructed
// frames to w, stopping when the code stream is exhausted. sourceRows and
// sourceCols are the source sequence's frame dimensions, normally read
// from the metadata header (see yuvio.ReadHeader).
func (d *SimpleDecoder) Decode(meta, code *Cursor, sourceRows, sourceCols int, w FrameWriter) error {
	part := NewPart(sourceRows, sourceCols, d.config.Block.Frames, false)

	for code.HasNext() {
		if err := d.DecodePart(meta, code, part, sourceRows, sourceCols); err != nil {
			return err
		}
		for i := 0; i < d.config.Block.Frames; i++ {
			y, u, v := part.Frame(i)
			if err := w.WriteFrame(y, u, v); err != nil {
				return fmt.Errorf("%w: writing decoded frame: %v", ErrIO, err)
			}
		}
		if d.log != nil {
			d.log.Log(logging.Debug, "simple decoder: part decoded")
		}
	}
	return nil
}

// FrameWriter receives one decoded frame's Y, U, V planes (each shape
// (rows, cols, 1)) at a time. yuvio.Writer implements this interface for
// on-disk output; io.Discard-style sinks are useful in tests.
type FrameWriter interface {
	WriteFrame(y, u, v Tensor3) error
}
