/*
NAME
  cross_decoder.go

DESCRIPTION
  cross_decoder.go implements the cross-boundary decoder: each block is
  reconstructed by trilinear interpolation (Zoom3D) over a one-sample
  bordered sample grid, where the border sample is the already-
  reconstructed edge of the block above/to the left/in the previous part,
  shared through Part's single backing buffer (see Part.ExtendedBlockWindow).
  At the true image/sequence edges, where no real neighbor exists, the
  border sample is instead synthesized by duplicating the block's own
  first transmitted row, column, or frame, mirroring the source-truth
  duplication CrossEncoder.Encode's Part.PropagateEncodeBorders
  performs ahead of time.

  Grounded on original_source/codec/interpolation_decoder.py.

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

// CrossDecoder decodes a .code/.meta stream produced by CrossEncoder,
// reconstructing each block by trilinear interpolation against its shared
// border.
type CrossDecoder struct {
	config *Config
	log    logging.Logger
}

// NewCrossDecoder returns a CrossDecoder for config.
func NewCrossDecoder(config *Config, log logging.Logger) *CrossDecoder {
	return &CrossDecoder{config: config, log: log}
}

// duplicateRowBorder copies t's row 1 into row 0, synthesizing a top
// border for a block with no real row-wise neighbor.
func duplicateRowBorder(t Tensor3) {
	s := t.Shape()
	t.View(0, 0, 0, NewShape3D(1, s.Cols, s.Frames)).
		CopyFrom(t.View(1, 0, 0, NewShape3D(1, s.Cols, s.Frames)))
}

// duplicateColBorder copies t's column 1 into column 0, synthesizing a
// left border for a block with no real column-wise neighbor.
func duplicateColBorder(t Tensor3) {
	s := t.Shape()
	t.View(0, 0, 0, NewShape3D(s.Rows, 1, s.Frames)).
		CopyFrom(t.View(0, 1, 0, NewShape3D(s.Rows, 1, s.Frames)))
}

// duplicateFrameBorder copies t's frame 1 into frame 0, synthesizing a
// past-frame border for a block in the sequence's first part.
func duplicateFrameBorder(t Tensor3) {
	s := t.Shape()
	t.View(0, 0, 0, NewShape3D(s.Rows, s.Cols, 1)).
		CopyFrom(t.View(0, 0, 1, NewShape3D(s.Rows, s.Cols, 1)))
}

// DecodePart decodes one part's worth of blocks from meta and code,
// writing the reconstruction into part's interior. isFirstPart selects
// the frame-border duplication rule for blocks with no prior part to
// draw a past-frame border from.
func (d *CrossDecoder) DecodePart(meta, code *Cursor, part *Part, sourceRows, sourceCols int, isFirstPart bool) error {
	for _, spec := range BlockSpecs(sourceRows, sourceCols, d.config.Block) {
		modeID, err := meta.Get()
		if err != nil {
			return fmt.Errorf("reading mode index at block (%d,%d): %w", spec.Row, spec.Col, err)
		}
		mode, err := d.config.GetMode(int(modeID), spec.Block)
		if err != nil {
			return fmt.Errorf("block (%d,%d): %w", spec.Row, spec.Col, err)
		}

		yExt, uExt, vExt := part.ExtendedBlockWindow(spec)
		yPick := PickFirst(yExt, mode.YChunk)
		uPick := PickFirst(uExt, mode.UVChunk)
		vPick := PickFirst(vExt, mode.UVChunk)

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

		yPick.View(1, 1, 1, mode.YPoints).CopyFrom(yCode)
		uPick.View(1, 1, 1, mode.UVPoints).CopyFrom(uCode)
		vPick.View(1, 1, 1, mode.UVPoints).CopyFrom(vCode)

		if spec.Row == 0 {
			duplicateRowBorder(yPick)
			duplicateRowBorder(uPick)
			duplicateRowBorder(vPick)
		}
		if spec.Col == 0 {
			duplicateColBorder(yPick)
			duplicateColBorder(uPick)
			duplicateColBorder(vPick)
		}
		if isFirstPart {
			duplicateFrameBorder(yPick)
			duplicateFrameBorder(uPick)
			duplicateFrameBorder(vPick)
		}

		extShape := mode.Block.Add(1)
		yDecExt := Zoom3D(yPick, extShape)
		uDecExt := Zoom3D(uPick, extShape)
		vDecExt := Zoom3D(vPick, extShape)

		yDst, uDst, vDst := part.BlockWindow(spec)
		yDst.CopyFrom(yDecExt.View(1, 1, 1, spec.Block))
		uDst.CopyFrom(uDecExt.View(1, 1, 1, spec.Block))
		vDst.CopyFrom(vDecExt.View(1, 1, 1, spec.Block))
	}
	return nil
}

// Decode reads a complete code/meta stream pair and writes reconstructed
// frames to w, stopping when the code stream is exhausted. sourceRows and
// sourceCols are the source sequence's frame dimensions, normally read
// from the metadata header (see yuvio.ReadHeader).
func (d *CrossDecoder) Decode(meta, code *Cursor, sourceRows, sourceCols int, w FrameWriter) error {
	part := NewPart(sourceRows, sourceCols, d.config.Block.Frames, true)
	isFirstPart := true

	for code.HasNext() {
		if err := d.DecodePart(meta, code, part, sourceRows, sourceCols, isFirstPart); err != nil {
			return err
		}
		isFirstPart = false

		for i := 0; i < d.config.Block.Frames; i++ {
			y, u, v := part.Frame(i)
			if err := w.WriteFrame(y, u, v); err != nil {
				return fmt.Errorf("%w: writing decoded frame: %v", ErrIO, err)
			}
		}
		if d.log != nil {
			d.log.Log(logging.Debug, "cross-boundary decoder: part decoded")
		}

		part.SeedNextFrameBorder()
	}
	return nil
}
