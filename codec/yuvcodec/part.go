/*
NAME
  part.go

DESCRIPTION
  part.go provides Part, the per-plane buffer holding one part (a stack of
  F consecutive frames) of a sequence's current window, and BlockSpec, the
  raster-order enumeration of block positions and (possibly edge-clipped)
  shapes within a part.

  Grounded on original_source/codec/{simple_encoder,simple_decoder,
  interpolation_encoder,interpolation_decoder}.py, which allocate the
  part's Y/U/V buffers once and reuse them across parts (spec.md §3
  "Lifetimes", §5 "Memory").

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

// BlockSpec is one block's raster position and (possibly edge-clipped)
// shape within a part.
type BlockSpec struct {
	Row, Col int
	Block    Shape3D
}

// BlockSpecs enumerates, in raster order (rows-major, then cols), every
// block position within a rows x cols frame for the given base block
// shape. Blocks at the bottom or right edge are clipped to the remaining
// rows/cols; the frame-depth dimension is always the base block's.
func BlockSpecs(rows, cols int, base Shape3D) []BlockSpec {
	var specs []BlockSpec
	for r := 0; r < rows; r += base.Rows {
		for c := 0; c < cols; c += base.Cols {
			specs = append(specs, BlockSpec{
				Row: r,
				Col: c,
				Block: NewShape3D(
					min(base.Rows, rows-r),
					min(base.Cols, cols-c),
					base.Frames,
				),
			})
		}
	}
	return specs
}

// Part holds the Y, U, V plane buffers for one part. In simple mode each
// plane has shape (rows, cols, frames); in cross-boundary mode each plane
// carries the one-sample top/left/past-frame border described in spec.md
// §3, shape (rows+1, cols+1, frames+1).
type Part struct {
	Y, U, V Tensor3

	rows, cols, frames int
	crossBoundary      bool
}

// NewPart allocates a Part for a source of the given rows x cols, with the
// configured block depth in frames. crossBoundary selects the bordered
// geometry the cross-boundary codec variant requires.
func NewPart(rows, cols, frames int, crossBoundary bool) *Part {
	shape := NewShape3D(rows, cols, frames)
	if crossBoundary {
		shape = shape.Add(1)
	}
	return &Part{
		Y:             NewTensor3(shape),
		U:             NewTensor3(shape),
		V:             NewTensor3(shape),
		rows:          rows,
		cols:          cols,
		frames:        frames,
		crossBoundary: crossBoundary,
	}
}

// planes returns p's three planes, for loops that apply the same
// operation to each.
func (p *Part) planes() [3]*Tensor3 { return [3]*Tensor3{&p.Y, &p.U, &p.V} }

// frameOffset returns the (row, col, frame) offset of interior data within
// p's buffers: 0 in simple mode, 1 in cross-boundary mode (the border
// occupies index 0 along each axis).
func (p *Part) frameOffset() int {
	if p.crossBoundary {
		return 1
	}
	return 0
}

// SetFrame writes frame index i (0-based within the part) from y, u, v
// (each shape (rows, cols, 1)) into the interior of p's buffers.
func (p *Part) SetFrame(i int, y, u, v Tensor3) {
	off := p.frameOffset()
	p.Y.View(off, off, off+i, NewShape3D(p.rows, p.cols, 1)).CopyFrom(y)
	p.U.View(off, off, off+i, NewShape3D(p.rows, p.cols, 1)).CopyFrom(u)
	p.V.View(off, off, off+i, NewShape3D(p.rows, p.cols, 1)).CopyFrom(v)
}

// Frame returns views onto the interior (Y, U, V) data of frame index i.
func (p *Part) Frame(i int) (y, u, v Tensor3) {
	off := p.frameOffset()
	shape := NewShape3D(p.rows, p.cols, 1)
	return p.Y.View(off, off, off+i, shape), p.U.View(off, off, off+i, shape), p.V.View(off, off, off+i, shape)
}

// BlockWindow returns views onto the interior block at BlockSpec spec, of
// shape spec.Block, with no border.
func (p *Part) BlockWindow(spec BlockSpec) (y, u, v Tensor3) {
	off := p.frameOffset()
	return p.Y.View(off+spec.Row, off+spec.Col, off, spec.Block),
		p.U.View(off+spec.Row, off+spec.Col, off, spec.Block),
		p.V.View(off+spec.Row, off+spec.Col, off, spec.Block)
}

// ExtendedBlockWindow returns views onto the block at BlockSpec spec
// extended by one sample of border on the top/left/past-frame side
// (shape spec.Block+1), for use by the cross-boundary codec. It panics if
// p isn't in cross-boundary mode.
func (p *Part) ExtendedBlockWindow(spec BlockSpec) (y, u, v Tensor3) {
	if !p.crossBoundary {
		panic("yuvcodec: ExtendedBlockWindow requires cross-boundary Part")
	}
	shape := spec.Block.Add(1)
	return p.Y.View(spec.Row, spec.Col, 0, shape),
		p.U.View(spec.Row, spec.Col, 0, shape),
		p.V.View(spec.Row, spec.Col, 0, shape)
}

// PropagateEncodeBorders fills the cross-boundary encoder's border slots
// ahead of block processing: row 0 is copied from row 1, column 0 from
// column 1, and (for the first part only) frame 0 from frame 1 (spec.md
// §4.7). It panics if p isn't in cross-boundary mode.
func (p *Part) PropagateEncodeBorders(isFirstPart bool) {
	if !p.crossBoundary {
		panic("yuvcodec: PropagateEncodeBorders requires cross-boundary Part")
	}
	rowsFull, colsFull, framesFull := p.rows+1, p.cols+1, p.frames+1

	for _, pl := range p.planes() {
		pl.View(0, 0, 0, NewShape3D(1, colsFull, framesFull)).
			CopyFrom(pl.View(1, 0, 0, NewShape3D(1, colsFull, framesFull)))
	}
	for _, pl := range p.planes() {
		pl.View(0, 0, 0, NewShape3D(rowsFull, 1, framesFull)).
			CopyFrom(pl.View(0, 1, 0, NewShape3D(rowsFull, 1, framesFull)))
	}
	if isFirstPart {
		for _, pl := range p.planes() {
			pl.View(0, 0, 0, NewShape3D(rowsFull, colsFull, 1)).
				CopyFrom(pl.View(0, 0, 1, NewShape3D(rowsFull, colsFull, 1)))
		}
	}
}

// SeedNextFrameBorder copies the part's last frame into its frame-0 border
// slot, seeding temporal continuity for the next part (spec.md §3
// "Lifetimes"). It panics if p isn't in cross-boundary mode.
func (p *Part) SeedNextFrameBorder() {
	if !p.crossBoundary {
		panic("yuvcodec: SeedNextFrameBorder requires cross-boundary Part")
	}
	last := p.frames // index frames+1-1 = frames, the last frame slot.
	for _, pl := range p.planes() {
		pl.View(0, 0, 0, NewShape3D(p.rows+1, p.cols+1, 1)).
			CopyFrom(pl.View(0, 0, last, NewShape3D(p.rows+1, p.cols+1, 1)))
	}
}
