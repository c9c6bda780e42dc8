/*
NAME
  tensor.go

DESCRIPTION
  tensor.go provides Tensor3, a small strided-array abstraction over a flat
  byte buffer. It replaces the fancy slicing the original array-language
  implementation relied on (see DESIGN.md) and isolates bounds checks in one
  place, as suggested for a systems-language port of this codec.

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

// Tensor3 is a view onto a flat []byte, addressed in (rows, cols, frames)
// order by an explicit stride descriptor. Multiple Tensor3 values may share
// the same backing array; View produces such a sharing sub-tensor without
// copying, which is how Part exposes per-block windows into its plane
// buffers.
type Tensor3 struct {
	data   []byte
	shape  Shape3D
	stride Shape3D
	offset int
}

// NewTensor3 allocates a new, contiguous, zero-filled Tensor3 of the given
// shape.
func NewTensor3(shape Shape3D) Tensor3 {
	return Tensor3{
		data:   make([]byte, shape.Count()),
		shape:  shape,
		stride: Shape3D{Rows: shape.Cols * shape.Frames, Cols: shape.Frames, Frames: 1},
	}
}

// Shape returns t's extent.
func (t Tensor3) Shape() Shape3D { return t.shape }

func (t Tensor3) index(r, c, f int) int {
	return t.offset + r*t.stride.Rows + c*t.stride.Cols + f*t.stride.Frames
}

// At returns the byte at (r, c, f).
func (t Tensor3) At(r, c, f int) byte { return t.data[t.index(r, c, f)] }

// Set writes v at (r, c, f).
func (t Tensor3) Set(r, c, f int, v byte) { t.data[t.index(r, c, f)] = v }

// View returns a sub-tensor of shape starting at (r0, c0, f0), sharing t's
// backing array.
func (t Tensor3) View(r0, c0, f0 int, shape Shape3D) Tensor3 {
	return Tensor3{
		data:   t.data,
		shape:  shape,
		stride: t.stride,
		offset: t.index(r0, c0, f0),
	}
}

// Fill sets every element of t to v.
func (t Tensor3) Fill(v byte) {
	for r := 0; r < t.shape.Rows; r++ {
		for c := 0; c < t.shape.Cols; c++ {
			for f := 0; f < t.shape.Frames; f++ {
				t.Set(r, c, f, v)
			}
		}
	}
}

// CopyFrom copies src into t element by element. src and t must have equal
// shapes.
func (t Tensor3) CopyFrom(src Tensor3) {
	for r := 0; r < t.shape.Rows; r++ {
		for c := 0; c < t.shape.Cols; c++ {
			for f := 0; f < t.shape.Frames; f++ {
				t.Set(r, c, f, src.At(r, c, f))
			}
		}
	}
}

// Flatten returns a newly allocated, contiguous, row-major copy of t's
// elements, in (rows, cols, frames) order.
func (t Tensor3) Flatten() []byte {
	out := make([]byte, t.shape.Count())
	i := 0
	for r := 0; r < t.shape.Rows; r++ {
		for c := 0; c < t.shape.Cols; c++ {
			for f := 0; f < t.shape.Frames; f++ {
				out[i] = t.At(r, c, f)
				i++
			}
		}
	}
	return out
}

// TensorFromFlat wraps flat, a row-major (rows, cols, frames) byte slice of
// length shape.Count(), as a contiguous Tensor3. flat is used directly, not
// copied.
func TensorFromFlat(flat []byte, shape Shape3D) Tensor3 {
	return Tensor3{
		data:   flat,
		shape:  shape,
		stride: Shape3D{Rows: shape.Cols * shape.Frames, Cols: shape.Frames, Frames: 1},
	}
}
