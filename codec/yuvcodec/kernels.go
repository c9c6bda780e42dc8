/*
NAME
  kernels.go

DESCRIPTION
  kernels.go provides the numeric kernels the codec is built from: strided
  picking, nearest-neighbor expansion, trilinear resampling, and chunk
  averaging, all operating on Tensor3 values in row-major (rows, cols,
  frames) order.

  The original implementation expressed these as numpy fancy-slicing
  one-liners (original_source/helpers/numpy_extensions.py); a systems
  language has to materialize the explicit loops, which is what this file
  does. Numeric kernels never fail at runtime: a divisibility or shape
  violation reaching one of these is a programming error, not a value the
  caller can recover from, so callers must establish the precondition
  before calling (see mode.go and part.go for where that happens).

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

import "fmt"

// PickFirst returns the subgrid of a at indices 0, chunk.Rows,
// 2*chunk.Rows, ... along each axis: the top-left-front corner sample of
// each chunk. Output shape is ceil(a.Shape() / chunk).
func PickFirst(a Tensor3, chunk Shape3D) Tensor3 {
	out := NewTensor3(a.Shape().CeilDiv(chunk))
	for r := 0; r < out.shape.Rows; r++ {
		for c := 0; c < out.shape.Cols; c++ {
			for f := 0; f < out.shape.Frames; f++ {
				out.Set(r, c, f, a.At(r*chunk.Rows, c*chunk.Cols, f*chunk.Frames))
			}
		}
	}
	return out
}

// PickLast returns the subgrid of a at indices chunk.Rows-1,
// 2*chunk.Rows-1, ... along each axis: the bottom-right-back corner sample
// of each chunk. a.Shape() must be divisible by chunk.
func PickLast(a Tensor3, chunk Shape3D) Tensor3 {
	if !a.Shape().IsDivisible(chunk) {
		panic(fmt.Sprintf("yuvcodec: PickLast: shape %s not divisible by chunk %s", a.Shape(), chunk))
	}
	out := NewTensor3(a.Shape().Div(chunk))
	for r := 0; r < out.shape.Rows; r++ {
		for c := 0; c < out.shape.Cols; c++ {
			for f := 0; f < out.shape.Frames; f++ {
				out.Set(r, c, f, a.At(r*chunk.Rows+chunk.Rows-1, c*chunk.Cols+chunk.Cols-1, f*chunk.Frames+chunk.Frames-1))
			}
		}
	}
	return out
}

// Repeat3D upsamples a by the integer factor z using nearest-neighbor
// repetition: output[i, j, k] = a[i/z.Rows, j/z.Cols, k/z.Frames]. Output
// shape is a.Shape() * z.
func Repeat3D(a Tensor3, z Shape3D) Tensor3 {
	out := NewTensor3(a.Shape().Mul(z))
	for r := 0; r < out.shape.Rows; r++ {
		for c := 0; c < out.shape.Cols; c++ {
			for f := 0; f < out.shape.Frames; f++ {
				out.Set(r, c, f, a.At(r/z.Rows, c/z.Cols, f/z.Frames))
			}
		}
	}
	return out
}

// Averages3D tiles a (shape chunk*count) into count disjoint chunk-shaped
// sub-blocks and outputs each sub-block's mean, rounded down to a byte.
// Output shape is count.
func Averages3D(a Tensor3, chunk, count Shape3D) Tensor3 {
	if !a.Shape().Eq(chunk.Mul(count)) {
		panic(fmt.Sprintf("yuvcodec: Averages3D: shape %s != chunk %s * count %s", a.Shape(), chunk, count))
	}
	out := NewTensor3(count)
	n := chunk.Count()
	for rc := 0; rc < count.Rows; rc++ {
		for cc := 0; cc < count.Cols; cc++ {
			for fc := 0; fc < count.Frames; fc++ {
				var sum int
				for r := 0; r < chunk.Rows; r++ {
					for c := 0; c < chunk.Cols; c++ {
						for f := 0; f < chunk.Frames; f++ {
							sum += int(a.At(rc*chunk.Rows+r, cc*chunk.Cols+c, fc*chunk.Frames+f))
						}
					}
				}
				out.Set(rc, cc, fc, byte(sum/n))
			}
		}
	}
	return out
}

// Zoom3D trilinearly resamples a to exactly target shape, following
// scipy.ndimage.zoom(order=1) semantics: output index o in [0, target-1]
// maps to input coordinate o*(a.shape-1)/(target-1) (0 when target's
// dimension is 1), values are interpolated from the eight surrounding
// integer corners with clamp-to-edge boundary handling, and results are
// rounded to the nearest integer and clamped to [0, 255].
func Zoom3D(a Tensor3, target Shape3D) Tensor3 {
	rowCoords := zoomCoords(a.shape.Rows, target.Rows)
	colCoords := zoomCoords(a.shape.Cols, target.Cols)
	frameCoords := zoomCoords(a.shape.Frames, target.Frames)
	return sampleTrilinear(a, rowCoords, colCoords, frameCoords)
}

// zoomCoords returns the n output coordinates, in input-index units, that
// scipy.ndimage.zoom(order=1) places for an axis going from size srcLen to
// size n.
func zoomCoords(srcLen, n int) []float64 {
	coords := make([]float64, n)
	if n == 1 {
		return coords // single sample maps to coordinate 0.
	}
	scale := float64(srcLen-1) / float64(n-1)
	for i := range coords {
		coords[i] = float64(i) * scale
	}
	return coords
}

// sampleTrilinear interpolates a at the cartesian product of rowCoords,
// colCoords, and frameCoords (fractional input-index coordinates),
// clamping out-of-range coordinates to the input's boundary.
func sampleTrilinear(a Tensor3, rowCoords, colCoords, frameCoords []float64) Tensor3 {
	out := NewTensor3(NewShape3D(len(rowCoords), len(colCoords), len(frameCoords)))
	for ri, rc := range rowCoords {
		r0, r1, rt := interpIndex(rc, a.shape.Rows)
		for ci, cc := range colCoords {
			c0, c1, ct := interpIndex(cc, a.shape.Cols)
			for fi, fc := range frameCoords {
				f0, f1, ft := interpIndex(fc, a.shape.Frames)
				v := trilerp(a, r0, r1, rt, c0, c1, ct, f0, f1, ft)
				out.Set(ri, ci, fi, clampByte(v))
			}
		}
	}
	return out
}

// interpIndex splits a fractional coordinate into the two bracketing
// integer indices (clamped to [0, size-1]) and the fractional weight
// toward the second index.
func interpIndex(coord float64, size int) (lo, hi int, t float64) {
	if coord < 0 {
		coord = 0
	}
	if coord > float64(size-1) {
		coord = float64(size - 1)
	}
	lo = int(coord)
	hi = lo + 1
	if hi > size-1 {
		hi = size - 1
	}
	t = coord - float64(lo)
	return lo, hi, t
}

// trilerp interpolates the eight corners of the box (r0/r1, c0/c1, f0/f1)
// in a with weights (rt, ct, ft).
func trilerp(a Tensor3, r0, r1 int, rt float64, c0, c1 int, ct float64, f0, f1 int, ft float64) float64 {
	lerp := func(v0, v1 byte, t float64) float64 { return float64(v0)*(1-t) + float64(v1)*t }

	c00 := lerp(a.At(r0, c0, f0), a.At(r1, c0, f0), rt)
	c01 := lerp(a.At(r0, c0, f1), a.At(r1, c0, f1), rt)
	c10 := lerp(a.At(r0, c1, f0), a.At(r1, c1, f0), rt)
	c11 := lerp(a.At(r0, c1, f1), a.At(r1, c1, f1), rt)

	c0v := c00*(1-ct) + c10*ct
	c1v := c01*(1-ct) + c11*ct

	return c0v*(1-ft) + c1v*ft
}

func clampByte(v float64) byte {
	v = v + 0.5 // round to nearest.
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// InterpolateLumaCenters reconstructs a luma block of shape mode.Block from
// the kept-sample grid yInput (shape mode.YPoints), matching the in-loop
// INTERPOLATE reconstruction used by the simple decoder/encoder during RD
// search: sample positions are chunk centers mapped to pixel centers via
// (0.5+i)/chunk - 0.5 along each axis, with clamp-to-edge boundary
// handling, per spec.md §4.5.
func InterpolateLumaCenters(yInput Tensor3, block, chunk Shape3D) Tensor3 {
	rowCoords := centerCoords(block.Rows, chunk.Rows)
	colCoords := centerCoords(block.Cols, chunk.Cols)
	frameCoords := centerCoords(block.Frames, chunk.Frames)
	return sampleTrilinear(yInput, rowCoords, colCoords, frameCoords)
}

// centerCoords returns, for an axis of length n of a block sampled at
// chunk-sized intervals, the n coordinates (in yInput's index units) of
// each output pixel's chunk center.
func centerCoords(n, chunk int) []float64 {
	coords := make([]float64, n)
	for i := range coords {
		coords[i] = (float64(i)+0.5)/float64(chunk) - 0.5
	}
	return coords
}
