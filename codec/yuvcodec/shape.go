/*
NAME
  shape.go

DESCRIPTION
  shape.go provides Shape3D, a small value type describing the extent of a
  block, chunk, or buffer along the (rows, cols, frames) axes used
  throughout the yuvcodec package.

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

// Shape3D describes an extent in (rows, cols, frames) order. All fields are
// expected to be positive for any shape that participates in block or chunk
// arithmetic.
type Shape3D struct {
	Rows, Cols, Frames int
}

// NewShape3D returns the shape (rows, cols, frames).
func NewShape3D(rows, cols, frames int) Shape3D {
	return Shape3D{Rows: rows, Cols: cols, Frames: frames}
}

// Count returns the total number of elements described by the shape.
func (s Shape3D) Count() int { return s.Rows * s.Cols * s.Frames }

// Eq reports whether s and other describe the same extent.
func (s Shape3D) Eq(other Shape3D) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols && s.Frames == other.Frames
}

// Add returns s with n added to every dimension.
func (s Shape3D) Add(n int) Shape3D {
	return Shape3D{s.Rows + n, s.Cols + n, s.Frames + n}
}

// Div returns the componentwise floor division of s by other.
func (s Shape3D) Div(other Shape3D) Shape3D {
	return Shape3D{s.Rows / other.Rows, s.Cols / other.Cols, s.Frames / other.Frames}
}

// Mul returns the componentwise product of s and other.
func (s Shape3D) Mul(other Shape3D) Shape3D {
	return Shape3D{s.Rows * other.Rows, s.Cols * other.Cols, s.Frames * other.Frames}
}

// CeilDiv returns the componentwise ceiling division of s by other.
func (s Shape3D) CeilDiv(other Shape3D) Shape3D {
	return Shape3D{
		ceilDiv(s.Rows, other.Rows),
		ceilDiv(s.Cols, other.Cols),
		ceilDiv(s.Frames, other.Frames),
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// IsDivisible reports whether each dimension of s is a multiple of the
// corresponding dimension of other.
func (s Shape3D) IsDivisible(other Shape3D) bool {
	return s.Rows%other.Rows == 0 && s.Cols%other.Cols == 0 && s.Frames%other.Frames == 0
}

// Min returns the componentwise minimum of s and other.
func (s Shape3D) Min(other Shape3D) Shape3D {
	return Shape3D{min(s.Rows, other.Rows), min(s.Cols, other.Cols), min(s.Frames, other.Frames)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s Shape3D) String() string {
	return fmt.Sprintf("(%d, %d, %d)", s.Rows, s.Cols, s.Frames)
}
