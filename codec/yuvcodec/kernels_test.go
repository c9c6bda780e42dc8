/*
NAME
  kernels_test.go

DESCRIPTION
  kernels_test.go tests the numeric kernels, including spec.md §8's
  invariants 3 and 4 (pick/repeat and average/repeat shape round trips).

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

import "testing"

func constTensor(shape Shape3D, v byte) Tensor3 {
	tn := NewTensor3(shape)
	tn.Fill(v)
	return tn
}

// TestPickRepeatShapeRoundTrip is spec.md §8 invariant 3.
func TestPickRepeatShapeRoundTrip(t *testing.T) {
	a := constTensor(NewShape3D(16, 16, 2), 5)
	chunk := NewShape3D(4, 4, 1)
	got := Repeat3D(PickFirst(a, chunk), chunk).Shape()
	if !got.Eq(a.Shape()) {
		t.Errorf("repeat(pick_first(a, chunk)).Shape() = %s, want %s", got, a.Shape())
	}
}

// TestAverageRepeatShapeRoundTrip is spec.md §8 invariant 4.
func TestAverageRepeatShapeRoundTrip(t *testing.T) {
	chunk := NewShape3D(4, 4, 2)
	count := NewShape3D(4, 4, 1)
	a := constTensor(chunk.Mul(count), 9)
	got := Repeat3D(Averages3D(a, chunk, count), chunk).Shape()
	if !got.Eq(a.Shape()) {
		t.Errorf("repeat(averages(a, chunk, count)).Shape() = %s, want %s", got, a.Shape())
	}
}

func TestPickFirstPicksTopLeftCorner(t *testing.T) {
	a := NewTensor3(NewShape3D(4, 4, 1))
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a.Set(r, c, 0, byte(r*4+c))
		}
	}
	got := PickFirst(a, NewShape3D(2, 2, 1))
	want := [][]byte{{0, 2}, {8, 10}}
	for r := range want {
		for c := range want[r] {
			if g := got.At(r, c, 0); g != want[r][c] {
				t.Errorf("PickFirst At(%d,%d,0) = %d, want %d", r, c, g, want[r][c])
			}
		}
	}
}

func TestPickLastPicksBottomRightCorner(t *testing.T) {
	a := NewTensor3(NewShape3D(4, 4, 1))
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a.Set(r, c, 0, byte(r*4+c))
		}
	}
	got := PickLast(a, NewShape3D(2, 2, 1))
	want := [][]byte{{5, 7}, {13, 15}}
	for r := range want {
		for c := range want[r] {
			if g := got.At(r, c, 0); g != want[r][c] {
				t.Errorf("PickLast At(%d,%d,0) = %d, want %d", r, c, g, want[r][c])
			}
		}
	}
}

func TestAverages3DRoundsDown(t *testing.T) {
	a := NewTensor3(NewShape3D(2, 1, 1))
	a.Set(0, 0, 0, 1)
	a.Set(1, 0, 0, 2)
	got := Averages3D(a, NewShape3D(2, 1, 1), NewShape3D(1, 1, 1))
	if g := got.At(0, 0, 0); g != 1 {
		t.Errorf("Averages3D((1+2)/2) = %d, want 1 (rounded down)", g)
	}
}

func TestZoom3DConstantFieldIsInvariant(t *testing.T) {
	a := constTensor(NewShape3D(2, 2, 1), 128)
	out := Zoom3D(a, NewShape3D(8, 8, 1))
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if g := out.At(r, c, 0); g != 128 {
				t.Errorf("Zoom3D of constant field: At(%d,%d,0) = %d, want 128", r, c, g)
			}
		}
	}
}

func TestZoom3DSameShapeIsIdentity(t *testing.T) {
	a := NewTensor3(NewShape3D(3, 3, 1))
	v := byte(10)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			a.Set(r, c, 0, v)
			v += 10
		}
	}
	out := Zoom3D(a, NewShape3D(3, 3, 1))
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if got, want := out.At(r, c, 0), a.At(r, c, 0); got != want {
				t.Errorf("Zoom3D identity: At(%d,%d,0) = %d, want %d", r, c, got, want)
			}
		}
	}
}

func TestInterpolateLumaCentersConstantFieldIsInvariant(t *testing.T) {
	chunk := NewShape3D(4, 4, 1)
	block := NewShape3D(16, 16, 1)
	points := block.Div(chunk)
	a := constTensor(points, 200)
	out := InterpolateLumaCenters(a, block, chunk)
	for r := 0; r < block.Rows; r++ {
		for c := 0; c < block.Cols; c++ {
			if g := out.At(r, c, 0); g != 200 {
				t.Errorf("InterpolateLumaCenters of constant field: At(%d,%d,0) = %d, want 200", r, c, g)
			}
		}
	}
}
