/*
NAME
  tensor_test.go

DESCRIPTION
  tensor_test.go tests Tensor3's addressing, views, and copies.

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

func TestTensor3SetAt(t *testing.T) {
	tn := NewTensor3(NewShape3D(2, 2, 2))
	tn.Set(1, 0, 1, 42)
	if got := tn.At(1, 0, 1); got != 42 {
		t.Errorf("At(1,0,1) = %d, want 42", got)
	}
	if got := tn.At(0, 0, 0); got != 0 {
		t.Errorf("At(0,0,0) = %d, want 0", got)
	}
}

func TestTensor3ViewSharesBackingArray(t *testing.T) {
	base := NewTensor3(NewShape3D(4, 4, 1))
	view := base.View(1, 1, 0, NewShape3D(2, 2, 1))
	view.Set(0, 0, 0, 99)
	if got := base.At(1, 1, 0); got != 99 {
		t.Errorf("write through view not visible in base: At(1,1,0) = %d, want 99", got)
	}
}

func TestTensor3CopyFrom(t *testing.T) {
	src := NewTensor3(NewShape3D(2, 2, 1))
	src.Fill(7)
	dst := NewTensor3(NewShape3D(2, 2, 1))
	dst.CopyFrom(src)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := dst.At(r, c, 0); got != 7 {
				t.Errorf("dst.At(%d,%d,0) = %d, want 7", r, c, got)
			}
		}
	}
}

func TestTensor3FlattenRoundTrip(t *testing.T) {
	shape := NewShape3D(2, 3, 1)
	src := NewTensor3(shape)
	v := byte(0)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			src.Set(r, c, 0, v)
			v++
		}
	}
	flat := src.Flatten()
	back := TensorFromFlat(flat, shape)
	if !back.Shape().Eq(shape) {
		t.Fatalf("TensorFromFlat shape = %s, want %s", back.Shape(), shape)
	}
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if got, want := back.At(r, c, 0), src.At(r, c, 0); got != want {
				t.Errorf("back.At(%d,%d,0) = %d, want %d", r, c, got, want)
			}
		}
	}
}
