/*
NAME
  distortion_test.go

DESCRIPTION
  distortion_test.go tests MSE and BlockMSE.

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

func TestMSEIdenticalIsZero(t *testing.T) {
	a := constTensor(NewShape3D(4, 4, 1), 100)
	b := constTensor(NewShape3D(4, 4, 1), 100)
	if mse := MSE(a, b); mse != 0 {
		t.Errorf("MSE(a, a) = %v, want 0", mse)
	}
}

func TestMSEConstantOffset(t *testing.T) {
	a := constTensor(NewShape3D(2, 2, 1), 100)
	b := constTensor(NewShape3D(2, 2, 1), 105)
	if mse := MSE(a, b); mse != 25 {
		t.Errorf("MSE with constant offset 5 = %v, want 25", mse)
	}
}

func TestBlockMSEWeightsPlanesByElementCount(t *testing.T) {
	shape := NewShape3D(4, 4, 1)
	ySrc, uSrc, vSrc := constTensor(shape, 100), constTensor(shape, 100), constTensor(shape, 100)
	yRec, uRec, vRec := constTensor(shape, 110), constTensor(shape, 100), constTensor(shape, 100)
	got := BlockMSE(ySrc, uSrc, vSrc, yRec, uRec, vRec)
	// 16 of 48 samples differ by 10, the rest by 0: mean squared error =
	// 16*100 / 48.
	want := 16.0 * 100.0 / 48.0
	if got != want {
		t.Errorf("BlockMSE = %v, want %v", got, want)
	}
}
