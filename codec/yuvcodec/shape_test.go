/*
NAME
  shape_test.go

DESCRIPTION
  shape_test.go tests Shape3D's arithmetic.

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

func TestShape3DCount(t *testing.T) {
	s := NewShape3D(4, 8, 2)
	if got, want := s.Count(), 64; got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
}

func TestShape3DDivMul(t *testing.T) {
	block := NewShape3D(16, 16, 1)
	chunk := NewShape3D(2, 2, 1)
	points := block.Div(chunk)
	if want := NewShape3D(8, 8, 1); !points.Eq(want) {
		t.Errorf("Div() = %s, want %s", points, want)
	}
	if back := points.Mul(chunk); !back.Eq(block) {
		t.Errorf("points.Mul(chunk) = %s, want %s", back, block)
	}
}

func TestShape3DCeilDiv(t *testing.T) {
	cases := []struct {
		a, b Shape3D
		want Shape3D
	}{
		{NewShape3D(17, 17, 5), NewShape3D(16, 16, 4), NewShape3D(2, 2, 2)},
		{NewShape3D(16, 16, 4), NewShape3D(16, 16, 4), NewShape3D(1, 1, 1)},
	}
	for _, c := range cases {
		if got := c.a.CeilDiv(c.b); !got.Eq(c.want) {
			t.Errorf("%s.CeilDiv(%s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestShape3DIsDivisible(t *testing.T) {
	block := NewShape3D(16, 16, 1)
	if !block.IsDivisible(NewShape3D(2, 2, 1)) {
		t.Error("expected 16x16x1 to be divisible by 2x2x1")
	}
	if block.IsDivisible(NewShape3D(3, 2, 1)) {
		t.Error("expected 16x16x1 not to be divisible by 3x2x1")
	}
}

func TestShape3DAdd(t *testing.T) {
	s := NewShape3D(16, 16, 4).Add(1)
	if want := NewShape3D(17, 17, 5); !s.Eq(want) {
		t.Errorf("Add(1) = %s, want %s", s, want)
	}
}

func TestShape3DString(t *testing.T) {
	if got, want := NewShape3D(1, 2, 3).String(), "(1, 2, 3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
