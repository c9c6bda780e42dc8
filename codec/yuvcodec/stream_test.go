/*
NAME
  stream_test.go

DESCRIPTION
  stream_test.go tests Cursor's sequential and shape-aware reads.

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
	"bytes"
	"errors"
	"testing"
)

func TestCursorGet(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3}), make([]byte, 2))
	for _, want := range []byte{1, 2, 3} {
		got, err := c.Get()
		if err != nil {
			t.Fatalf("Get(): %v", err)
		}
		if got != want {
			t.Errorf("Get() = %d, want %d", got, want)
		}
	}
	if _, err := c.Get(); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("Get() at end of stream error = %v, want ErrTruncatedInput", err)
	}
}

func TestCursorGetMany(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}), make([]byte, 4))
	tn, err := c.GetMany(NewShape3D(2, 3, 1))
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	i := 0
	for r := 0; r < 2; r++ {
		for col := 0; col < 3; col++ {
			if got := tn.At(r, col, 0); got != want[i] {
				t.Errorf("At(%d,%d,0) = %d, want %d", r, col, got, want[i])
			}
			i++
		}
	}
}

func TestCursorGetManyTruncated(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1, 2, 3}), make([]byte, 4))
	if _, err := c.GetMany(NewShape3D(2, 2, 1)); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("GetMany past end of stream error = %v, want ErrTruncatedInput", err)
	}
}

func TestCursorHasNext(t *testing.T) {
	c := NewCursor(bytes.NewReader([]byte{1}), make([]byte, 4))
	if !c.HasNext() {
		t.Fatal("HasNext() = false before reading any bytes")
	}
	if _, err := c.Get(); err != nil {
		t.Fatalf("Get(): %v", err)
	}
	if c.HasNext() {
		t.Error("HasNext() = true after exhausting a 1-byte stream")
	}
}
