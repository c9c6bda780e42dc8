/*
NAME
  cross_codec_test.go

DESCRIPTION
  cross_codec_test.go round-trips CrossEncoder/CrossDecoder through
  in-memory fakes, covering spec.md §8's Scenario C (cross-boundary
  continuity).

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
	"testing"
)

// TestScenarioCCrossBoundaryRampContinuity is spec.md §8 Scenario C.
func TestScenarioCCrossBoundaryRampContinuity(t *testing.T) {
	cfg, err := NewConfig(16, 16, 2, 4.0, PickInterpolate, Interpolate, nil)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	enc, err := NewCrossEncoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewCrossEncoder: %v", err)
	}

	const rows, cols = 32, 32
	rampFrame := func() memFrame {
		y := NewTensor3(NewShape3D(rows, cols, 1))
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				y.Set(r, c, 0, byte(c))
			}
		}
		return memFrame{y, constTensor(NewShape3D(rows, cols, 1), 128), constTensor(NewShape3D(rows, cols, 1), 128)}
	}
	src := &memFrameSource{rows: rows, cols: cols, frames: []memFrame{rampFrame(), rampFrame()}}

	cw, mw := &memCodeWriter{}, &memMetaWriter{}
	if err := enc.Encode(src, cw, mw); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewCrossDecoder(cfg, nil)
	metaCur := NewCursor(bytes.NewReader(mw.buf.Bytes()[4:]), make([]byte, 64))
	codeCur := NewCursor(bytes.NewReader(cw.buf.Bytes()), make([]byte, 64))
	sink := &memFrameSink{}
	if err := dec.Decode(metaCur, codeCur, rows, cols, sink); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(sink.frames) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(sink.frames))
	}

	for fi, f := range sink.frames {
		for r := 0; r < rows; r++ {
			for c := 1; c < cols; c++ {
				prev := int(f.y.At(r, c-1, 0))
				cur := int(f.y.At(r, c, 0))
				delta := cur - prev
				if delta < 0 {
					delta = -delta
				}
				if delta > 1 {
					t.Fatalf("frame %d: |Y[%d,%d] - Y[%d,%d]| = %d, want <= 1 (block edge at col 16, no discontinuity)", fi, r, c, r, c-1, delta)
				}
			}
		}
	}
}

// TestCrossEncoderDecoderPerfectRateIdentity is spec.md §8 round-trip law
// 7, applied to the cross-boundary pairing. It uses a (2,2,1) base block,
// which admits only a single (finest) chunk level, so the chosen mode is
// forced regardless of target_bpp or the RD search's tie-breaking.
func TestCrossEncoderDecoderPerfectRateIdentity(t *testing.T) {
	cfg, err := NewConfig(2, 2, 1, 24, PickInterpolate, Interpolate, nil)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if n := len(cfg.Modes()); n != 1 {
		t.Fatalf("base block (2,2,1) has %d admissible modes, want exactly 1", n)
	}
	enc, err := NewCrossEncoder(cfg, nil)
	if err != nil {
		t.Fatalf("NewCrossEncoder: %v", err)
	}

	const rows, cols = 8, 8
	y := NewTensor3(NewShape3D(rows, cols, 1))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			y.Set(r, c, 0, byte(r*cols+c))
		}
	}
	frame := memFrame{y, constTensor(NewShape3D(rows, cols, 1), 128), constTensor(NewShape3D(rows, cols, 1), 128)}
	src := &memFrameSource{rows: rows, cols: cols, frames: []memFrame{frame}}

	cw, mw := &memCodeWriter{}, &memMetaWriter{}
	if err := enc.Encode(src, cw, mw); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewCrossDecoder(cfg, nil)
	metaCur := NewCursor(bytes.NewReader(mw.buf.Bytes()[4:]), make([]byte, 64))
	codeCur := NewCursor(bytes.NewReader(cw.buf.Bytes()), make([]byte, 64))
	sink := &memFrameSink{}
	if err := dec.Decode(metaCur, codeCur, rows, cols, sink); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got := sink.frames[0].y
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g, w := got.At(r, c, 0), y.At(r, c, 0); g != w {
				t.Errorf("decoded Y.At(%d,%d,0) = %d, want %d", r, c, g, w)
			}
		}
	}
}
