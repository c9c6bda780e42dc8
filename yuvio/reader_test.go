package yuvio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReaderUpsamplesChromaToFullResolution(t *testing.T) {
	const rows, cols = 4, 4
	y := make([]byte, rows*cols)
	for i := range y {
		y[i] = byte(i)
	}
	// Native 4:2:0 chroma: 2x2, value 9 and 200 for U and V respectively.
	u := []byte{9, 9, 9, 9}
	v := []byte{200, 200, 200, 200}
	raw := append(append(append([]byte{}, y...), u...), v...)

	dir := t.TempDir()
	path := filepath.Join(dir, "clip.yuv")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := NewReader(path, rows, cols, nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	gy, gu, gv, ok, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !ok {
		t.Fatal("ReadFrame: ok = false, want true")
	}
	for i := 0; i < rows*cols; i++ {
		r, c := i/cols, i%cols
		if got, want := gy.At(r, c, 0), y[i]; got != want {
			t.Errorf("Y.At(%d,%d,0) = %d, want %d", r, c, got, want)
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if got := gu.At(r, c, 0); got != 9 {
				t.Errorf("U.At(%d,%d,0) = %d, want 9 (upsampled)", r, c, got)
			}
			if got := gv.At(r, c, 0); got != 200 {
				t.Errorf("V.At(%d,%d,0) = %d, want 200 (upsampled)", r, c, got)
			}
		}
	}

	_, _, _, ok, err = r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame (second, expect EOF): %v", err)
	}
	if ok {
		t.Error("ReadFrame at EOF: ok = true, want false")
	}
}

func TestReaderRejectsOddDimensions(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "clip.yuv"), 5, 4, nil); err == nil {
		t.Error("NewReader(rows=5): got nil error, want error")
	}
}
