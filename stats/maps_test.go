package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

func writeRawFrame(t *testing.T, path string, rows, cols int, y, u, v byte) {
	t.Helper()
	buf := make([]byte, rows*cols+2*(rows/2)*(cols/2))
	i := 0
	for ; i < rows*cols; i++ {
		buf[i] = y
	}
	cSize := (rows / 2) * (cols / 2)
	for j := 0; j < cSize; j++ {
		buf[i+j] = u
	}
	for j := 0; j < cSize; j++ {
		buf[i+cSize+j] = v
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestErrorMapAmplifiesAndClamps(t *testing.T) {
	dir := t.TempDir()
	seqDir := filepath.Join(dir, "4_4")
	if err := os.MkdirAll(seqDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	seqPath := filepath.Join(seqDir, "clip.yuv")
	decPath := filepath.Join(seqDir, "clip.yuv_decoded")
	writeRawFrame(t, seqPath, 4, 4, 100, 128, 128)
	writeRawFrame(t, decPath, 4, 4, 90, 128, 128) // |100-90| = 10, *10 = 100 per pixel

	em, err := NewErrorMap(seqPath, decPath)
	if err != nil {
		t.Fatalf("NewErrorMap: %v", err)
	}
	outPath := filepath.Join(seqDir, "clip.error_map")
	if err := em.Create(outPath); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) != 16 {
		t.Fatalf("len(raw) = %d, want 16", len(raw))
	}
	for i, b := range raw {
		if b != 100 {
			t.Errorf("error map byte %d = %d, want 100", i, b)
		}
	}
}

func TestIntensityMapMarksKeptSamples(t *testing.T) {
	dir := t.TempDir()
	cfg, err := yuvcodec.NewConfig(4, 4, 1, 4.0, yuvcodec.PickInterpolate, yuvcodec.Interpolate, nil)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	modes := cfg.GetModes(yuvcodec.NewShape3D(4, 4, 1))
	if len(modes) == 0 {
		t.Fatal("no modes available for 4x4x1 block")
	}
	// Pick the coarsest mode (largest YChunk) so the marked-sample grid is
	// sparse and easy to check deterministically.
	coarsest := modes[0]
	for _, m := range modes {
		if m.YChunk.Count() > coarsest.YChunk.Count() {
			coarsest = m
		}
	}

	metaPath := filepath.Join(dir, "clip.meta")
	mw, err := os.Create(metaPath)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	header := []byte{4, 0, 4, 0}
	if _, err := mw.Write(header); err != nil {
		t.Fatalf("Write header: %v", err)
	}
	if _, err := mw.Write([]byte{byte(coarsest.Idx)}); err != nil {
		t.Fatalf("Write mode byte: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	im := NewIntensityMap(metaPath, cfg)
	outPath := filepath.Join(dir, "clip.intensity_map")
	if err := im.Create(outPath); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) != 16 {
		t.Fatalf("len(raw) = %d, want 16", len(raw))
	}
	var kept int
	for _, b := range raw {
		if b == 255 {
			kept++
		} else if b != 0 {
			t.Errorf("unexpected intensity map byte %d, want 0 or 255", b)
		}
	}
	wantKept := 16 / coarsest.YChunk.Count()
	if kept != wantKept {
		t.Errorf("kept sample count = %d, want %d", kept, wantKept)
	}
}
