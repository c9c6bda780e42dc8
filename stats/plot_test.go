package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

func TestPlotHullWritesNonEmptyPNG(t *testing.T) {
	candidates := []yuvcodec.Candidate{
		{ModeIdx: 0, Rate: 1.0, Distortion: 200},
		{ModeIdx: 1, Rate: 4.0, Distortion: 50},
		{ModeIdx: 2, Rate: 8.0, Distortion: 5},
		{ModeIdx: 3, Rate: 12.0, Distortion: 80}, // interior point, not on the hull
	}

	outPath := filepath.Join(t.TempDir(), "hull.png")
	if err := PlotHull(candidates, "test hull", outPath); err != nil {
		t.Fatalf("PlotHull: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PlotHull wrote an empty file")
	}
}

func TestPlotHullRejectsEmptyCandidates(t *testing.T) {
	if err := PlotHull(nil, "empty", filepath.Join(t.TempDir(), "hull.png")); err == nil {
		t.Fatal("PlotHull(nil, ...) = nil error, want error")
	}
}
