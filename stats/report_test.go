package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
)

func TestBuildComputesMatchingIdenticalSequence(t *testing.T) {
	dir := t.TempDir()
	seqDir := filepath.Join(dir, "4_4")
	if err := os.MkdirAll(seqDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	seqPath := filepath.Join(seqDir, "clip.yuv")
	writeRawFrame(t, seqPath, 4, 4, 50, 128, 128)
	writeRawFrame(t, filepath.Join(seqDir, "clip.yuv_decoded"), 4, 4, 50, 128, 128)
	if err := os.WriteFile(filepath.Join(seqDir, "clip.code"), make([]byte, 10), 0o644); err != nil {
		t.Fatalf("WriteFile code: %v", err)
	}
	if err := os.WriteFile(filepath.Join(seqDir, "clip.meta"), make([]byte, 8), 0o644); err != nil {
		t.Fatalf("WriteFile meta: %v", err)
	}

	cfg, err := yuvcodec.NewConfig(4, 4, 1, 4.0, yuvcodec.PickInterpolate, yuvcodec.Interpolate, nil)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	s, err := Build(seqPath, "exp1", cfg, 2*time.Second, time.Second)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.MSE != 0 {
		t.Errorf("MSE = %v, want 0 for identical sequences", s.MSE)
	}
	if s.FramesCount != 1 {
		t.Errorf("FramesCount = %d, want 1", s.FramesCount)
	}
	if s.Resolution != "4x4" {
		t.Errorf("Resolution = %q, want %q", s.Resolution, "4x4")
	}
	if s.EncodingSeconds != 2 || s.DecodingSeconds != 1 {
		t.Errorf("timings = (%v, %v), want (2, 1)", s.EncodingSeconds, s.DecodingSeconds)
	}
}

func TestWriteJSONReadJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.stats")
	s := &Stats{SequencePath: "clip.yuv", ExperimentName: "exp1", MSE: 1.5, FramesCount: 3}
	if err := WriteJSON(s, path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.SequencePath != s.SequencePath || got.MSE != s.MSE || got.FramesCount != s.FramesCount {
		t.Errorf("ReadJSON round trip = %+v, want %+v", got, s)
	}
}

func TestExportCSVWalksResultsTree(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "144_176", "exp1")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	s := &Stats{SequencePath: "a.yuv", ExperimentName: "exp1", MSE: 2, FramesCount: 5}
	if err := WriteJSON(s, filepath.Join(sub, "a.stats")); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	outPath := filepath.Join(dir, "combined.csv")
	if err := ExportCSV(dir, outPath); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("combined.csv is empty")
	}
}
