/*
NAME
  report.go

DESCRIPTION
  report.go computes a per-sequence performance summary (rate, MSE,
  PSNR, simplified SSIM, timings) and writes it to a .stats JSON file,
  plus a CSV aggregator over a directory of .stats files.

  Grounded on original_source/stats/stats.py: save_json_stats computes
  the same fields (bpp, bpp including metadata, compression ratio, MSE,
  PSNR, SSIM, resolution, frame count, sizes, timings) from a sequence's
  .code/.meta/.yuv_decoded siblings; export_stats_to_excel aggregates a
  results tree's .stats files into one table. Go has no idiomatic
  equivalent of pandas/xlsxwriter in this corpus, so the aggregate table
  is written as CSV via encoding/csv rather than an .xlsx workbook (the
  one stdlib-only choice in this package; everything upstream of it
  reuses gonum/stat, already wired by codec/yuvcodec's distortion and
  RD-search code).

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
	"github.com/kortschak/yuvcodec/yuvio"
)

// Stats is one sequence's codec performance summary, serialized to a
// .stats JSON file.
type Stats struct {
	SequencePath         string  `json:"sequence_path"`
	ExperimentName       string  `json:"experiment_name"`
	EncodingMode         string  `json:"encoding_mode"`
	DecodingMode         string  `json:"decoding_mode"`
	BlockShape           string  `json:"block_shape"`
	TargetBPP            float64 `json:"target_bpp"`
	BitsPerPixel         float64 `json:"bits_per_pixel"`
	BitsPerPixelWithMeta float64 `json:"bits_per_pixel_with_meta"`
	CompressionRatio     float64 `json:"compression_ratio_with_meta"`
	MSE                  float64 `json:"mse"`
	PSNR                 float64 `json:"psnr_db"`
	SSIM                 float64 `json:"ssim"`
	Resolution           string  `json:"resolution"`
	FramesCount          int     `json:"frames_count"`
	SequenceSize         int64   `json:"sequence_size_bytes"`
	CodeSize             int64   `json:"code_size_bytes"`
	MetadataSize         int64   `json:"metadata_size_bytes"`
	EncodingSeconds      float64 `json:"encoding_seconds"`
	DecodingSeconds      float64 `json:"decoding_seconds"`
}

// Build computes a Stats summary by comparing sequencePath against its
// decoded sibling and measuring its .code/.meta sibling sizes.
func Build(sequencePath, experimentName string, config *yuvcodec.Config, encodeTime, decodeTime time.Duration) (*Stats, error) {
	rows, cols, err := yuvio.DimensionsFromDir(sequencePath)
	if err != nil {
		return nil, err
	}
	decodedPath := yuvio.DecodedPath(sequencePath)
	codePath := yuvio.CodePath(sequencePath)
	metaPath := yuvio.MetaPath(sequencePath)

	seqSize, err := fileSize(sequencePath)
	if err != nil {
		return nil, err
	}
	codeSize, err := fileSize(codePath)
	if err != nil {
		return nil, err
	}
	metaSize, err := fileSize(metaPath)
	if err != nil {
		return nil, err
	}
	frames, err := yuvio.FramesCount(sequencePath, rows, cols)
	if err != nil {
		return nil, err
	}

	mse, psnr, ssim, err := compareSequences(sequencePath, decodedPath, rows, cols)
	if err != nil {
		return nil, err
	}

	return &Stats{
		SequencePath:         sequencePath,
		ExperimentName:       experimentName,
		EncodingMode:         config.EncodingType.String(),
		DecodingMode:         config.DecodingType.String(),
		BlockShape:           config.Block.String(),
		TargetBPP:            config.TargetBPP,
		BitsPerPixel:         float64(codeSize) / float64(seqSize) * 24,
		BitsPerPixelWithMeta: float64(codeSize+metaSize) / float64(seqSize) * 24,
		CompressionRatio:     float64(seqSize) / float64(codeSize+metaSize),
		MSE:                  mse,
		PSNR:                 psnr,
		SSIM:                 ssim,
		Resolution:           fmt.Sprintf("%dx%d", rows, cols),
		FramesCount:          frames,
		SequenceSize:         seqSize,
		CodeSize:             codeSize,
		MetadataSize:         metaSize,
		EncodingSeconds:      encodeTime.Seconds(),
		DecodingSeconds:      decodeTime.Seconds(),
	}, nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("%w: statting %s: %v", yuvcodec.ErrIO, path, err)
	}
	return info.Size(), nil
}

// compareSequences averages per-frame MSE, PSNR, and a simplified
// (non-windowed) SSIM over every frame pair common to both sequences.
func compareSequences(sequencePath, decodedPath string, rows, cols int) (mse, psnr, ssim float64, err error) {
	src, err := yuvio.NewReader(sequencePath, rows, cols, nil)
	if err != nil {
		return 0, 0, 0, err
	}
	defer src.Close()
	dec, err := yuvio.NewReader(decodedPath, rows, cols, nil)
	if err != nil {
		return 0, 0, 0, err
	}
	defer dec.Close()

	var mseSum, psnrSum, ssimSum float64
	var n int
	for {
		sy, su, sv, sok, err := src.ReadFrame()
		if err != nil {
			return 0, 0, 0, err
		}
		dy, du, dv, dok, err := dec.ReadFrame()
		if err != nil {
			return 0, 0, 0, err
		}
		if !sok || !dok {
			break
		}
		m := yuvcodec.BlockMSE(sy, su, sv, dy, du, dv)
		mseSum += m
		psnrSum += psnrFromMSE(m)
		ssimSum += (globalSSIM(sy, dy) + globalSSIM(su, du) + globalSSIM(sv, dv)) / 3
		n++
	}
	if n == 0 {
		return 0, 0, 0, nil
	}
	return mseSum / float64(n), psnrSum / float64(n), ssimSum / float64(n), nil
}

func psnrFromMSE(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	const maxVal = 255.0
	return 10 * math.Log10(maxVal*maxVal/mse)
}

// globalSSIM computes the structural similarity index between two equal-
// shaped planes over the whole image at once, rather than over a sliding
// local window as skimage's structural_similarity does. It uses the
// standard SSIM constants for 8-bit data (K1=0.01, K2=0.03, L=255).
func globalSSIM(a, b yuvcodec.Tensor3) float64 {
	shape := a.Shape()
	n := shape.Count()
	av := make([]float64, 0, n)
	bv := make([]float64, 0, n)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			for f := 0; f < shape.Frames; f++ {
				av = append(av, float64(a.At(r, c, f)))
				bv = append(bv, float64(b.At(r, c, f)))
			}
		}
	}
	muA := stat.Mean(av, nil)
	muB := stat.Mean(bv, nil)
	varA := stat.Variance(av, nil)
	varB := stat.Variance(bv, nil)
	covAB := stat.Covariance(av, bv, nil)

	const l = 255.0
	c1 := (0.01 * l) * (0.01 * l)
	c2 := (0.03 * l) * (0.03 * l)

	num := (2*muA*muB + c1) * (2*covAB + c2)
	den := (muA*muA + muB*muB + c1) * (varA + varB + c2)
	return num / den
}

// WriteJSON serializes r to path, indented for human inspection.
func WriteJSON(r *Stats, path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", yuvcodec.ErrIO, path, err)
	}
	return nil
}

// ReadJSON loads a Stats summary previously written by WriteJSON.
func ReadJSON(path string) (*Stats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", yuvcodec.ErrIO, path, err)
	}
	var r Stats
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", path, err)
	}
	return &r, nil
}

// reportHeader is the CSV column order for ExportCSV, mirroring
// stats.py's PROP_* column list.
var reportHeader = []string{
	"sequence_path", "experiment_name", "encoding_mode", "decoding_mode",
	"block_shape", "target_bpp", "bits_per_pixel", "bits_per_pixel_with_meta",
	"compression_ratio_with_meta", "mse", "psnr_db", "ssim", "resolution",
	"frames_count", "sequence_size_bytes", "code_size_bytes", "metadata_size_bytes",
	"encoding_seconds", "decoding_seconds",
}

// ExportCSV walks resultsDir for .stats files and writes one combined CSV
// table to outPath, one row per sequence, in the order files are found.
func ExportCSV(resultsDir, outPath string) error {
	var paths []string
	err := filepath.WalkDir(resultsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".stats" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: walking %s: %v", yuvcodec.ErrIO, resultsDir, err)
	}

	reports := make([]*Stats, 0, len(paths))
	for _, p := range paths {
		r, err := ReadJSON(p)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}
	return WriteCSV(reports, outPath)
}

// WriteCSV writes one combined CSV table to outPath, one row per report,
// in the given order. Unlike ExportCSV, it takes already-loaded reports
// rather than reading a results tree from disk, for callers (such as
// cmd/yuvbatch) that accumulate reports in memory across a sweep.
func WriteCSV(reports []*Stats, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", yuvcodec.ErrIO, outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return fmt.Errorf("%w: writing csv header: %v", yuvcodec.ErrIO, err)
	}
	for _, r := range reports {
		if err := w.Write(reportRow(r)); err != nil {
			return fmt.Errorf("%w: writing csv row for %s: %v", yuvcodec.ErrIO, r.SequencePath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flushing csv: %v", yuvcodec.ErrIO, err)
	}
	return nil
}

func reportRow(r *Stats) []string {
	return []string{
		r.SequencePath, r.ExperimentName, r.EncodingMode, r.DecodingMode,
		r.BlockShape, fmtFloat(r.TargetBPP), fmtFloat(r.BitsPerPixel), fmtFloat(r.BitsPerPixelWithMeta),
		fmtFloat(r.CompressionRatio), fmtFloat(r.MSE), fmtFloat(r.PSNR), fmtFloat(r.SSIM), r.Resolution,
		strconv.Itoa(r.FramesCount), strconv.FormatInt(r.SequenceSize, 10), strconv.FormatInt(r.CodeSize, 10), strconv.FormatInt(r.MetadataSize, 10),
		fmtFloat(r.EncodingSeconds), fmtFloat(r.DecodingSeconds),
	}
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
