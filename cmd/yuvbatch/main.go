/*
DESCRIPTION
  yuvbatch runs the codec over a sweep of target bits-per-pixel values
  and (encoding, decoding) mode pairings against one or more sequences,
  fanned out onto a bounded worker pool, then aggregates every run's
  .stats output into one CSV table.

  Grounded on original_source/runner.py's run_codec (encode, decode,
  intensity/error maps, JSON stats for one sequence+config) and
  run_bpps_batch (sweep target_bpp x mode over a sequence list,
  sequentially; export_stats_to_excel at the end). The original runs
  sequentially; this fans runs out onto a sync.WaitGroup-bounded
  goroutine pool, following revid.Revid's wg sync.WaitGroup / error
  channel idiom (revid/revid.go), since the sweep's runs are
  independent and CPU-bound.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvbatch is a command-line batch sweep driver for the codec.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
	"github.com/kortschak/yuvcodec/stats"
	"github.com/kortschak/yuvcodec/yuvio"
	"github.com/ausocean/utils/logging"
)

// modePairing is one (encoding, decoding) combination to sweep.
type modePairing struct {
	enc yuvcodec.EncodingType
	dec yuvcodec.DecodingType
}

// defaultModes mirrors runner.py's run_bpps_batch mode list.
var defaultModes = []modePairing{
	{yuvcodec.PickRepeat, yuvcodec.Repeat},
	{yuvcodec.PickRepeat, yuvcodec.Interpolate},
	{yuvcodec.PickInterpolate, yuvcodec.Interpolate},
	{yuvcodec.AverageRepeat, yuvcodec.Repeat},
	{yuvcodec.AverageRepeat, yuvcodec.Interpolate},
	{yuvcodec.AverageInterpolate, yuvcodec.Interpolate},
}

func main() {
	seqList := flag.String("sequences", "", "comma-separated list of .yuv sequence paths")
	bppList := flag.String("bpps", "1.0,1.5,2.0,2.5", "comma-separated list of target bits-per-pixel values")
	blockStr := flag.String("block", "16,16,16", "base block shape as rows,cols,frames")
	resultsDir := flag.String("results-dir", "results", "directory to write the aggregated stats CSV to")
	workers := flag.Int("workers", runtime.NumCPU(), "maximum concurrent encode/decode runs")
	plotFirstBlock := flag.Bool("plot", false, "save a PNG of the first block's RD hull for each simple-encoder run")
	flag.Parse()

	log := logging.New(logging.Info, os.Stderr, true)

	if *seqList == "" {
		fmt.Fprintln(os.Stderr, "yuvbatch: -sequences is required")
		os.Exit(2)
	}
	sequences := strings.Split(*seqList, ",")
	bpps, err := parseFloats(*bppList)
	if err != nil {
		log.Fatal("yuvbatch: invalid -bpps", "error", err.Error())
	}
	block, err := parseShape(*blockStr)
	if err != nil {
		log.Fatal("yuvbatch: invalid -block", "error", err.Error())
	}
	if err := os.MkdirAll(*resultsDir, 0o755); err != nil {
		log.Fatal("yuvbatch: could not create results dir", "error", err.Error())
	}

	// Runs against the same sequence share its .code/.meta/.yuv_decoded
	// sibling paths (spec.md §6's file convention has no per-experiment
	// subdirectory), so they must not run concurrently with each other.
	// Different sequences are independent and run in the worker pool.
	jobCount := len(sequences) * len(bpps) * len(defaultModes)
	log.Info("yuvbatch: starting sweep", "sequences", len(sequences), "jobs", jobCount, "workers", *workers)

	sem := make(chan struct{}, *workers)
	errc := make(chan error, jobCount)
	var mu sync.Mutex
	var reports []*stats.Stats
	var wg sync.WaitGroup
	for _, seq := range sequences {
		wg.Add(1)
		sem <- struct{}{}
		go func(seq string) {
			defer wg.Done()
			defer func() { <-sem }()
			for _, bpp := range bpps {
				for _, m := range defaultModes {
					r, err := runOne(seq, bpp, block, m, *plotFirstBlock, log)
					if err != nil {
						errc <- fmt.Errorf("%s bpp=%v mode=(%s,%s): %w", seq, bpp, m.enc, m.dec, err)
						continue
					}
					mu.Lock()
					reports = append(reports, r)
					mu.Unlock()
				}
			}
		}(seq)
	}
	wg.Wait()
	close(errc)

	var failed int
	for err := range errc {
		failed++
		log.Error("yuvbatch: run failed", "error", err.Error())
	}
	log.Info("yuvbatch: sweep complete", "jobs", jobCount, "failed", failed)

	csvPath := fmt.Sprintf("%s/stats_%d.csv", *resultsDir, time.Now().Unix())
	if err := stats.WriteCSV(reports, csvPath); err != nil {
		log.Fatal("yuvbatch: could not write combined csv", "error", err.Error())
	}
	log.Info("yuvbatch: wrote combined csv", "path", csvPath)
}

// runOne performs one encode/decode/maps/stats run, matching
// run_codec's sequence of operations.
func runOne(sequencePath string, targetBPP float64, block yuvcodec.Shape3D, m modePairing, plotFirstBlock bool, log logging.Logger) (*stats.Stats, error) {
	config, err := yuvcodec.NewConfig(block.Rows, block.Cols, block.Frames, targetBPP, m.enc, m.dec, nil)
	if err != nil {
		return nil, err
	}

	r, err := yuvio.NewReaderFromDir(sequencePath, nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cw, err := yuvio.NewCodeWriter(yuvio.CodePath(sequencePath))
	if err != nil {
		return nil, err
	}
	defer cw.Close()
	mw, err := yuvio.NewMetaWriter(yuvio.MetaPath(sequencePath))
	if err != nil {
		return nil, err
	}
	defer mw.Close()

	encodeStart := time.Now()
	// Only SimpleEncoder exposes BlockCandidates; the cross-boundary
	// encoder's border-aware hull isn't directly comparable block-by-block,
	// so the --plot diagnostic only covers the pick_repeat/average_*
	// pairings that select SimpleEncoder (mode.go's selection rule).
	if m.enc == yuvcodec.PickInterpolate {
		e, err := yuvcodec.NewCrossEncoder(config, nil)
		if err != nil {
			return nil, err
		}
		if err := e.Encode(r, cw, mw); err != nil {
			return nil, err
		}
	} else {
		e, err := yuvcodec.NewSimpleEncoder(config, nil)
		if err != nil {
			return nil, err
		}
		if plotFirstBlock {
			if err := plotFirstBlockHull(e, sequencePath, config, targetBPP, m); err != nil {
				log.Error("yuvbatch: could not plot rd hull", "sequence", sequencePath, "error", err.Error())
			}
		}
		if err := e.Encode(r, cw, mw); err != nil {
			return nil, err
		}
	}
	encodeTime := time.Since(encodeStart)

	rows, cols, metaCur, closeMeta, err := yuvio.ReadHeader(yuvio.MetaPath(sequencePath), 1<<12)
	if err != nil {
		return nil, err
	}
	defer closeMeta()
	codeCur, closeCode, err := yuvio.OpenCodeCursor(yuvio.CodePath(sequencePath), 1<<16)
	if err != nil {
		return nil, err
	}
	defer closeCode()

	decodedPath := yuvio.DecodedPath(sequencePath)
	w, err := yuvio.NewWriter(decodedPath, nil)
	if err != nil {
		return nil, err
	}

	decodeStart := time.Now()
	if m.enc == yuvcodec.PickInterpolate {
		d := yuvcodec.NewCrossDecoder(config, nil)
		if err := d.Decode(metaCur, codeCur, rows, cols, w); err != nil {
			w.Close()
			return nil, err
		}
	} else {
		d := yuvcodec.NewSimpleDecoder(config, nil)
		if err := d.Decode(metaCur, codeCur, rows, cols, w); err != nil {
			w.Close()
			return nil, err
		}
	}
	decodeTime := time.Since(decodeStart)
	if err := w.Close(); err != nil {
		return nil, err
	}

	em, err := stats.NewErrorMap(sequencePath, decodedPath)
	if err != nil {
		return nil, err
	}
	if err := em.Create(yuvio.ErrorMapPath(sequencePath)); err != nil {
		return nil, err
	}

	im := stats.NewIntensityMap(yuvio.MetaPath(sequencePath), config)
	if err := im.Create(yuvio.IntensityMapPath(sequencePath)); err != nil {
		return nil, err
	}

	report, err := stats.Build(sequencePath, fmt.Sprintf("bpp%v_%s_%s", targetBPP, m.enc, m.dec), config, encodeTime, decodeTime)
	if err != nil {
		return nil, err
	}
	if err := stats.WriteJSON(report, yuvio.StatsPath(sequencePath)); err != nil {
		return nil, err
	}
	return report, nil
}

// plotFirstBlockHull opens its own reader over sequencePath (so the main
// encode pass isn't disturbed), reads the first part, and saves a PNG of
// the first block's full RD candidate set and hull.
func plotFirstBlockHull(e *yuvcodec.SimpleEncoder, sequencePath string, config *yuvcodec.Config, targetBPP float64, m modePairing) error {
	pr, err := yuvio.NewReaderFromDir(sequencePath, nil)
	if err != nil {
		return err
	}
	defer pr.Close()

	rows, cols := pr.Dimensions()
	part := yuvcodec.NewPart(rows, cols, config.Block.Frames, false)
	for i := 0; i < config.Block.Frames; i++ {
		y, u, v, ok, err := pr.ReadFrame()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("sequence shorter than one part (%d frames)", config.Block.Frames)
		}
		part.SetFrame(i, y, u, v)
	}

	specs := yuvcodec.BlockSpecs(rows, cols, config.Block)
	y, u, v := part.BlockWindow(specs[0])
	candidates, err := e.BlockCandidates(y, u, v, specs[0].Block)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s bpp=%v (%s,%s)", filepath.Base(sequencePath), targetBPP, m.enc, m.dec)
	outPath := fmt.Sprintf("%s.rd_hull_%v_%s_%s.png", sequencePath, targetBPP, m.enc, m.dec)
	return stats.PlotHull(candidates, title, outPath)
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseShape parses a "rows,cols,frames" flag value into a Shape3D.
func parseShape(s string) (yuvcodec.Shape3D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return yuvcodec.Shape3D{}, fmt.Errorf("expected rows,cols,frames, got %q", s)
	}
	n := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return yuvcodec.Shape3D{}, fmt.Errorf("%q is not an integer: %w", p, err)
		}
		n[i] = v
	}
	return yuvcodec.NewShape3D(n[0], n[1], n[2]), nil
}
