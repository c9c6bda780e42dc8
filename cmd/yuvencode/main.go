/*
DESCRIPTION
  yuvencode encodes a raw planar 4:2:0 YUV sequence to a .code/.meta pair
  under the codec's rate-distortion-optimized sampling scheme.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvencode is a command-line YUV encoder.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
	"github.com/kortschak/yuvcodec/yuvio"
	"github.com/ausocean/utils/logging"
)

const (
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 7 // days
)

func main() {
	in := flag.String("in", "", "path to the source .yuv file (parent dir must be named H_W)")
	rows := flag.Int("rows", 0, "frame rows (overrides the H_W directory convention if set)")
	cols := flag.Int("cols", 0, "frame cols (overrides the H_W directory convention if set)")
	blockStr := flag.String("block", "16,16,1", "base block shape as rows,cols,frames (powers of two)")
	targetBPP := flag.Float64("target-bpp", 8, "target bits per pixel")
	encStr := flag.String("encoding", "pick_interpolate", "encoding type: pick_repeat, pick_interpolate, average_repeat, average_interpolate")
	decStr := flag.String("decoding", "interpolate", "decoding type: repeat, interpolate")
	logPath := flag.String("log", "", "log file path (stderr if empty)")
	verbose := flag.Bool("v", false, "verbose (debug-level) logging")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "yuvencode: -in is required")
		os.Exit(2)
	}

	level := logging.Info
	if *verbose {
		level = logging.Debug
	}
	var out io.Writer = os.Stderr
	if *logPath != "" {
		out = &lumberjack.Logger{Filename: *logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	}
	log := logging.New(level, out, true)

	block, err := parseShape(*blockStr)
	if err != nil {
		log.Fatal("yuvencode: invalid -block", "error", err.Error())
	}
	enc, err := yuvcodec.ParseEncodingType(*encStr)
	if err != nil {
		log.Fatal("yuvencode: invalid -encoding", "error", err.Error())
	}
	dec, err := yuvcodec.ParseDecodingType(*decStr)
	if err != nil {
		log.Fatal("yuvencode: invalid -decoding", "error", err.Error())
	}

	r, err := openReader(*in, *rows, *cols, log)
	if err != nil {
		log.Fatal("yuvencode: could not open source", "error", err.Error())
	}
	defer r.Close()
	srcRows, srcCols := r.Dimensions()

	config, err := yuvcodec.NewConfig(block.Rows, block.Cols, block.Frames, *targetBPP, enc, dec, log)
	if err != nil {
		log.Fatal("yuvencode: invalid config", "error", err.Error())
	}

	cw, err := yuvio.NewCodeWriter(yuvio.CodePath(*in))
	if err != nil {
		log.Fatal("yuvencode: could not create code stream", "error", err.Error())
	}
	defer cw.Close()
	mw, err := yuvio.NewMetaWriter(yuvio.MetaPath(*in))
	if err != nil {
		log.Fatal("yuvencode: could not create meta stream", "error", err.Error())
	}
	defer mw.Close()

	log.Info("yuvencode: encoding", "in", *in, "rows", srcRows, "cols", srcCols, "block", block.String(), "target_bpp", *targetBPP, "encoding", enc.String(), "decoding", dec.String())

	if enc == yuvcodec.PickInterpolate {
		e, err := yuvcodec.NewCrossEncoder(config, log)
		if err != nil {
			log.Fatal("yuvencode: could not create cross encoder", "error", err.Error())
		}
		if err := e.Encode(r, cw, mw); err != nil {
			log.Fatal("yuvencode: encode failed", "error", err.Error())
		}
	} else {
		e, err := yuvcodec.NewSimpleEncoder(config, log)
		if err != nil {
			log.Fatal("yuvencode: could not create simple encoder", "error", err.Error())
		}
		if err := e.Encode(r, cw, mw); err != nil {
			log.Fatal("yuvencode: encode failed", "error", err.Error())
		}
	}

	log.Info("yuvencode: done", "code", yuvio.CodePath(*in), "meta", yuvio.MetaPath(*in))
}

func openReader(path string, rows, cols int, log logging.Logger) (*yuvio.Reader, error) {
	if rows > 0 && cols > 0 {
		return yuvio.NewReader(path, rows, cols, log)
	}
	return yuvio.NewReaderFromDir(path, log)
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
