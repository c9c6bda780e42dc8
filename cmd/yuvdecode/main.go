/*
DESCRIPTION
  yuvdecode decodes a .code/.meta pair produced by yuvencode back into a
  raw planar 4:2:0 YUV .yuv_decoded sequence.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvdecode is a command-line YUV decoder.
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

	// codeBufSize and metaBufSize set Cursor's reload granularity.
	codeBufSize = 1 << 16
	metaBufSize = 1 << 12
)

func main() {
	in := flag.String("in", "", "path to the original .yuv source (used to locate sibling .code/.meta and to name the .yuv_decoded output)")
	blockStr := flag.String("block", "16,16,1", "base block shape used at encode time, as rows,cols,frames")
	encStr := flag.String("encoding", "pick_interpolate", "encoding type used at encode time")
	decStr := flag.String("decoding", "interpolate", "decoding type: repeat, interpolate")
	logPath := flag.String("log", "", "log file path (stderr if empty)")
	verbose := flag.Bool("v", false, "verbose (debug-level) logging")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "yuvdecode: -in is required")
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
		log.Fatal("yuvdecode: invalid -block", "error", err.Error())
	}
	enc, err := yuvcodec.ParseEncodingType(*encStr)
	if err != nil {
		log.Fatal("yuvdecode: invalid -encoding", "error", err.Error())
	}
	dec, err := yuvcodec.ParseDecodingType(*decStr)
	if err != nil {
		log.Fatal("yuvdecode: invalid -decoding", "error", err.Error())
	}

	rows, cols, metaCur, closeMeta, err := yuvio.ReadHeader(yuvio.MetaPath(*in), metaBufSize)
	if err != nil {
		log.Fatal("yuvdecode: could not open meta stream", "error", err.Error())
	}
	defer closeMeta()

	codeCur, closeCode, err := yuvio.OpenCodeCursor(yuvio.CodePath(*in), codeBufSize)
	if err != nil {
		log.Fatal("yuvdecode: could not open code stream", "error", err.Error())
	}
	defer closeCode()

	// We only need target_bpp for NewConfig's validation, not for
	// decoding: it has no bearing on how code bytes are interpreted once
	// the mode table is fixed by the block shape and the (encoding,
	// decoding) pairing, so any value in range is fine here.
	config, err := yuvcodec.NewConfig(block.Rows, block.Cols, block.Frames, 8, enc, dec, log)
	if err != nil {
		log.Fatal("yuvdecode: invalid config", "error", err.Error())
	}

	outPath := yuvio.DecodedPath(*in)
	w, err := yuvio.NewWriter(outPath, log)
	if err != nil {
		log.Fatal("yuvdecode: could not create decoded output", "error", err.Error())
	}
	defer w.Close()

	log.Info("yuvdecode: decoding", "in", *in, "rows", rows, "cols", cols, "block", block.String(), "encoding", enc.String(), "decoding", dec.String())

	if enc == yuvcodec.PickInterpolate {
		d := yuvcodec.NewCrossDecoder(config, log)
		if err := d.Decode(metaCur, codeCur, rows, cols, w); err != nil {
			log.Fatal("yuvdecode: decode failed", "error", err.Error())
		}
	} else {
		d := yuvcodec.NewSimpleDecoder(config, log)
		if err := d.Decode(metaCur, codeCur, rows, cols, w); err != nil {
			log.Fatal("yuvdecode: decode failed", "error", err.Error())
		}
	}

	log.Info("yuvdecode: done", "out", outPath)
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
