//go:build withcv
// +build withcv

/*
DESCRIPTION
  yuvplayer is a gocv-based viewer for a sequence's original, decoded,
  intensity-map and error-map sibling files, displayed side by side with
  an optional nearest-neighbor zoom and block-boundary grid overlay.

  Grounded on original_source/yuv_io/yuv_player.py's YuvPlayer.play (read
  one frame from each enabled source per tick, hstack, zoom, draw grid
  lines at block boundaries, pause on SPACE, screenshot on ENTER) and the
  teacher's exp/gocv-exp/main.go + cmd/rv/probe.go gocv.io/x/gocv usage
  (gocv.NewWindow, Window.IMShow, Window.WaitKey), gated behind the
  withcv build tag those files already use.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvplayer is a command-line YUV sequence viewer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"

	"github.com/kortschak/yuvcodec/codec/yuvcodec"
	"github.com/kortschak/yuvcodec/yuvio"
)

func main() {
	seq := flag.String("sequence", "", "path to the source .yuv sequence (parent dir must be named H_W)")
	blockStr := flag.String("block", "16,16,1", "base block shape as rows,cols,frames, used only for the grid overlay")
	zoom := flag.Int("zoom", 1, "nearest-neighbor zoom factor")
	fps := flag.Float64("fps", 25, "target playback frame rate")
	playOriginal := flag.Bool("original", true, "show the original sequence")
	playDecoded := flag.Bool("decoded", true, "show the .yuv_decoded sequence")
	playSamples := flag.Bool("samples", false, "show the .intensity_map kept-sample overlay")
	playError := flag.Bool("error", false, "show the .error_map distortion overlay")
	flag.Parse()

	if *seq == "" {
		fmt.Fprintln(os.Stderr, "yuvplayer: -sequence is required")
		os.Exit(2)
	}
	block, err := parseShape(*blockStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "yuvplayer: invalid -block:", err)
		os.Exit(2)
	}
	if !*playOriginal && !*playDecoded && !*playSamples && !*playError {
		fmt.Fprintln(os.Stderr, "yuvplayer: at least one of -original, -decoded, -samples, -error must be set")
		os.Exit(2)
	}

	p, err := newPlayer(*seq, block, *zoom, *fps, *playOriginal, *playDecoded, *playSamples, *playError)
	if err != nil {
		fmt.Fprintln(os.Stderr, "yuvplayer:", err)
		os.Exit(1)
	}
	defer p.Close()

	if err := p.play(); err != nil {
		fmt.Fprintln(os.Stderr, "yuvplayer:", err)
		os.Exit(1)
	}
}

// player holds the readers for whichever sources are enabled and plays
// them back in lockstep, matching YuvPlayer.play.
type player struct {
	name  string
	block yuvcodec.Shape3D
	zoom  int
	fps   float64

	original *yuvio.Reader
	decoded  *yuvio.Reader
	samples  *yuvio.MapReader
	errorMap *yuvio.MapReader

	window *gocv.Window
}

func newPlayer(sequencePath string, block yuvcodec.Shape3D, zoom int, fps float64, playOriginal, playDecoded, playSamples, playError bool) (*player, error) {
	p := &player{
		name:  filepath.Base(sequencePath),
		block: block,
		zoom:  zoom,
		fps:   fps,
	}

	rows, cols, err := yuvio.DimensionsFromDir(sequencePath)
	if err != nil {
		return nil, err
	}

	if playOriginal {
		p.original, err = yuvio.NewReader(sequencePath, rows, cols, nil)
		if err != nil {
			return nil, err
		}
	}
	if playDecoded {
		p.decoded, err = yuvio.NewReader(yuvio.DecodedPath(sequencePath), rows, cols, nil)
		if err != nil {
			p.Close()
			return nil, err
		}
	}
	if playSamples {
		p.samples, err = yuvio.NewMapReader(yuvio.IntensityMapPath(sequencePath), rows, cols)
		if err != nil {
			p.Close()
			return nil, err
		}
	}
	if playError {
		p.errorMap, err = yuvio.NewMapReader(yuvio.ErrorMapPath(sequencePath), rows, cols)
		if err != nil {
			p.Close()
			return nil, err
		}
	}

	p.window = gocv.NewWindow(p.name)
	return p, nil
}

// Close releases every open reader and the display window.
func (p *player) Close() error {
	if p.original != nil {
		p.original.Close()
	}
	if p.decoded != nil {
		p.decoded.Close()
	}
	if p.samples != nil {
		p.samples.Close()
	}
	if p.errorMap != nil {
		p.errorMap.Close()
	}
	if p.window != nil {
		p.window.Close()
	}
	return nil
}

// keycodes recognised during playback, matching yuv_player.py.
const (
	keyEnter = 13
	keySpace = 32
	keyEsc   = 27
)

// play reads one frame from every enabled source per tick, concatenates
// them side by side, optionally zooms and overlays a block grid, and
// displays the result until a source runs dry or the user quits.
func (p *player) play() error {
	current := gocv.NewMat()
	defer current.Close()

	period := time.Duration(1000/p.fps) * time.Millisecond
	if period <= 0 {
		period = time.Millisecond
	}

	for {
		start := time.Now()

		var panels []gocv.Mat
		ok := true
		if p.original != nil {
			m, frameOK, err := readBGR(p.original)
			if err != nil {
				return err
			}
			ok = ok && frameOK
			if frameOK {
				panels = append(panels, m)
			}
		}
		if p.samples != nil {
			m, frameOK, err := readMapBGR(p.samples)
			if err != nil {
				return err
			}
			ok = ok && frameOK
			if frameOK {
				panels = append(panels, m)
			}
		}
		if p.errorMap != nil {
			m, frameOK, err := readMapBGR(p.errorMap)
			if err != nil {
				return err
			}
			ok = ok && frameOK
			if frameOK {
				panels = append(panels, m)
			}
		}
		if p.decoded != nil {
			m, frameOK, err := readBGR(p.decoded)
			if err != nil {
				return err
			}
			ok = ok && frameOK
			if frameOK {
				panels = append(panels, m)
			}
		}
		if !ok || len(panels) == 0 {
			closeAll(panels)
			break
		}

		if err := gocv.Hconcat(panels, &current); err != nil {
			closeAll(panels)
			return fmt.Errorf("concatenating panels: %w", err)
		}
		closeAll(panels)

		if p.zoom > 1 {
			p.drawZoomed(&current)
		}

		p.window.IMShow(current)

		elapsed := time.Since(start)
		sleep := period - elapsed
		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}
		key := p.window.WaitKey(int(sleep.Milliseconds()))
		if key == keyEsc {
			return nil
		}
		if key == keyEnter {
			p.saveScreenshot(current)
		}
		if key == keySpace {
			p.pause(&current)
		}
	}

	// Hold the final frame until the user quits.
	for {
		key := p.window.WaitKey(0)
		if key == keyEsc {
			return nil
		}
		if key == keyEnter {
			p.saveScreenshot(current)
		}
	}
}

// pause blocks on key input, resuming on SPACE and saving a screenshot on
// ENTER, matching yuv_player.py's inner pause loop.
func (p *player) pause(current *gocv.Mat) {
	for {
		key := p.window.WaitKey(0)
		if key == keyEnter {
			p.saveScreenshot(*current)
		}
		if key == keySpace {
			return
		}
	}
}

// drawZoomed resizes m in place by p.zoom using nearest-neighbor
// interpolation and overlays white lines at every block boundary.
func (p *player) drawZoomed(m *gocv.Mat) {
	zoomed := gocv.NewMat()
	size := m.Size()
	gocv.Resize(*m, &zoomed, image.Pt(size[1]*p.zoom, size[0]*p.zoom), 0, 0, gocv.InterpolationNearestNeighbor)
	m.Close()
	*m = zoomed

	white := color.RGBA{255, 255, 255, 0}
	rowStep := p.block.Rows * p.zoom
	colStep := p.block.Cols * p.zoom
	sz := m.Size()
	if rowStep > 0 {
		for y := rowStep; y < sz[0]; y += rowStep {
			gocv.Line(m, image.Pt(0, y), image.Pt(sz[1], y), white, 1)
		}
	}
	if colStep > 0 {
		for x := colStep; x < sz[1]; x += colStep {
			gocv.Line(m, image.Pt(x, 0), image.Pt(x, sz[0]), white, 1)
		}
	}
}

// saveScreenshot writes current to screenshots/<timestamp>.png, matching
// YuvPlayer.save_screenshot.
func (p *player) saveScreenshot(current gocv.Mat) {
	if err := os.MkdirAll("screenshots", 0o755); err != nil {
		return
	}
	path := fmt.Sprintf("screenshots/%s.png", time.Now().UTC().Format("20060102_150405"))
	gocv.IMWrite(path, current)
}

// readBGR reads the next frame of r and converts it to a BGR gocv.Mat.
func readBGR(r *yuvio.Reader) (gocv.Mat, bool, error) {
	y, u, v, ok, err := r.ReadFrame()
	if err != nil || !ok {
		return gocv.Mat{}, ok, err
	}
	m, err := yuvToBGRMat(y, u, v)
	return m, true, err
}

// readMapBGR reads the next frame of r (a grayscale overlay plane) and
// converts it to a three-channel gray BGR Mat so it hstacks cleanly
// alongside the color panels.
func readMapBGR(r *yuvio.MapReader) (gocv.Mat, bool, error) {
	plane, ok, err := r.ReadFrame()
	if err != nil || !ok {
		return gocv.Mat{}, ok, err
	}
	m, err := grayToBGRMat(plane)
	return m, true, err
}

// yuvToBGRMat converts full-resolution (4:4:4) Y/Cb/Cr planes to an 8-bit
// 3-channel BGR Mat using the BT.601 full-range transform.
func yuvToBGRMat(y, u, v yuvcodec.Tensor3) (gocv.Mat, error) {
	rows, cols := y.Shape().Rows, y.Shape().Cols
	buf := make([]byte, rows*cols*3)
	i := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			yy := float64(y.At(r, c, 0))
			cb := float64(u.At(r, c, 0)) - 128
			cr := float64(v.At(r, c, 0)) - 128
			buf[i+0] = clampByte(yy + 1.772*cb)
			buf[i+1] = clampByte(yy - 0.344136*cb - 0.714136*cr)
			buf[i+2] = clampByte(yy + 1.402*cr)
			i += 3
		}
	}
	return gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC3, buf)
}

// grayToBGRMat replicates a single-channel plane across three channels.
func grayToBGRMat(plane yuvcodec.Tensor3) (gocv.Mat, error) {
	rows, cols := plane.Shape().Rows, plane.Shape().Cols
	buf := make([]byte, rows*cols*3)
	i := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := plane.At(r, c, 0)
			buf[i+0], buf[i+1], buf[i+2] = v, v, v
			i += 3
		}
	}
	return gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC3, buf)
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func closeAll(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}

// parseShape parses a "rows,cols,frames" flag value into a Shape3D.
func parseShape(s string) (yuvcodec.Shape3D, error) {
	var n [3]int
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &n[0], &n[1], &n[2]); err != nil {
		return yuvcodec.Shape3D{}, fmt.Errorf("expected rows,cols,frames, got %q", s)
	}
	return yuvcodec.NewShape3D(n[0], n[1], n[2]), nil
}
