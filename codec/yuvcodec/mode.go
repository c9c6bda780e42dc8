/*
NAME
  mode.go

DESCRIPTION
  mode.go provides the sampling-mode data model: the (y_chunk, uv_chunk,
  block) tuple that determines how densely each plane of a block is
  sampled, the admissible chunk enumeration for a configured base block,
  and Config, which owns the precomputed mode table for that block and
  returns specializations for edge-clipped blocks.

  This is grounded on original_source/codec/models.py, which this file
  reproduces arithmetically: chunk enumeration order (r outer, c, f) fixes
  the mode index and must be reproduced identically by the decoder.

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
	"fmt"
	"math/bits"

	"github.com/ausocean/utils/logging"
)

// EncodingType selects how an encoder extracts kept samples from a block
// and, indirectly, which in-loop reconstruction is used to estimate
// distortion during RD search.
type EncodingType int

const (
	// PickRepeat keeps the bottom-right-back corner sample of each chunk
	// and reconstructs by nearest-neighbor repetition.
	PickRepeat EncodingType = iota + 1
	// PickInterpolate keeps the top-left-front corner sample of each
	// chunk, with a one-sample cross-boundary border, for the
	// cross-boundary (trilinear) decoder.
	PickInterpolate
	// AverageRepeat keeps the mean of each chunk and reconstructs by
	// nearest-neighbor repetition.
	AverageRepeat
	// AverageInterpolate keeps the mean of each chunk; the in-loop
	// reconstruction used for RD search interpolates luma only.
	AverageInterpolate
)

func (e EncodingType) String() string {
	switch e {
	case PickRepeat:
		return "pick_repeat"
	case PickInterpolate:
		return "pick_interpolate"
	case AverageRepeat:
		return "average_repeat"
	case AverageInterpolate:
		return "average_interpolate"
	default:
		return fmt.Sprintf("EncodingType(%d)", int(e))
	}
}

// DecodingType selects the reconstruction used by the final (not in-loop)
// decoder.
type DecodingType int

const (
	// Repeat reconstructs every plane by nearest-neighbor repetition.
	Repeat DecodingType = iota + 1
	// Interpolate reconstructs by trilinear interpolation. Combined with
	// PickInterpolate encoding, this selects the cross-boundary decoder;
	// otherwise it selects the simple decoder's luma-only trilinear path.
	Interpolate
)

func (d DecodingType) String() string {
	switch d {
	case Repeat:
		return "repeat"
	case Interpolate:
		return "interpolate"
	default:
		return fmt.Sprintf("DecodingType(%d)", int(d))
	}
}

// ParseEncodingType parses the flag/config spellings produced by
// EncodingType.String.
func ParseEncodingType(s string) (EncodingType, error) {
	switch s {
	case "pick_repeat":
		return PickRepeat, nil
	case "pick_interpolate":
		return PickInterpolate, nil
	case "average_repeat":
		return AverageRepeat, nil
	case "average_interpolate":
		return AverageInterpolate, nil
	default:
		return 0, fmt.Errorf("%w: unknown encoding type %q", ErrConfigInvalid, s)
	}
}

// ParseDecodingType parses the flag/config spellings produced by
// DecodingType.String.
func ParseDecodingType(s string) (DecodingType, error) {
	switch s {
	case "repeat":
		return Repeat, nil
	case "interpolate":
		return Interpolate, nil
	default:
		return 0, fmt.Errorf("%w: unknown decoding type %q", ErrConfigInvalid, s)
	}
}

// rMax is the bits-per-pixel ceiling used both as a Mode.Rate upper bound
// and as the RD hull's top sentinel rate (spec.md §4.4).
const rMax = 24.0

// dMax is 255², the maximum possible per-sample squared error, used as the
// RD hull's sentinel distortion.
const dMax = 255 * 255

// Mode is a (y_chunk, uv_chunk) sampling density specialized to a block
// shape, identified by an index stable for a given Config.
type Mode struct {
	Idx      int
	YChunk   Shape3D
	UVChunk  Shape3D
	Block    Shape3D
	YPoints  Shape3D
	UVPoints Shape3D
	Rate     float64 // bits per pixel, see newMode.
}

// newMode builds the Mode for (idx, yChunk, uvChunk, block). The caller is
// responsible for having checked block.IsDivisible(uvChunk); newMode does
// not validate, matching the numeric-kernel convention that such
// invariants are established by the caller, not re-checked per call.
func newMode(idx int, yChunk, uvChunk, block Shape3D) Mode {
	yPoints := block.Div(yChunk)
	uvPoints := block.Div(uvChunk)
	rate := float64(yPoints.Count()+2*uvPoints.Count()) / float64(3*block.Count()) * 24
	return Mode{
		Idx:      idx,
		YChunk:   yChunk,
		UVChunk:  uvChunk,
		Block:    block,
		YPoints:  yPoints,
		UVPoints: uvPoints,
		Rate:     rate,
	}
}

// chunkPair is one (y_chunk, uv_chunk) entry of a Config's admissible chunk
// list, indexed by its position in the enumeration (spec.md §3, "Chunk
// enumeration").
type chunkPair struct {
	yChunk, uvChunk Shape3D
}

// Config holds a codec configuration: the base block shape, target
// bits-per-pixel, the (encoding, decoding) type pairing, the admissible
// chunk list, and the precomputed mode table for the base block.
//
// A Config's mode table is built once at construction and is read-only
// thereafter (spec.md §3, "Lifetimes").
type Config struct {
	Block        Shape3D
	TargetBPP    float64
	EncodingType EncodingType
	DecodingType DecodingType

	chunks []chunkPair
	modes  []Mode

	log logging.Logger
}

// validPairings enumerates the (encoding, decoding) combinations spec.md
// §6 allows.
var validPairings = map[EncodingType][]DecodingType{
	PickRepeat:         {Repeat, Interpolate},
	PickInterpolate:    {Interpolate},
	AverageRepeat:      {Repeat, Interpolate},
	AverageInterpolate: {Interpolate},
}

// NewConfig validates and constructs a Config for a base block
// (rows, cols, frames), a target bits-per-pixel, and an (encoding,
// decoding) pairing. log may be nil, in which case logging is a no-op
// (logging.New(logging.None, io.Discard, true) is the convention used by
// callers that don't want codec-level logs; see yuvio for an example).
func NewConfig(rows, cols, frames int, targetBPP float64, enc EncodingType, dec DecodingType, log logging.Logger) (*Config, error) {
	block := NewShape3D(rows, cols, frames)

	if !isPow2(rows) || !isPow2(cols) || !isPow2(frames) {
		return nil, fmt.Errorf("%w: block %s dimensions must be powers of two", ErrConfigInvalid, block)
	}
	if bits.Len(uint(rows)) < 2 || bits.Len(uint(cols)) < 2 {
		return nil, fmt.Errorf("%w: block %s must allow at least one chunk level in rows and cols", ErrConfigInvalid, block)
	}
	if targetBPP <= 0 || targetBPP > rMax {
		return nil, fmt.Errorf("%w: target bpp %v must be in (0, 24]", ErrConfigInvalid, targetBPP)
	}
	allowed, ok := validPairings[enc]
	if !ok {
		return nil, fmt.Errorf("%w: unknown encoding type %s", ErrConfigInvalid, enc)
	}
	pairingOK := false
	for _, d := range allowed {
		if d == dec {
			pairingOK = true
			break
		}
	}
	if !pairingOK {
		return nil, fmt.Errorf("%w: unsupported pairing (%s, %s)", ErrConfigInvalid, enc, dec)
	}

	c := &Config{
		Block:        block,
		TargetBPP:    targetBPP,
		EncodingType: enc,
		DecodingType: dec,
		log:          log,
	}
	c.chunks = generateChunks(block)
	c.modes = generateModes(c.chunks, block)

	c.logf(logging.Debug, "built config", "block", block.String(), "modes", len(c.modes), "target_bpp", targetBPP)

	return c, nil
}

func (c *Config) logf(level int8, msg string, params ...interface{}) {
	if c.log == nil {
		return
	}
	c.log.Log(level, msg, params...)
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// generateChunks enumerates the admissible (y_chunk, uv_chunk) pairs for
// block, in the order that fixes mode indices: r outer, then c, then
// (only when block.Frames > 1) f.
func generateChunks(block Shape3D) []chunkPair {
	logRows := bits.Len(uint(block.Rows)) - 1
	logCols := bits.Len(uint(block.Cols)) - 1

	var chunks []chunkPair
	for r := 0; r < logRows; r++ {
		for c := 0; c < logCols; c++ {
			if block.Frames == 1 {
				y := NewShape3D(1<<r, 1<<c, 1)
				chunks = append(chunks, chunkPair{y, y.Mul(NewShape3D(2, 2, 1))})
				continue
			}
			logFrames := bits.Len(uint(block.Frames)) - 1
			for f := 0; f < logFrames; f++ {
				y := NewShape3D(1<<r, 1<<c, 1<<f)
				chunks = append(chunks, chunkPair{y, y.Mul(NewShape3D(2, 2, 2))})
			}
		}
	}
	return chunks
}

// generateModes builds the Mode list for block from chunks, skipping any
// chunk pair for which block isn't admissible (block.IsDivisible(uvChunk)
// fails). Mode.Idx is the chunk's position in chunks, not its position in
// the returned (filtered) slice, so gaps can appear for edge-clipped
// blocks whose clipped dimensions aren't divisible by every uv_chunk.
func generateModes(chunks []chunkPair, block Shape3D) []Mode {
	modes := make([]Mode, 0, len(chunks))
	for idx, ch := range chunks {
		if !block.IsDivisible(ch.uvChunk) {
			continue
		}
		modes = append(modes, newMode(idx, ch.yChunk, ch.uvChunk, block))
	}
	return modes
}

// Modes returns the Config's precomputed mode table for its base block.
func (c *Config) Modes() []Mode { return c.modes }

// GetMode returns the mode with index idx, specialized for block. If block
// equals the Config's base block, the precomputed Mode is returned
// directly; otherwise a new Mode is constructed from the same (y_chunk,
// uv_chunk) pair, specialized to the smaller, edge-clipped block.
func (c *Config) GetMode(idx int, block Shape3D) (Mode, error) {
	if block.Eq(c.Block) {
		if idx < 0 || idx >= len(c.modes) {
			return Mode{}, fmt.Errorf("%w: index %d (have %d modes)", ErrInvalidModeIndex, idx, len(c.modes))
		}
		return c.modes[idx], nil
	}

	if idx < 0 || idx >= len(c.chunks) {
		return Mode{}, fmt.Errorf("%w: index %d (have %d chunks)", ErrInvalidModeIndex, idx, len(c.chunks))
	}
	ch := c.chunks[idx]
	if !block.IsDivisible(ch.uvChunk) {
		return Mode{}, fmt.Errorf("%w: mode %d (uv_chunk %s) not admissible for edge block %s", ErrInvalidModeIndex, idx, ch.uvChunk, block)
	}
	return newMode(idx, ch.yChunk, ch.uvChunk, block), nil
}

// GetModes returns the admissible mode table for block: the precomputed
// table when block is the base block, otherwise a freshly generated one
// for the clipped edge block.
func (c *Config) GetModes(block Shape3D) []Mode {
	if block.Eq(c.Block) {
		return c.modes
	}
	return generateModes(c.chunks, block)
}
