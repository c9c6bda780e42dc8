/*
NAME
  distortion.go

DESCRIPTION
  distortion.go computes the mean squared error between a block's source
  and reconstructed planes, concatenated Y, U, V, exactly as
  original_source/codec/{simple_encoder,interpolation_encoder}.py do via
  np.hstack followed by skimage's mean_squared_error. Concatenating along
  the cols axis before averaging weights the three planes by their element
  counts; for this codec's internal 4:4:4 representation that is an equal
  weighting (§9, Open Question in spec.md), preserved here rather than
  "corrected".

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

import "gonum.org/v1/gonum/stat"

// MSE returns the mean squared error between source and reconstructed,
// which must have identical shapes.
func MSE(source, reconstructed Tensor3) float64 {
	return planeMSE(source, reconstructed)
}

// BlockMSE returns the mean squared error of the Y, U, V plane triples
// concatenated, matching the original encoder's merged-plane distortion
// metric.
func BlockMSE(ySrc, uSrc, vSrc, yRec, uRec, vRec Tensor3) float64 {
	sq := appendSquaredErrors(nil, ySrc, yRec)
	sq = appendSquaredErrors(sq, uSrc, uRec)
	sq = appendSquaredErrors(sq, vSrc, vRec)
	return stat.Mean(sq, nil)
}

func planeMSE(a, b Tensor3) float64 {
	return stat.Mean(appendSquaredErrors(nil, a, b), nil)
}

// appendSquaredErrors appends the per-element squared differences between
// a and b (equal shapes) to dst and returns the extended slice.
func appendSquaredErrors(dst []float64, a, b Tensor3) []float64 {
	shape := a.Shape()
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			for f := 0; f < shape.Frames; f++ {
				d := float64(a.At(r, c, f)) - float64(b.At(r, c, f))
				dst = append(dst, d*d)
			}
		}
	}
	return dst
}
