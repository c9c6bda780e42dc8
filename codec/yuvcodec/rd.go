/*
NAME
  rd.go

DESCRIPTION
  rd.go implements the rate-distortion optimization kernel: the lower-left
  convex hull of a block's (rate, distortion) candidate set, and the
  Lagrangian bisection search over all blocks' hulls that drives the mean
  rate toward a target bits-per-pixel.

  Grounded on original_source/codec/rd.py. That implementation calls
  scipy.spatial.ConvexHull with three sentinel points appended to force the
  hull to span the full admissible range; here the full 2D convex hull is
  computed directly with a monotone-chain construction (no convex-hull
  library exists anywhere in the retrieved example corpus, so this one
  piece is built on the standard library — see DESIGN.md), after which
  sentinel vertices (ModeIdx == -1) are filtered out, except that one
  lying on a real candidate is replaced by that candidate.

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
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Candidate is one (mode, rate, distortion) RD operating point for a
// block. ModeIdx is -1 for the synthetic sentinel points convexHull uses
// internally; it never appears in a Hull's output.
type Candidate struct {
	ModeIdx    int
	Rate       float64
	Distortion float64
}

// sentinelIdx marks a synthetic hull-bounding point, never a real mode.
const sentinelIdx = -1

// Hull computes the block's RD curve: the lower-left convex hull of
// candidates, bounded by three sentinel points so the hull spans the full
// admissible (rate, distortion) range, with sentinel vertices discarded
// from the result. A sentinel vertex lying on a real candidate is reported
// as that candidate.
func Hull(candidates []Candidate) []Candidate {
	rMin, dMin := candidates[0].Rate, candidates[0].Distortion
	for _, c := range candidates[1:] {
		if c.Rate < rMin {
			rMin = c.Rate
		}
		if c.Distortion < dMin {
			dMin = c.Distortion
		}
	}

	points := make([]Candidate, len(candidates), len(candidates)+3)
	copy(points, candidates)
	points = append(points,
		Candidate{sentinelIdx, rMin, dMax},
		Candidate{sentinelIdx, rMax, dMax},
		Candidate{sentinelIdx, rMax, dMin},
	)

	hull := convexHull(points)

	out := hull[:0]
	for _, p := range hull {
		if p.ModeIdx < 0 {
			// A sentinel vertex that coincides with a real candidate
			// stands for that candidate.
			for _, c := range candidates {
				if c.Rate == p.Rate && c.Distortion == p.Distortion {
					p = c
					break
				}
			}
		}
		if p.ModeIdx >= 0 {
			out = append(out, p)
		}
	}
	return out
}

// convexHull returns the vertices of the 2D convex hull of points, in the
// (Rate, Distortion) plane, via Andrew's monotone chain construction.
func convexHull(points []Candidate) []Candidate {
	pts := make([]Candidate, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Rate != pts[j].Rate {
			return pts[i].Rate < pts[j].Rate
		}
		return pts[i].Distortion < pts[j].Distortion
	})

	cross := func(o, a, b Candidate) float64 {
		return (a.Rate-o.Rate)*(b.Distortion-o.Distortion) - (a.Distortion-o.Distortion)*(b.Rate-o.Rate)
	}

	n := len(pts)
	hull := make([]Candidate, 0, 2*n)

	// Lower chain.
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper chain.
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1] // last point duplicates the first.
}

// Bisection binary-searches the Lagrange multiplier λ over [0.01, 1000.0]
// (tolerance 0.01) that drives the mean rate across hulls' chosen points
// toward targetBPP, assuming the mean rate is monotonically non-increasing
// in λ. It returns the chosen mode index for each hull, in hull order.
func Bisection(hulls [][]Candidate, targetBPP float64) []int {
	const (
		lambdaLo0 = 0.01
		lambdaHi0 = 1000.0
		eps       = 0.01
	)

	lo, hi := lambdaLo0, lambdaHi0
	var best []Candidate

	for hi-lo > eps {
		lambda := (lo + hi) / 2
		chosen, meanRate := chooseAtLambda(hulls, lambda)

		if meanRate > targetBPP {
			lo = lambda
		} else {
			best = chosen
			hi = lambda
		}
	}

	// No probed lambda drove the mean rate down to targetBPP (targetBPP
	// below the coarsest mode's rate floor): fall back to the lowest-rate
	// choice, lambda_hi, rather than returning an empty slice.
	if best == nil {
		best, _ = chooseAtLambda(hulls, hi)
	}

	ids := make([]int, len(best))
	for i, c := range best {
		ids[i] = c.ModeIdx
	}
	return ids
}

// chooseAtLambda picks, for every hull, the vertex minimizing
// J = D + λ·R (ties broken by lowest rate, then lowest mode index), and
// returns those points along with their mean rate.
func chooseAtLambda(hulls [][]Candidate, lambda float64) ([]Candidate, float64) {
	chosen := make([]Candidate, len(hulls))
	rates := make([]float64, len(hulls))

	for i, hull := range hulls {
		best := hull[0]
		bestJ := best.Distortion + lambda*best.Rate
		for _, c := range hull[1:] {
			j := c.Distortion + lambda*c.Rate
			switch {
			case j < bestJ:
				best, bestJ = c, j
			case j == bestJ && (c.Rate < best.Rate || (c.Rate == best.Rate && c.ModeIdx < best.ModeIdx)):
				best, bestJ = c, j
			}
		}
		chosen[i] = best
		rates[i] = best.Rate
	}

	return chosen, stat.Mean(rates, nil)
}
