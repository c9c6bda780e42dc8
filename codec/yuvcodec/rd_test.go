/*
NAME
  rd_test.go

DESCRIPTION
  rd_test.go tests the RD hull and Lagrangian bisection, including
  spec.md §8's invariants 5 and 6.

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

import "testing"

// TestHullInvariants is spec.md §8 invariant 5.
func TestHullInvariants(t *testing.T) {
	candidates := []Candidate{
		{0, 24, 0},
		{1, 6, 50},
		{2, 1.5, 400},
		{3, 1.5, 800}, // dominated by candidate 2: same rate, higher distortion.
	}
	hull := Hull(candidates)

	for _, p := range hull {
		if p.ModeIdx < 0 {
			t.Errorf("hull vertex has sentinel ModeIdx %d", p.ModeIdx)
		}
	}
	for i, p := range hull {
		for j, q := range hull {
			if i == j {
				continue
			}
			if q.Rate >= p.Rate && q.Distortion >= p.Distortion && (q.Rate > p.Rate || q.Distortion > p.Distortion) {
				t.Errorf("hull vertex %+v is dominated by %+v", q, p)
			}
		}
	}
}

// TestBisectionMeanRateBelowTarget is spec.md §8 invariant 6.
func TestBisectionMeanRateBelowTarget(t *testing.T) {
	hulls := [][]Candidate{
		Hull([]Candidate{{0, 24, 0}, {1, 6, 50}, {2, 1.5, 400}}),
		Hull([]Candidate{{0, 24, 0}, {1, 6, 60}, {2, 1.5, 420}}),
	}
	const targetBPP = 4.0
	ids := Bisection(hulls, targetBPP)
	if len(ids) != len(hulls) {
		t.Fatalf("Bisection returned %d choices, want %d", len(ids), len(hulls))
	}

	var sum float64
	for i, id := range ids {
		found := false
		for _, c := range hulls[i] {
			if c.ModeIdx == id {
				sum += c.Rate
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("chosen mode %d for hull %d not present in that hull", id, i)
		}
	}
	if mean := sum / float64(len(ids)); mean > targetBPP {
		t.Errorf("mean rate %v exceeds target %v", mean, targetBPP)
	}
}

// TestBisectionHighTargetBPPPicksFinestMode is spec.md §8 invariant 7
// applied to the RD search alone (the encoder round-trip version lives in
// codec_test.go).
func TestBisectionHighTargetBPPPicksFinestMode(t *testing.T) {
	candidates := []Candidate{{0, 24, 0}, {1, 6, 50}}
	hull := Hull(candidates)
	ids := Bisection([][]Candidate{hull}, 24)
	if len(ids) != 1 {
		t.Fatalf("Bisection returned %d choices, want 1", len(ids))
	}
	var chosen Candidate
	for _, c := range hull {
		if c.ModeIdx == ids[0] {
			chosen = c
		}
	}
	if chosen.Distortion != 0 {
		t.Errorf("Bisection(target=24) chose mode %d with distortion %v, want the zero-distortion mode", ids[0], chosen.Distortion)
	}
}
