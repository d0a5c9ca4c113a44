// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package recommend

import (
	"math"
	"sort"
)

// BiasCombiner blends raw relevance with the popularity penalty and
// fairness boost into the final score, then orders candidates into a
// deterministic strict total order.
type BiasCombiner struct {
	cfg Config
}

// NewBiasCombiner creates a bias combiner with the given configuration.
func NewBiasCombiner(cfg Config) *BiasCombiner {
	return &BiasCombiner{cfg: cfg}
}

// Combine computes final scores and sorts cands in place, best first.
//
// Signals:
//   - relevance: the scoring stage's baseScore
//   - popularity: the candidate's normalized global rating count; penalized
//     so blockbusters are not over-recommended
//   - fairness: how underrepresented the candidate's genres are in the
//     candidate pool relative to the catalog as a whole; boosted so one or
//     two genres cannot dominate the top-k
//
// Each signal is min-max normalized across the candidate set before
// blending, so the theta-controlled weights operate on comparable scales:
//
//	final = w_rel(theta)*rel - w_pop(theta)*pop + w_fair(theta)*fair
func (b *BiasCombiner) Combine(view CatalogView, cands []*candidate, theta float64) {
	if len(cands) == 0 {
		return
	}

	poolShare := poolGenreShares(cands)
	for _, c := range cands {
		c.popRaw = view.NormalizedPopularity(c.movie.ID)
		c.fairRaw = genreUnderrepresentation(view, poolShare, c.movie.Genres)
	}

	minMaxNormalize(cands,
		func(c *candidate) float64 { return c.baseScore },
		func(c *candidate, v float64) { c.relNorm = v })
	minMaxNormalize(cands,
		func(c *candidate) float64 { return c.popRaw },
		func(c *candidate, v float64) { c.popNorm = v })
	minMaxNormalize(cands,
		func(c *candidate) float64 { return c.fairRaw },
		func(c *candidate, v float64) { c.fairNorm = v })

	wRel, wPop, wFair := b.cfg.Weights(theta)
	for _, c := range cands {
		c.breakdown.Relevance = wRel * c.relNorm
		c.breakdown.Popularity = wPop * c.popNorm
		c.breakdown.Fairness = wFair * c.fairNorm
		c.finalScore = c.breakdown.Relevance - c.breakdown.Popularity + c.breakdown.Fairness
	}

	b.sortCandidates(cands)
}

// sortCandidates orders candidates descending by final score. Scores within
// epsilon of each other count as tied; ties break by higher raw relevance,
// then by lower movie ID, guaranteeing a reproducible total order for
// identical inputs.
func (b *BiasCombiner) sortCandidates(cands []*candidate) {
	eps := b.cfg.Epsilon
	sort.SliceStable(cands, func(i, j int) bool {
		a, c := cands[i], cands[j]
		if math.Abs(a.finalScore-c.finalScore) >= eps {
			return a.finalScore > c.finalScore
		}
		if a.baseScore != c.baseScore {
			return a.baseScore > c.baseScore
		}
		return a.movie.ID < c.movie.ID
	})
}

// poolGenreShares returns the fraction of pool candidates tagged with each
// genre.
func poolGenreShares(cands []*candidate) map[string]float64 {
	counts := make(map[string]int)
	for _, c := range cands {
		for _, genre := range c.movie.Genres {
			counts[genre]++
		}
	}
	shares := make(map[string]float64, len(counts))
	n := float64(len(cands))
	for genre, count := range counts {
		shares[genre] = float64(count) / n
	}
	return shares
}

// genreUnderrepresentation measures how much less present the movie's
// genres are in the candidate pool than in the catalog, averaged over the
// movie's genres and clamped at zero per genre. Movies with no genre tags
// receive no fairness signal.
func genreUnderrepresentation(view CatalogView, poolShare map[string]float64, genres []string) float64 {
	if len(genres) == 0 {
		return 0
	}
	var sum float64
	for _, genre := range genres {
		if gap := view.GenreShare(genre) - poolShare[genre]; gap > 0 {
			sum += gap
		}
	}
	return sum / float64(len(genres))
}

// minMaxNormalize rescales one signal to [0,1] across the candidate set.
// A constant signal normalizes to 0 for every candidate, which removes it
// from the blend rather than inventing differences.
func minMaxNormalize(cands []*candidate, get func(*candidate) float64, set func(*candidate, float64)) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range cands {
		v := get(c)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		for _, c := range cands {
			set(c, 0)
		}
		return
	}
	for _, c := range cands {
		set(c, (get(c)-lo)/span)
	}
}
