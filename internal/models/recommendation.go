// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package models

// StyleTier selects the verbosity and fairness framing of a recommendation
// explanation. Tiers are derived from the user's personalization parameter
// theta: low theta users get a single-sentence insight, high theta users get
// a transparent account of the fairness adjustments applied.
type StyleTier string

// Explanation style tiers, from terse to transparent.
const (
	TierQuickInsight     StyleTier = "quick_insight"     // theta <= 0.3
	TierConciseReasoning StyleTier = "concise_reasoning" // 0.3 < theta <= 0.7
	TierFairnessAware    StyleTier = "fairness_aware"    // theta > 0.7
)

// Tier-selection thresholds on theta.
const (
	QuickInsightMaxTheta     = 0.3
	ConciseReasoningMaxTheta = 0.7
)

// TierForTheta maps a theta value to its explanation style tier.
// The caller is expected to clamp theta to [0,1] first.
func TierForTheta(theta float64) StyleTier {
	switch {
	case theta <= QuickInsightMaxTheta:
		return TierQuickInsight
	case theta <= ConciseReasoningMaxTheta:
		return TierConciseReasoning
	default:
		return TierFairnessAware
	}
}

// ScoreBreakdown records the weighted contribution of each ranking signal to
// a candidate's final score. The popularity term is stored as the magnitude
// of the penalty that was subtracted, so all three fields are >= 0.
//
// The breakdown feeds the explanation composer, which only mentions signals
// with non-negligible contributions.
type ScoreBreakdown struct {
	Relevance  float64 `json:"relevance"`
	Popularity float64 `json:"popularity"`
	Fairness   float64 `json:"fairness"`
}

// ScoredCandidate is an ephemeral, per-request ranking entry for a movie the
// user has not yet rated. It is computed fresh on every ranking call and
// never persisted.
type ScoredCandidate struct {
	MovieID string   `json:"movie_id"`
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`

	// BaseScore is the raw similarity-derived relevance before any bias
	// adjustment. Unbounded; only relative ordering matters.
	BaseScore float64 `json:"base_score"`

	// FinalScore is the bias-blended score that determines rank order.
	FinalScore float64 `json:"final_score"`

	Breakdown ScoreBreakdown `json:"breakdown"`
}

// Explanation is the natural-language rationale for one recommendation.
// Generated reports whether the text came from the generative backend;
// false means the deterministic template fallback produced it.
type Explanation struct {
	MovieID   string    `json:"movie_id"`
	Text      string    `json:"text"`
	Tier      StyleTier `json:"style_tier"`
	Generated bool      `json:"generated"`
}

// Recommendation is one entry of the pipeline's final output: a ranked,
// explained movie.
type Recommendation struct {
	MovieID     string   `json:"movie_id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	FinalScore  float64  `json:"final_score"`
	Explanation string   `json:"explanation"`
}
