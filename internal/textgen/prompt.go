// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package textgen

import (
	"fmt"
	"strings"

	"github.com/fairlens/fairlens/internal/models"
	"github.com/fairlens/fairlens/internal/recommend/explain"
)

// systemMessage sets the style contract for the requested tier. The length
// and fairness-disclosure requirements match the template fallback so users
// see a consistent voice regardless of which path produced the text.
func systemMessage(p explain.Prompt) string {
	var b strings.Builder
	b.WriteString("You explain movie recommendations to end users. ")
	b.WriteString("Write in second person, present tense. Never mention scores, models, or internal systems.\n")

	switch p.Tier {
	case models.TierQuickInsight:
		b.WriteString("Respond with exactly one short sentence.")
	case models.TierConciseReasoning:
		b.WriteString("Respond with two or three sentences covering why the movie fits and any catalog-diversity consideration.")
	default:
		b.WriteString("Respond with two to four sentences and always state plainly whether a fairness adjustment favored this movie, naming the affected genres.")
	}

	return b.String()
}

// userMessage serializes the scoring evidence for one candidate.
func userMessage(p explain.Prompt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Movie: %s\n", p.Title)
	fmt.Fprintf(&b, "Genres: %s\n", strings.Join(p.Genres, ", "))
	if len(p.LikedGenres) > 0 {
		fmt.Fprintf(&b, "Genres the user rated highly: %s\n", strings.Join(p.LikedGenres, ", "))
	}
	fmt.Fprintf(&b, "Relevance contribution: %.3f\n", p.Breakdown.Relevance)
	fmt.Fprintf(&b, "Popularity discount: %.3f\n", p.Breakdown.Popularity)
	fmt.Fprintf(&b, "Fairness boost: %.3f\n", p.Breakdown.Fairness)
	fmt.Fprintf(&b, "Fairness preference setting: %.2f\n", p.Theta)
	b.WriteString("Explain why this movie was recommended.")
	return b.String()
}
