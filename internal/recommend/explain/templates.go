// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

package explain

import (
	"fmt"
	"strings"

	"github.com/fairlens/fairlens/internal/models"
)

// renderTemplate produces the deterministic explanation for a tier. Each
// template only mentions signals whose weighted contribution is
// non-negligible for this candidate.
func renderTemplate(tier models.StyleTier, cand *models.ScoredCandidate, likedGenres []string) string {
	switch tier {
	case models.TierQuickInsight:
		return quickInsight(cand, likedGenres)
	case models.TierConciseReasoning:
		return conciseReasoning(cand, likedGenres)
	default:
		return fairnessAware(cand, likedGenres)
	}
}

// quickInsight is a single short sentence naming only the dominant signal.
func quickInsight(cand *models.ScoredCandidate, likedGenres []string) string {
	b := cand.Breakdown

	if b.Relevance >= negligibleContribution && b.Relevance >= b.Fairness {
		if genre := sharedGenre(cand.Genres, likedGenres); genre != "" {
			return fmt.Sprintf("%s closely matches your taste for %s movies.", cand.Title, genre)
		}
		return fmt.Sprintf("%s closely matches movies you have enjoyed.", cand.Title)
	}
	if b.Fairness >= negligibleContribution {
		return fmt.Sprintf("%s adds variety your list would otherwise miss.", cand.Title)
	}
	// Popularity prior (cold start) or fully flat signals.
	return fmt.Sprintf("%s is widely appreciated by other viewers.", cand.Title)
}

// conciseReasoning is 2-3 sentences covering the top contributing signals.
func conciseReasoning(cand *models.ScoredCandidate, likedGenres []string) string {
	b := cand.Breakdown
	var sentences []string

	if b.Relevance >= negligibleContribution {
		if genre := sharedGenre(cand.Genres, likedGenres); genre != "" {
			sentences = append(sentences,
				fmt.Sprintf("%s aligns with your interest in %s.", cand.Title, genre))
		} else {
			sentences = append(sentences,
				fmt.Sprintf("%s is similar to movies you rated highly.", cand.Title))
		}
	} else {
		sentences = append(sentences,
			fmt.Sprintf("%s is a popular choice among viewers with broad tastes.", cand.Title))
	}

	if b.Fairness >= negligibleContribution {
		sentences = append(sentences,
			fmt.Sprintf("It also brings %s into the mix, a genre underrepresented in your suggestions.",
				genreList(cand.Genres)))
	}
	if b.Popularity >= negligibleContribution {
		sentences = append(sentences,
			"Its mainstream popularity was slightly discounted to keep your list from skewing toward blockbusters.")
	}

	return strings.Join(sentences, " ")
}

// fairnessAware is the transparent tier: it names the fairness and
// popularity adjustments applied and why, alongside the relevance
// rationale.
func fairnessAware(cand *models.ScoredCandidate, likedGenres []string) string {
	b := cand.Breakdown
	var sentences []string

	if b.Relevance >= negligibleContribution {
		if genre := sharedGenre(cand.Genres, likedGenres); genre != "" {
			sentences = append(sentences,
				fmt.Sprintf("%s was recommended primarily because it matches your taste for %s movies.",
					cand.Title, genre))
		} else {
			sentences = append(sentences,
				fmt.Sprintf("%s was recommended primarily for its similarity to movies you rated highly.",
					cand.Title))
		}
	} else {
		sentences = append(sentences,
			fmt.Sprintf("%s was recommended from overall viewer ratings, since your history gave little personal signal here.",
				cand.Title))
	}

	if b.Fairness >= negligibleContribution {
		sentences = append(sentences,
			fmt.Sprintf("A fairness boost was applied because %s is underrepresented among your current suggestions, keeping your list from being dominated by a few genres.",
				genreList(cand.Genres)))
	} else {
		sentences = append(sentences,
			"No fairness adjustment was needed for this pick; its genres are already well represented.")
	}

	if b.Popularity >= negligibleContribution {
		sentences = append(sentences,
			"Its blockbuster popularity was deliberately downweighted so lesser-seen movies get a fair chance.")
	}

	return strings.Join(sentences, " ")
}

// sharedGenre returns the first of the candidate's genres the user has
// shown a liking for, or the candidate's first genre when there is no
// overlap, or "" when the candidate has no genres.
func sharedGenre(candGenres, likedGenres []string) string {
	for _, genre := range candGenres {
		for _, liked := range likedGenres {
			if genre == liked {
				return genre
			}
		}
	}
	if len(candGenres) > 0 {
		return candGenres[0]
	}
	return ""
}

// genreList renders up to two genres as prose ("Drama", "Drama and Horror").
func genreList(genres []string) string {
	switch len(genres) {
	case 0:
		return "this genre"
	case 1:
		return genres[0]
	default:
		return genres[0] + " and " + genres[1]
	}
}
