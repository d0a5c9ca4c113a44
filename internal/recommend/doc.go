// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package recommend implements the serving-time recommendation ranking
// engine: scoring, bias combination, and pipeline orchestration.
//
// The pipeline turns a user's sparse rating vector and a personalization
// parameter theta (in [0,1]) into a ranked, explained top-k list:
//
//	ratings -> ScoringEngine -> BiasCombiner -> ExplanationComposer -> output
//
// ScoringEngine derives a raw relevance score for every movie the user has
// not rated, from the cosine similarity between the candidate's latent
// vector and a user profile synthesized from liked (rating >= 4) and
// disliked (rating <= 2) movies. With no usable ratings it falls back to a
// global popularity prior.
//
// BiasCombiner blends three normalized signals into the final score:
// relevance, a popularity penalty (damping blockbuster over-recommendation),
// and a fairness boost for movies in genres underrepresented in the
// candidate pool. Theta shifts weight from pure relevance (theta=0) toward
// the fairness-aware blend (theta=1).
//
// Every invocation is side-effect-free and deterministic for identical
// inputs; concurrent requests share only the immutable catalog snapshot.
// Explanation composition lives in the explain subpackage.
package recommend
