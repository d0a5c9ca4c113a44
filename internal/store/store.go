// FairLens - Fairness-Aware Movie Recommendations
// Copyright 2026 FairLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairlens/fairlens

// Package store provides the BadgerDB-backed model artifact store.
//
// The store persists everything the serving-time pipeline reads: per-movie
// latent vectors produced by offline training, per-movie popularity counts,
// catalog metadata, and user ratings submitted through the API. Training
// itself happens elsewhere; artifacts arrive as JSON files imported at
// startup (see ImportArtifact).
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/fairlens/fairlens/internal/config"
	"github.com/fairlens/fairlens/internal/logging"
	"github.com/fairlens/fairlens/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	movieKeyPrefix      = "movie:"
	vectorKeyPrefix     = "vector:"
	popularityKeyPrefix = "popularity:"
	ratingKeyPrefix     = "rating:"
)

// ErrNotFound is returned when a requested key does not exist in the store.
var ErrNotFound = errors.New("store: not found")

// Store wraps a BadgerDB instance holding model artifacts and ratings.
// All methods are safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at the configured path.
func Open(cfg config.StoreConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil) // Badger's own logger is too chatty; we log at the store level
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", cfg.Path, err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing BadgerDB instance. Used by tests.
func NewWithDB(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutMovie stores catalog metadata for one movie.
func (s *Store) PutMovie(ctx context.Context, movie *models.Movie) error {
	if movie.ID == "" {
		return fmt.Errorf("movie missing id")
	}
	data, err := json.Marshal(movie)
	if err != nil {
		return fmt.Errorf("marshal movie: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(movieKeyPrefix+movie.ID), data)
	})
}

// GetMovie retrieves catalog metadata for one movie.
// Returns ErrNotFound if the movie is not in the catalog.
func (s *Store) GetMovie(ctx context.Context, movieID string) (*models.Movie, error) {
	var movie models.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(movieKeyPrefix + movieID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get movie: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &movie)
		})
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// PutVector stores the latent vector for one movie.
func (s *Store) PutVector(ctx context.Context, movieID string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("marshal vector: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(vectorKeyPrefix+movieID), data)
	})
}

// GetVector retrieves the latent vector for one movie.
// Returns ErrNotFound if no vector exists, which callers treat as a
// recoverable partial-data condition rather than a failure.
func (s *Store) GetVector(ctx context.Context, movieID string) ([]float64, error) {
	var vector []float64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(vectorKeyPrefix + movieID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get vector: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &vector)
		})
	})
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// SetPopularity stores the global rating count for one movie.
func (s *Store) SetPopularity(ctx context.Context, movieID string, count int64) error {
	data, err := json.Marshal(count)
	if err != nil {
		return fmt.Errorf("marshal popularity: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(popularityKeyPrefix+movieID), data)
	})
}

// GetPopularity retrieves the global rating count for one movie.
// Missing entries count as zero popularity, not an error.
func (s *Store) GetPopularity(ctx context.Context, movieID string) (int64, error) {
	var count int64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(popularityKeyPrefix + movieID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get popularity: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &count)
		})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertRating stores a user's rating for a movie with last-write-wins
// semantics: a later rating for the same (user, movie) pair overwrites the
// earlier one.
func (s *Store) UpsertRating(ctx context.Context, rating *models.Rating) error {
	if rating.UserID == "" {
		return fmt.Errorf("rating missing user_id")
	}
	if err := rating.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(rating)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(ratingKeyPrefix + rating.UserID + ":" + rating.MovieID)
		return txn.Set(key, data)
	})
}

// ListRatings returns all stored ratings for a user, in unspecified order.
func (s *Store) ListRatings(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ratingKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var rating models.Rating
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rating)
			})
			if err != nil {
				log := logging.WithComponent("store")
				log.Warn().
					Err(err).
					Str("key", string(item.Key())).
					Msg("skipping undecodable rating")
				continue
			}
			ratings = append(ratings, rating)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list ratings for %s: %w", userID, err)
	}

	return ratings, nil
}

// SnapshotData holds everything the catalog needs to build an immutable
// in-memory snapshot: the full movie list, latent vectors, and popularity
// counts.
type SnapshotData struct {
	Movies     []models.Movie
	Vectors    map[string][]float64
	Popularity map[string]int64
}

// LoadSnapshotData reads the full catalog state in a single read transaction
// so the snapshot is internally consistent.
func (s *Store) LoadSnapshotData(ctx context.Context) (*SnapshotData, error) {
	data := &SnapshotData{
		Vectors:    make(map[string][]float64),
		Popularity: make(map[string]int64),
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			switch {
			case strings.HasPrefix(key, movieKeyPrefix):
				var movie models.Movie
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &movie)
				}); err != nil {
					log := logging.WithComponent("store")
					log.Warn().
						Err(err).Str("key", key).
						Msg("skipping undecodable movie")
					continue
				}
				data.Movies = append(data.Movies, movie)

			case strings.HasPrefix(key, vectorKeyPrefix):
				var vector []float64
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &vector)
				}); err != nil {
					continue
				}
				data.Vectors[strings.TrimPrefix(key, vectorKeyPrefix)] = vector

			case strings.HasPrefix(key, popularityKeyPrefix):
				var count int64
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &count)
				}); err != nil {
					continue
				}
				data.Popularity[strings.TrimPrefix(key, popularityKeyPrefix)] = count
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load snapshot data: %w", err)
	}

	return data, nil
}

// MovieCount returns the number of movies in the catalog.
func (s *Store) MovieCount(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(movieKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// IsEmpty reports whether the catalog holds no movies. Used at startup to
// decide whether to import the configured artifact file.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	count, err := s.MovieCount(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
