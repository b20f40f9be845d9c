// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mkrogh/garderobe/internal/models"
)

// SaveOutfit persists an outfit snapshot and folds its style score into the
// global aggregate within the same transaction, so a crash between the two
// writes cannot leave the aggregate behind the snapshots.
func (s *Store) SaveOutfit(ctx context.Context, record *models.OutfitRecord, now time.Time) error {
	if len(record.Items) == 0 {
		return errors.New("outfit requires at least one item")
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = now

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal outfit: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(outfitKeyPrefix+record.ID), data); err != nil {
			return fmt.Errorf("set outfit: %w", err)
		}

		stats, err := readGlobalStats(txn)
		if err != nil {
			return err
		}
		stats.Fold(record.StyleScore, now)

		statsData, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		if err := txn.Set([]byte(statsGlobalKey), statsData); err != nil {
			return fmt.Errorf("set stats: %w", err)
		}
		return nil
	})
}

// GetOutfit retrieves a saved outfit by id.
func (s *Store) GetOutfit(ctx context.Context, id string) (*models.OutfitRecord, error) {
	var record models.OutfitRecord

	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(outfitKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrOutfitNotFound
		}
		if err != nil {
			return fmt.Errorf("get outfit: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// ListOutfits returns saved outfits, newest first. A limit of zero returns
// everything.
func (s *Store) ListOutfits(ctx context.Context, limit int) ([]models.OutfitRecord, error) {
	var records []models.OutfitRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(outfitKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record models.OutfitRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetGlobalStyleStats returns the running style-score aggregate. A store
// with no saved outfits returns the zero aggregate.
func (s *Store) GetGlobalStyleStats(ctx context.Context) (*models.GlobalStyleStats, error) {
	var stats *models.GlobalStyleStats

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = readGlobalStats(txn)
		return err
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func readGlobalStats(txn *badger.Txn) (*models.GlobalStyleStats, error) {
	entry, err := txn.Get([]byte(statsGlobalKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return &models.GlobalStyleStats{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	var stats models.GlobalStyleStats
	if err := entry.Value(func(val []byte) error {
		return json.Unmarshal(val, &stats)
	}); err != nil {
		return nil, err
	}
	return &stats, nil
}
