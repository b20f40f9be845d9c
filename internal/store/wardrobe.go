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

	"github.com/mkrogh/garderobe/internal/models"
)

// PutItem stores or replaces a wardrobe item.
func (s *Store) PutItem(ctx context.Context, item *models.WardrobeItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(itemKeyPrefix+item.ID), data); err != nil {
			return fmt.Errorf("set item: %w", err)
		}
		return nil
	})
}

// GetItem retrieves a wardrobe item by id.
func (s *Store) GetItem(ctx context.Context, id string) (*models.WardrobeItem, error) {
	var item models.WardrobeItem

	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(itemKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// GetItems retrieves several wardrobe items in one read transaction.
// Any missing id fails the whole lookup with ErrItemNotFound.
func (s *Store) GetItems(ctx context.Context, ids []string) ([]models.WardrobeItem, error) {
	items := make([]models.WardrobeItem, 0, len(ids))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			entry, err := txn.Get([]byte(itemKeyPrefix + id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrItemNotFound, id)
			}
			if err != nil {
				return fmt.Errorf("get item %s: %w", id, err)
			}

			var item models.WardrobeItem
			if err := entry.Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ListItems returns the full catalog sorted by creation time, newest first.
func (s *Store) ListItems(ctx context.Context) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var item models.WardrobeItem
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListItemsByCategory returns all items in the given clothing slot,
// newest first.
func (s *Store) ListItemsByCategory(ctx context.Context, cat models.Category) ([]models.WardrobeItem, error) {
	all, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	filtered := all[:0]
	for i := range all {
		if all[i].Category() == cat {
			filtered = append(filtered, all[i])
		}
	}
	return filtered, nil
}

// CountItems returns the number of items per category.
func (s *Store) CountItems(ctx context.Context) (map[models.Category]int, error) {
	all, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Category]int, len(models.AllCategories))
	for i := range all {
		counts[all[i].Category()]++
	}
	return counts, nil
}

// DeleteItem removes a wardrobe item. Deleting an absent item is a no-op.
// Feedback and saved outfits referencing the id are intentionally kept.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(itemKeyPrefix + id))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
}

// RecordWear advances the wear statistics for each listed item inside a
// single transaction: usage count increments, the average wear temperature
// folds in the reading as an incremental mean, and last-worn is stamped.
// When feelsLike is nil the count and timestamp still advance but the
// average is left untouched. Ids without a stored item are logged and
// skipped rather than failing the batch.
func (s *Store) RecordWear(ctx context.Context, ids []string, feelsLike *float64, now time.Time) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			entry, err := txn.Get([]byte(itemKeyPrefix + id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				s.logger.Warn().Str("item_id", id).Msg("wear event for unknown item skipped")
				continue
			}
			if err != nil {
				return fmt.Errorf("get item %s: %w", id, err)
			}

			var item models.WardrobeItem
			if err := entry.Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return err
			}

			if feelsLike != nil {
				prev := 0.0
				if item.AvgTemp != nil {
					prev = *item.AvgTemp
				}
				// The mean folds over temperature samples only, so wears
				// recorded without a reading never dilute it.
				mean := (prev*float64(item.TempSamples) + *feelsLike) / float64(item.TempSamples+1)
				item.AvgTemp = &mean
				item.TempSamples++
			}
			item.UsageCount++
			worn := now
			item.LastWorn = &worn

			data, err := json.Marshal(&item)
			if err != nil {
				return fmt.Errorf("marshal item %s: %w", id, err)
			}
			if err := txn.Set([]byte(itemKeyPrefix+id), data); err != nil {
				return fmt.Errorf("set item %s: %w", id, err)
			}
		}
		return nil
	})
}
