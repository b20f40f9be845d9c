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

// RecordFeedback upserts the verdict for the exact item-id set. The record
// is keyed by the canonical order-independent key, so any permutation of
// the same ids hits the same record and the latest verdict wins.
func (s *Store) RecordFeedback(ctx context.Context, ids []string, verdict models.Verdict, comment string, now time.Time) (*models.FeedbackRecord, error) {
	if len(ids) == 0 {
		return nil, errors.New("feedback requires at least one item id")
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	record := &models.FeedbackRecord{
		Key:       models.OutfitKey(ids),
		ItemIDs:   sorted,
		Verdict:   verdict,
		Comment:   comment,
		UpdatedAt: now,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(feedbackKeyPrefix+record.Key), data); err != nil {
			return fmt.Errorf("set feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetFeedback retrieves the verdict for the exact id set, if any.
func (s *Store) GetFeedback(ctx context.Context, ids []string) (*models.FeedbackRecord, error) {
	var record models.FeedbackRecord

	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(feedbackKeyPrefix + models.OutfitKey(ids)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrFeedbackNotFound
		}
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
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

// ListFeedback returns every recorded verdict, most recent first.
func (s *Store) ListFeedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	records, err := s.scanFeedback()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// ApprovedSets returns the item-id sets of all currently approved outfits.
// Part of the history interface consumed by the ranking engine.
func (s *Store) ApprovedSets(ctx context.Context) ([][]string, error) {
	records, err := s.scanFeedback()
	if err != nil {
		return nil, err
	}

	var sets [][]string
	for i := range records {
		if records[i].Verdict == models.VerdictApproved {
			sets = append(sets, records[i].ItemIDs)
		}
	}
	return sets, nil
}

// IsRejected reports whether the exact id set behind the canonical key
// currently carries a rejected verdict. Part of the history interface
// consumed by the ranking engine.
func (s *Store) IsRejected(ctx context.Context, key string) (bool, error) {
	rejected := false

	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(feedbackKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
		}

		var record models.FeedbackRecord
		if err := entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}
		rejected = record.Verdict == models.VerdictRejected
		return nil
	})
	if err != nil {
		return false, err
	}

	return rejected, nil
}

func (s *Store) scanFeedback() ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedbackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record models.FeedbackRecord
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

	return records, nil
}
