// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package store persists the wardrobe catalog, outfit feedback, saved
// outfits and global style statistics in an embedded BadgerDB database.
//
// Documents are stored as JSON values under typed key prefixes:
//
//	item:<id>        wardrobe items
//	feedback:<key>   verdicts keyed by canonical id-set key
//	outfit:<id>      immutable saved-outfit snapshots
//	stats:global     the single style-score aggregate
//
// All read-modify-write sequences (wear statistics, the global style
// aggregate) run inside a single Badger transaction so concurrent writers
// cannot interleave partial updates.
//
// The Store implements the history interface consumed by the outfit
// engine; see ApprovedSets and IsRejected.
package store
