// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package colormatch implements pairwise color-compatibility resolution.
//
// An item's compatibility list is ordered best-match-first: the 0-based
// position of a color in the list is its base match score (lower is
// better). When the target color is absent from the list but a fixed
// synonym of it is present, the match falls back to the synonym at a
// constant penalty on top of the synonym's position.
//
// The resolver is pure and stateless; the same inputs always produce the
// same outcome. Missing colors and empty lists resolve as "no match"
// rather than errors, so malformed item data fails closed.
package colormatch
