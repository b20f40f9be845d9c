// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package models

// WeatherSnapshot is a weather reading supplied by the caller. Only
// FeelsLikeAvg participates in scoring; TempNow and RainMM are carried
// for display and for the saved outfit snapshot.
type WeatherSnapshot struct {
	// FeelsLikeAvg is the average feels-like temperature in °C over the
	// configured look-ahead window (default 10 hours). Nil when no
	// weather data is available, in which case ranking degrades to
	// color-only scoring.
	FeelsLikeAvg *float64 `json:"feels_like_avg,omitempty"`

	// TempNow is the current temperature in °C, display only.
	TempNow float64 `json:"temp_now,omitempty"`

	// RainMM is the expected rain amount in mm, display only.
	RainMM float64 `json:"rain_mm,omitempty"`
}
