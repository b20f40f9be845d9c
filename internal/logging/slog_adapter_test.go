// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newCapturedSlog(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	return slog.New(handler), &buf
}

func TestSlogHandlerLevels(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.Debug("debug msg")
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error("error msg")

	output := buf.String()
	for _, want := range []string{
		`"level":"debug"`,
		`"level":"info"`,
		`"level":"warn"`,
		`"level":"error"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandlerAttrs(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.Info("typed attrs",
		slog.String("s", "value"),
		slog.Int("i", 42),
		slog.Float64("f", 1.5),
		slog.Bool("b", true),
		slog.Duration("d", time.Second),
	)

	output := buf.String()
	for _, want := range []string{
		`"s":"value"`,
		`"i":42`,
		`"f":1.5`,
		`"b":true`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.With(slog.String("service", "http-server")).
		WithGroup("suture").
		Info("restarting", slog.Int("failures", 3))

	output := buf.String()
	if !strings.Contains(output, `"service":"http-server"`) {
		t.Errorf("bound attr missing: %s", output)
	}
	if !strings.Contains(output, `"suture.failures":3`) {
		t.Errorf("grouped attr missing: %s", output)
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	warnLogger := zerolog.New(&buf).Level(zerolog.WarnLevel)
	handler := NewSlogHandlerWithLogger(warnLogger)

	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug enabled on warn-level logger")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error not enabled on warn-level logger")
	}
}
