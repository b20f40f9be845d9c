// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeGC struct {
	calls atomic.Int64
	err   error
}

func (f *fakeGC) RunGC() error {
	f.calls.Add(1)
	return f.err
}

func TestStoreGCServiceRunsOnTicks(t *testing.T) {
	gc := &fakeGC{}
	svc := NewStoreGCService(gc, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for gc.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("gc never ticked twice")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

func TestStoreGCServiceSurvivesFailedPass(t *testing.T) {
	gc := &fakeGC{err: errors.New("no rewrite possible")}
	svc := NewStoreGCService(gc, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for gc.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("loop stopped after gc failure")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestStoreGCServiceDefaultInterval(t *testing.T) {
	svc := NewStoreGCService(&fakeGC{}, 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m default", svc.interval)
	}
	if got := svc.String(); got != "store-gc" {
		t.Errorf("String() = %q", got)
	}
}
