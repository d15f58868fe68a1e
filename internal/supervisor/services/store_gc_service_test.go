// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// scriptedCollector returns the queued results in order, then ErrNoRewrite.
type scriptedCollector struct {
	mu      sync.Mutex
	results []error
	calls   int
	ratio   float64
}

func (c *scriptedCollector) RunGC(ratio float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.ratio = ratio
	if len(c.results) == 0 {
		return badger.ErrNoRewrite
	}
	err := c.results[0]
	c.results = c.results[1:]
	return err
}

func (c *scriptedCollector) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestNewStoreGCServiceDefaults(t *testing.T) {
	t.Parallel()

	svc := NewStoreGCService(&scriptedCollector{}, 0, 1.5)
	if svc.interval != DefaultGCInterval || svc.discardRatio != DefaultGCDiscardRatio {
		t.Errorf("got interval %v ratio %v, want defaults", svc.interval, svc.discardRatio)
	}
}

func TestStoreGCCollectRepeatsUntilNoRewrite(t *testing.T) {
	t.Parallel()

	c := &scriptedCollector{results: []error{nil, nil}}
	svc := NewStoreGCService(c, time.Minute, 0.7)
	if err := svc.collect(context.Background()); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if c.callCount() != 3 {
		t.Errorf("RunGC called %d times, want 3", c.callCount())
	}
	if c.ratio != 0.7 {
		t.Errorf("ratio = %v, want 0.7", c.ratio)
	}
}

func TestStoreGCCollectToleratesRejection(t *testing.T) {
	t.Parallel()

	c := &scriptedCollector{results: []error{badger.ErrRejected}}
	if err := NewStoreGCService(c, time.Minute, 0).collect(context.Background()); err != nil {
		t.Errorf("collect = %v, want nil on ErrRejected", err)
	}
}

func TestStoreGCServeReturnsUnexpectedError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	c := &scriptedCollector{results: []error{boom}}
	svc := NewStoreGCService(c, 5*time.Millisecond, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, boom) {
		t.Errorf("Serve = %v, want %v", err, boom)
	}
}

func TestStoreGCServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	c := &scriptedCollector{}
	svc := NewStoreGCService(c, 5*time.Millisecond, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve = %v, want deadline exceeded", err)
	}
	if c.callCount() == 0 {
		t.Error("GC never ran")
	}
}
