// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/wayfarer/internal/logging"
)

// Defaults for StoreGCService.
const (
	DefaultGCInterval     = 10 * time.Minute
	DefaultGCDiscardRatio = 0.5
)

// ValueLogCollector is implemented by *store.Badger.
type ValueLogCollector interface {
	RunGC(discardRatio float64) error
}

// StoreGCService periodically reclaims Badger value log space. Each tick
// keeps collecting until Badger reports nothing left to rewrite.
type StoreGCService struct {
	store        ValueLogCollector
	interval     time.Duration
	discardRatio float64
}

// NewStoreGCService creates a StoreGCService. Non-positive arguments take the
// defaults.
func NewStoreGCService(store ValueLogCollector, interval time.Duration, discardRatio float64) *StoreGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = DefaultGCDiscardRatio
	}
	return &StoreGCService{store: store, interval: interval, discardRatio: discardRatio}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.collect(ctx); err != nil {
				return err
			}
		}
	}
}

// collect runs GC until a pass rewrites nothing. ErrRejected means another
// GC is running or the DB is closing, which is not a failure.
func (s *StoreGCService) collect(ctx context.Context) error {
	runs := 0
	for ctx.Err() == nil {
		err := s.store.RunGC(s.discardRatio)
		if err == nil {
			runs++
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			break
		}
		logging.Error().Err(err).Msg("value log GC failed")
		return err
	}
	if runs > 0 {
		logging.Debug().Int("rewrites", runs).Msg("value log GC reclaimed space")
	}
	return nil
}

func (s *StoreGCService) String() string {
	return "store-gc"
}
