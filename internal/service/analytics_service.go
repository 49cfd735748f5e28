package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/sse"
)

// AnalyticsService records query and selection activity and serves the
// aggregate snapshot the admin dashboard reads.
type AnalyticsService struct {
	queries  QueryStore
	views    ViewStore
	counter  ViewCounter
	notifier sse.ActivityNotifier
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(queries QueryStore, views ViewStore, counter ViewCounter, notifier sse.ActivityNotifier) *AnalyticsService {
	return &AnalyticsService{queries: queries, views: views, counter: counter, notifier: notifier}
}

// RecordQuery appends a Pending query record and bumps the traffic counter.
// It returns the record id so the chat session can credit the query when a
// selection follows.
func (s *AnalyticsService) RecordQuery(ctx context.Context, chatID int64, text string) (int64, error) {
	rec := &models.QueryRecord{ChatID: chatID, Query: text}
	if err := s.queries.AppendQuery(ctx, rec); err != nil {
		return 0, fmt.Errorf("append query: %w", err)
	}
	s.notifier.NotifyQueryRecorded(rec)
	return rec.ID, nil
}

// MarkQuerySuccess resolves the query a selection originated from. The link
// is the stored query id carried through the chat session, never inferred
// from the query text.
func (s *AnalyticsService) MarkQuerySuccess(ctx context.Context, queryID int64) error {
	if queryID == 0 {
		return nil
	}
	return s.queries.MarkSuccess(ctx, queryID)
}

// RecordView counts one product selection. Increments land in the hot
// counter; the view sync worker folds them into durable storage.
func (s *AnalyticsService) RecordView(ctx context.Context, productID int64) error {
	if err := s.counter.Incr(ctx, productID); err != nil {
		return fmt.Errorf("increment view counter: %w", err)
	}
	s.notifier.NotifyProductViewed(productID)
	return nil
}

// Read returns the analytics snapshot. Each sub-read degrades independently
// to empty/defaults on failure; a broken store never makes the dashboard
// unreadable.
func (s *AnalyticsService) Read(ctx context.Context) *models.AnalyticsSnapshot {
	snap := &models.AnalyticsSnapshot{ProductViews: make(map[int64]int64)}

	queries, err := s.queries.ListQueries(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read query log, degrading to empty")
	} else {
		snap.Queries = queries
	}

	traffic, err := s.queries.Traffic(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read traffic counter, degrading to zero")
	} else {
		snap.Traffic = traffic
	}

	flushed, err := s.views.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read view counters, degrading to empty")
		flushed = nil
	}
	for id, n := range flushed {
		snap.ProductViews[id] += n
	}

	// Fold in increments the worker has not flushed yet so counts read exact.
	deltas, err := s.counter.Deltas(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read view deltas, reporting flushed counts only")
		deltas = nil
	}
	for id, n := range deltas {
		snap.ProductViews[id] += n
	}

	return snap
}
