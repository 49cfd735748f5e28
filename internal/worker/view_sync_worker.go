package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ViewCounter is the hot counter the worker drains.
type ViewCounter interface {
	Deltas(ctx context.Context) (map[int64]int64, error)
	Deduct(ctx context.Context, productID, n int64) error
}

// ViewStore is the durable counter table the worker fills.
type ViewStore interface {
	Add(ctx context.Context, productID, n int64) error
}

// ViewSyncWorker periodically folds accumulated view increments from the hot
// counter into durable storage. Deltas are deducted only after a successful
// write, so increments arriving mid-flush survive for the next cycle.
type ViewSyncWorker struct {
	counter  ViewCounter
	store    ViewStore
	interval time.Duration
}

// NewViewSyncWorker constructs a ViewSyncWorker.
func NewViewSyncWorker(counter ViewCounter, store ViewStore, interval time.Duration) *ViewSyncWorker {
	return &ViewSyncWorker{
		counter:  counter,
		store:    store,
		interval: interval,
	}
}

// Start begins the periodic flush loop and listens for context cancellation.
func (w *ViewSyncWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting view sync worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			// Final flush so counts accrued since the last tick are not lost
			// on shutdown.
			w.run(context.Background())
			log.Info().Msg("View sync worker stopped")
			return
		}
	}
}

func (w *ViewSyncWorker) run(ctx context.Context) {
	deltas, err := w.counter.Deltas(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read view deltas")
		return
	}
	if len(deltas) == 0 {
		return
	}

	flushed := 0
	for productID, n := range deltas {
		if n <= 0 {
			continue
		}
		if err := w.store.Add(ctx, productID, n); err != nil {
			log.Error().Err(err).Int64("product_id", productID).Msg("Failed to flush view count")
			continue
		}
		if err := w.counter.Deduct(ctx, productID, n); err != nil {
			log.Error().Err(err).Int64("product_id", productID).Msg("Failed to deduct flushed views")
			continue
		}
		flushed++
	}

	if flushed > 0 {
		log.Debug().Int("products", flushed).Msg("View counts flushed")
	}
}
