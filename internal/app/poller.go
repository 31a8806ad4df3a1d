package app

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/five82/tally/internal/records"
	"github.com/five82/tally/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// Poll refreshes the store until ctx is cancelled. After a failed fetch the
// wait grows exponentially from interval up to maxBackoff; a success resets
// it.
func Poll(ctx context.Context, store *state.Store, fetcher records.Fetcher, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	failures := store.Snapshot().ConsecutiveFailures
	for {
		timer := time.NewTimer(calculateBackoff(failures, interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		failures = refresh(ctx, store, fetcher, logger)
	}
}

// refresh fetches once and records the outcome. It returns the number of
// consecutive failures after the attempt.
func refresh(ctx context.Context, store *state.Store, fetcher records.Fetcher, logger *zap.Logger) int {
	recs, err := fetcher.FetchRecords(ctx)
	if err != nil && ctx.Err() != nil {
		return store.Snapshot().ConsecutiveFailures
	}
	store.Update(recs, err)
	snap := store.Snapshot()
	if err != nil {
		logger.Warn("record poll failed",
			zap.Error(err),
			zap.Int("consecutive_failures", snap.ConsecutiveFailures))
		return snap.ConsecutiveFailures
	}
	logger.Debug("records refreshed", zap.Int("count", len(recs)))
	return 0
}

// calculateBackoff returns the wait before the next poll given the number of
// consecutive failures so far.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     base,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         maxBackoff,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	wait := b.NextBackOff()
	for i := 0; i < failures; i++ {
		wait = b.NextBackOff()
	}
	return min(wait, maxBackoff)
}

// LoadRecords fetches once, retrying transient failures with exponential
// backoff until maxElapsed has passed or ctx is cancelled.
func LoadRecords(ctx context.Context, fetcher records.Fetcher, maxElapsed time.Duration, logger *zap.Logger) ([]records.Record, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsed

	var recs []records.Record
	attempt := 1
	err := backoff.Retry(func() error {
		var err error
		recs, err = fetcher.FetchRecords(ctx)
		if err != nil {
			logger.Info("waiting for record source", zap.Int("attempt", attempt), zap.Error(err))
			attempt++
			return err
		}
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	return recs, nil
}
