package scheduler

import (
	"context"
	"time"
)

// EventPruner deletes audit events older than a retention period.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// CacheInvalidator drops a cached dataset.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PruneEventsJob deletes events older than retention every night at 03:00.
func PruneEventsJob(pruner EventPruner, retention time.Duration, onDeleted func(n int64)) Job {
	return Job{
		Name:     "prune-events",
		Schedule: "0 3 * * *",
		Run: func(ctx context.Context) error {
			n, err := pruner.DeleteOldEvents(ctx, retention)
			if err != nil {
				return err
			}
			if onDeleted != nil && n > 0 {
				onDeleted(n)
			}
			return nil
		},
	}
}

// RefreshCitiesJob drops the cached city list hourly so cities added outside
// the running process appear in the cafe form.
func RefreshCitiesJob(cities CacheInvalidator) Job {
	return Job{
		Name:     "refresh-cities",
		Schedule: "@hourly",
		Run:      cities.Invalidate,
	}
}
