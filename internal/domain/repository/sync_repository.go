package repository

import (
	"context"
	"time"

	"github.com/place-service/internal/domain"
)

// SyncRepository coordinates synchronization runs across instances.
type SyncRepository interface {
	// AcquireLock takes the run lock with a TTL. Returns false when
	// another run already holds it.
	AcquireLock(ctx context.Context, ttl time.Duration) (bool, error)

	// ReleaseLock releases the run lock.
	ReleaseLock(ctx context.Context) error

	// SetLastRun stores the result of the most recent run.
	SetLastRun(ctx context.Context, result *domain.SyncResult) error

	// GetLastRun returns the most recent run result, or nil when no
	// run has been recorded.
	GetLastRun(ctx context.Context) (*domain.SyncResult, error)
}
