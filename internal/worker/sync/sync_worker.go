package sync

import (
	"context"
	"time"

	"github.com/place-service/internal/pkg/errors"
	"github.com/place-service/internal/usecase"
	"github.com/place-service/internal/worker"
	"go.uber.org/zap"
)

// Worker triggers a full provider synchronization on a fixed
// interval. A run already in progress on another instance is skipped,
// not treated as a failure.
type Worker struct {
	*worker.BaseWorker
	syncUC   *usecase.SyncUseCase
	interval time.Duration
}

func NewWorker(syncUC *usecase.SyncUseCase, interval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		BaseWorker: worker.NewBaseWorker("place-sync", logger),
		syncUC:     syncUC,
		interval:   interval,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	w.Logger().Info("Sync worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// First run immediately, then on every tick.
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Sync worker context canceled")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Sync worker stopped")
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	result, err := w.syncUC.Run(ctx)
	if err == errors.ErrSyncInProgress {
		w.Logger().Info("Skipping scheduled sync, another run in progress")
		return
	}
	if err != nil {
		w.Logger().Error("Scheduled sync failed", zap.Error(err))
		return
	}

	w.Logger().Info("Scheduled sync finished",
		zap.String("run_id", result.RunID),
		zap.Int("total", result.Total),
		zap.Int64("swept", result.Swept))
}
