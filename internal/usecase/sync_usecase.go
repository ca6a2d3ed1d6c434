package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/place-service/internal/config"
	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/domain/repository"
	"github.com/place-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// SyncUseCase reconciles the store against the external provider.
// Each run upserts fetched records by external ID and, when every
// type succeeded, sweeps externally-sourced records the run did not
// touch. The store is never emptied mid-run.
type SyncUseCase struct {
	placeRepo repository.PlaceRepository
	provider  repository.PlacesProvider
	syncRepo  repository.SyncRepository
	region    config.RegionConfig
	cfg       config.SyncConfig
	logger    *zap.Logger
}

func NewSyncUseCase(
	placeRepo repository.PlaceRepository,
	provider repository.PlacesProvider,
	syncRepo repository.SyncRepository,
	region config.RegionConfig,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		placeRepo: placeRepo,
		provider:  provider,
		syncRepo:  syncRepo,
		region:    region,
		cfg:       cfg,
		logger:    logger,
	}
}

// pageState tracks progress through one type's paged search.
type pageState struct {
	token   string
	fetched int
	pages   int
}

// Run executes one full synchronization. Concurrent runs are
// serialized through the run lock; a second caller gets
// SYNC_IN_PROGRESS instead of racing the reconcile.
func (uc *SyncUseCase) Run(ctx context.Context) (*domain.SyncResult, error) {
	acquired, err := uc.syncRepo.AcquireLock(ctx, uc.cfg.LockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors.ErrSyncInProgress
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.syncRepo.ReleaseLock(releaseCtx); err != nil {
			uc.logger.Error("Failed to release sync lock", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.RunTimeout)
	defer cancel()

	startedAt := time.Now().UTC()
	result := &domain.SyncResult{
		RunID:     uuid.NewString(),
		StartedAt: startedAt,
	}

	uc.logger.Info("Starting synchronization run",
		zap.String("run_id", result.RunID),
		zap.String("region", uc.region.Name),
		zap.Strings("types", uc.cfg.Types))

	center := domain.NewGeoPoint(uc.region.Lon, uc.region.Lat)
	radiusMeters := int(uc.region.RadiusKm * 1000)

	// Types are independent: one type's provider error no longer
	// aborts the run, it only shows up in that type's result.
	failed := 0
	for _, placeType := range uc.cfg.Types {
		typeResult := uc.syncType(ctx, center, radiusMeters, placeType, startedAt)
		if typeResult.Error != "" {
			failed++
		}
		result.Total += typeResult.Count
		result.Types = append(result.Types, typeResult)
	}

	// Sweeping after a partial run would delete records belonging to
	// the failed types, so stale records are only removed when every
	// type reconciled cleanly.
	if failed == 0 {
		swept, err := uc.placeRepo.SweepExternal(ctx, startedAt)
		if err != nil {
			uc.logger.Error("Failed to sweep stale records",
				zap.String("run_id", result.RunID),
				zap.Error(err))
		} else {
			result.Swept = swept
		}
	} else {
		uc.logger.Warn("Skipping stale-record sweep after partial run",
			zap.String("run_id", result.RunID),
			zap.Int("failed_types", failed))
	}

	result.FinishedAt = time.Now().UTC()

	if err := uc.syncRepo.SetLastRun(ctx, result); err != nil {
		uc.logger.Error("Failed to record sync result", zap.Error(err))
	}

	uc.logger.Info("Synchronization run finished",
		zap.String("run_id", result.RunID),
		zap.Int("total", result.Total),
		zap.Int64("swept", result.Swept),
		zap.Int("failed_types", failed))

	if failed == len(uc.cfg.Types) {
		return nil, errors.ErrSyncFailed.WithDetails(map[string]interface{}{
			"run_id": result.RunID,
			"types":  result.Types,
		})
	}
	return result, nil
}

// syncType drives the pagination state machine for one type and
// upserts everything it fetched. Provider response order is preserved
// within and across pages.
func (uc *SyncUseCase) syncType(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters int,
	placeType string,
	startedAt time.Time,
) domain.TypeSyncResult {
	typeResult := domain.TypeSyncResult{Type: placeType}

	places, pages, err := uc.fetchType(ctx, center, radiusMeters, placeType)
	typeResult.Pages = pages
	if err != nil {
		uc.logger.Error("Failed to fetch places for type",
			zap.String("type", placeType),
			zap.Error(err))
		typeResult.Error = err.Error()
		return typeResult
	}

	for _, place := range places {
		if err := uc.placeRepo.UpsertExternal(ctx, place, startedAt); err != nil {
			// Partial application is reported, not hidden: Count
			// reflects what was applied before the failure.
			uc.logger.Error("Failed to upsert place",
				zap.String("type", placeType),
				zap.Error(err))
			typeResult.Error = err.Error()
			return typeResult
		}
		typeResult.Count++
	}

	return typeResult
}

// fetchType pages through the provider for one type. It continues
// only while a continuation token is present and the accumulated
// count is below the per-type cap, and waits the mandatory delay
// before every token-bearing page (never before the first one).
func (uc *SyncUseCase) fetchType(
	ctx context.Context,
	center domain.GeoPoint,
	radiusMeters int,
	placeType string,
) ([]*domain.Place, int, error) {
	var all []*domain.Place
	state := pageState{}

	for {
		if state.token != "" {
			// A continuation token is not valid immediately after
			// issuance.
			select {
			case <-ctx.Done():
				return nil, state.pages, ctx.Err()
			case <-time.After(uc.cfg.PageDelay):
			}
		}

		places, nextToken, err := uc.provider.SearchPage(ctx, center, radiusMeters, placeType, state.token)
		if err != nil {
			return nil, state.pages, err
		}

		state.pages++
		state.fetched += len(places)
		all = append(all, places...)

		if nextToken == "" || state.fetched >= uc.cfg.MaxPerType {
			return all, state.pages, nil
		}
		state.token = nextToken
	}
}

// LastRun returns the most recent recorded run, or nil when none.
func (uc *SyncUseCase) LastRun(ctx context.Context) (*domain.SyncResult, error) {
	return uc.syncRepo.GetLastRun(ctx)
}
