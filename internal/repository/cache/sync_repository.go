package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/place-service/internal/domain"
	"github.com/place-service/internal/domain/repository"
	"github.com/place-service/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	syncLockKey    = "places:sync:lock"
	syncLastRunKey = "places:sync:last_run"
)

type syncRepository struct {
	redis *Redis
	// token identifies this instance's lock so one instance cannot
	// release a lock held by another.
	token  string
	logger *zap.Logger
}

func NewSyncRepository(r *Redis) repository.SyncRepository {
	return &syncRepository{
		redis:  r,
		token:  uuid.NewString(),
		logger: r.logger,
	}
}

func (s *syncRepository) AcquireLock(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := s.redis.Client().SetNX(ctx, syncLockKey, s.token, ttl).Result()
	if err != nil {
		s.logger.Error("Failed to acquire sync lock", zap.Error(err))
		return false, errors.ErrCacheError
	}
	return ok, nil
}

func (s *syncRepository) ReleaseLock(ctx context.Context) error {
	// Release only our own lock; an expired-and-retaken lock belongs
	// to someone else.
	const script = `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		end
		return 0
	`
	if err := s.redis.Client().Eval(ctx, script, []string{syncLockKey}, s.token).Err(); err != nil {
		s.logger.Error("Failed to release sync lock", zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (s *syncRepository) SetLastRun(ctx context.Context, result *domain.SyncResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.ErrCacheError
	}
	if err := s.redis.Client().Set(ctx, syncLastRunKey, data, 0).Err(); err != nil {
		s.logger.Error("Failed to store sync run result", zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (s *syncRepository) GetLastRun(ctx context.Context) (*domain.SyncResult, error) {
	data, err := s.redis.Client().Get(ctx, syncLastRunKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to read sync run result", zap.Error(err))
		return nil, errors.ErrCacheError
	}

	var result domain.SyncResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.ErrCacheError
	}
	return &result, nil
}
