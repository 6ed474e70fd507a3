package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/mentoria/internal/modules/counter/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const viewerWindow = time.Hour

type CounterService interface {
	// RecordView counts a view of document id. viewer identifies the caller
	// (user id or client address); repeated views inside an hour count once
	// when redis is available.
	RecordView(ctx context.Context, id uuid.UUID, viewer string) error
	RecordDownload(ctx context.Context, id uuid.UUID) error
	// Sync flushes buffered increments to the database.
	Sync(ctx context.Context)
	StartSyncWorker(ctx context.Context, interval time.Duration)
}

type counterService struct {
	redisClient *redis.Client
	repo        repository.CounterRepository
	log         *zap.Logger
}

// NewCounterService builds the service. Without redis every increment goes
// straight to the database.
func NewCounterService(redisClient *redis.Client, repo repository.CounterRepository, log *zap.Logger) CounterService {
	if log == nil {
		log = zap.NewNop()
	}
	return &counterService{
		redisClient: redisClient,
		repo:        repo,
		log:         log,
	}
}

func counterKey(counter repository.Counter, id string) string {
	switch counter {
	case repository.Downloads:
		return "document:downloads:" + id
	default:
		return "document:views:" + id
	}
}

func pendingKey(counter repository.Counter) string {
	switch counter {
	case repository.Downloads:
		return "pending:document_downloads"
	default:
		return "pending:document_views"
	}
}

func (s *counterService) RecordView(ctx context.Context, id uuid.UUID, viewer string) error {
	if s.redisClient == nil {
		return s.repo.Add(ctx, repository.Views, id, 1)
	}

	if viewer != "" {
		viewerKey := fmt.Sprintf("document:viewer:%s:%s", id, viewer)
		first, err := s.redisClient.SetNX(ctx, viewerKey, 1, viewerWindow).Result()
		if err != nil {
			return fmt.Errorf("failed to check document viewer: %w", err)
		}
		if !first {
			return nil
		}
	}

	return s.buffer(ctx, repository.Views, id)
}

func (s *counterService) RecordDownload(ctx context.Context, id uuid.UUID) error {
	if s.redisClient == nil {
		return s.repo.Add(ctx, repository.Downloads, id, 1)
	}
	return s.buffer(ctx, repository.Downloads, id)
}

func (s *counterService) buffer(ctx context.Context, counter repository.Counter, id uuid.UUID) error {
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, counterKey(counter, id.String()))
		pipe.SAdd(ctx, pendingKey(counter), id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to buffer %s: %w", counter, err)
	}
	return nil
}

func (s *counterService) Sync(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	for _, counter := range []repository.Counter{repository.Views, repository.Downloads} {
		synced := s.syncCounter(ctx, counter)
		if synced > 0 {
			s.log.Info("synced document counters", zap.String("counter", string(counter)), zap.Int("documents", synced))
		}
	}
}

func (s *counterService) syncCounter(ctx context.Context, counter repository.Counter) int {
	pending := pendingKey(counter)
	ids, err := s.redisClient.SMembers(ctx, pending).Result()
	if err != nil {
		s.log.Error("failed to read pending counters", zap.String("counter", string(counter)), zap.Error(err))
		return 0
	}

	synced := 0
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.log.Warn("dropping invalid pending document id", zap.String("id", raw))
			s.redisClient.SRem(ctx, pending, raw)
			continue
		}

		key := counterKey(counter, raw)
		n, err := s.redisClient.Get(ctx, key).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			s.log.Error("failed to read counter", zap.String("key", key), zap.Error(err))
			continue
		}

		if n > 0 {
			if err := s.repo.Add(ctx, counter, id, n); err != nil {
				s.log.Error("failed to persist counter", zap.String("key", key), zap.Error(err))
				continue
			}
			// Increments that landed after the read stay in redis.
			left, err := s.redisClient.DecrBy(ctx, key, n).Result()
			if err != nil {
				s.log.Error("failed to reset counter", zap.String("key", key), zap.Error(err))
				continue
			}
			if left > 0 {
				synced++
				continue
			}
		}

		s.redisClient.SRem(ctx, pending, raw)
		if left, err := s.redisClient.Get(ctx, key).Int64(); err == nil && left > 0 {
			s.redisClient.SAdd(ctx, pending, raw)
		}
		if n > 0 {
			synced++
		}
	}
	return synced
}

func (s *counterService) StartSyncWorker(ctx context.Context, interval time.Duration) {
	if s.redisClient == nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sync(ctx)
		case <-ctx.Done():
			// Flush what is still buffered before exiting.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.Sync(flushCtx)
			cancel()
			return
		}
	}
}
