package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"anoa.com/mentoria/internal/modules/stat/dto"
	"anoa.com/mentoria/internal/modules/stat/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	StatsCacheKey = "stats:platform"
	statsCacheTTL = 5 * time.Minute
)

type StatService interface {
	GetPlatformStats(ctx context.Context) (*dto.PlatformStats, error)
}

type statService struct {
	repo        repository.StatRepository
	redisClient *redis.Client
	log         *zap.Logger
	now         func() time.Time
}

// NewStatService builds the service. Without redis every call hits the database.
func NewStatService(repo repository.StatRepository, redisClient *redis.Client, log *zap.Logger) StatService {
	if log == nil {
		log = zap.NewNop()
	}
	return &statService{
		repo:        repo,
		redisClient: redisClient,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *statService) GetPlatformStats(ctx context.Context) (*dto.PlatformStats, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, StatsCacheKey).Bytes()
		if err == nil {
			var stats dto.PlatformStats
			if json.Unmarshal(cached, &stats) == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("failed to read stats cache", zap.Error(err))
		}
	}

	stats, err := s.repo.Collect(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.redisClient.Set(ctx, StatsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.log.Warn("failed to write stats cache", zap.Error(err))
			}
		}
	}

	return stats, nil
}
