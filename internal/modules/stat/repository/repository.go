package repository

import (
	"context"
	"time"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/stat/dto"
	"gorm.io/gorm"
)

type StatRepository interface {
	Collect(ctx context.Context, now time.Time) (*dto.PlatformStats, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) Collect(ctx context.Context, now time.Time) (*dto.PlatformStats, error) {
	db := r.db.WithContext(ctx)
	stats := &dto.PlatformStats{}

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&entity.User{}), &stats.TotalUsers},
		{db.Model(&entity.Mentor{}), &stats.TotalMentors},
		{db.Model(&entity.Mentee{}), &stats.TotalMentees},
		{db.Model(&entity.Session{}), &stats.TotalSessions},
		{db.Model(&entity.Session{}).Where("scheduled_at >= ? AND status IN ?", now,
			[]string{entity.SessionStatusScheduled, entity.SessionStatusUpcoming}), &stats.UpcomingSessions},
		{db.Model(&entity.Document{}), &stats.TotalDocuments},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}
