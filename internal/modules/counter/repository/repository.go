package repository

import (
	"context"
	"fmt"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Counter names a monotonic document counter column.
type Counter string

const (
	Views     Counter = "view_count"
	Downloads Counter = "download_count"
)

type CounterRepository interface {
	// Add increments the counter of document id by n in a single statement.
	Add(ctx context.Context, counter Counter, id uuid.UUID, n int64) error
}

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Add(ctx context.Context, counter Counter, id uuid.UUID, n int64) error {
	if counter != Views && counter != Downloads {
		return fmt.Errorf("unknown counter %q", counter)
	}
	if n <= 0 {
		return nil
	}
	column := string(counter)
	return r.db.WithContext(ctx).
		Model(&entity.Document{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", n)).Error
}
