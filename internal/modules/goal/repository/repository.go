package repository

import (
	"context"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filter struct {
	UserID   uuid.UUID
	Status   string
	Category string
	Limit    int
	Offset   int
}

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Goal, int64, error)
	Update(ctx context.Context, goal *entity.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

const priorityRank = "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC"

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goal entity.Goal
	if err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Goal, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", filter.UserID)
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Goal{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var goals []*entity.Goal
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order(priorityRank).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&goals).Error
	if err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).
		Model(goal).
		Select("Title", "Description", "Category", "Priority", "Status", "Progress", "TargetDate", "UpdatedAt").
		Updates(goal).Error
}

func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Goal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
