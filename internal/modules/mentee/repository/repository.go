package repository

import (
	"context"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenteeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Mentee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Mentee, error)
	// Update saves scalar fields and, when the flags are set, rewrites the
	// goal and interest lists.
	Update(ctx context.Context, mentee *entity.Mentee, replaceGoals, replaceInterests bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveSessions(ctx context.Context, menteeID uuid.UUID) (int64, error)
}

type menteeRepository struct {
	db *gorm.DB
}

func NewMenteeRepository(db *gorm.DB) MenteeRepository {
	return &menteeRepository{db: db}
}

func withChildren(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC").Order("id ASC")
	}
	return db.Preload("Goals", byPosition).Preload("Interests", byPosition)
}

func (r *menteeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Mentee, error) {
	var mentee entity.Mentee
	if err := r.db.WithContext(ctx).Scopes(withChildren).First(&mentee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mentee, nil
}

func (r *menteeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Mentee, error) {
	var mentee entity.Mentee
	if err := r.db.WithContext(ctx).Scopes(withChildren).Where("user_id = ?", userID).First(&mentee).Error; err != nil {
		return nil, err
	}
	return &mentee, nil
}

func (r *menteeRepository) Update(ctx context.Context, mentee *entity.Mentee, replaceGoals, replaceInterests bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(mentee).
			Omit(clause.Associations).
			Select("Name", "Bio", "CurrentRole", "ExperienceLevel", "UpdatedAt").
			Updates(mentee).Error
		if err != nil {
			return err
		}

		if replaceGoals {
			if err := tx.Where("mentee_id = ?", mentee.ID).Delete(&entity.MenteeGoal{}).Error; err != nil {
				return err
			}
			for i := range mentee.Goals {
				mentee.Goals[i].ID = 0
				mentee.Goals[i].MenteeID = mentee.ID
				mentee.Goals[i].Position = i
			}
			if len(mentee.Goals) > 0 {
				if err := tx.Create(&mentee.Goals).Error; err != nil {
					return err
				}
			}
		}

		if replaceInterests {
			if err := tx.Where("mentee_id = ?", mentee.ID).Delete(&entity.MenteeInterest{}).Error; err != nil {
				return err
			}
			for i := range mentee.Interests {
				mentee.Interests[i].ID = 0
				mentee.Interests[i].MenteeID = mentee.ID
				mentee.Interests[i].Position = i
			}
			if len(mentee.Interests) > 0 {
				if err := tx.Create(&mentee.Interests).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *menteeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Mentee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menteeRepository) CountActiveSessions(ctx context.Context, menteeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Session{}).
		Where("mentee_id = ? AND status IN ?", menteeID, entity.ActiveSessionStatuses).
		Count(&count).Error
	return count, err
}
