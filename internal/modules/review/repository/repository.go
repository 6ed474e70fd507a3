package repository

import (
	"context"
	"errors"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAlreadyReviewed = errors.New("session already reviewed by this user")

type ReviewRepository interface {
	// Create stores the review and refreshes the rating of the reviewee's
	// mentor profile, if any, in the same transaction.
	Create(ctx context.Context, review *entity.Review) error
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Review, error)
	FindByReviewee(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&entity.Review{}).
			Where("session_id = ? AND reviewer_id = ?", review.SessionID, review.ReviewerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyReviewed
		}

		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyReviewed
			}
			return err
		}

		average := tx.Model(&entity.Review{}).
			Select("COALESCE(ROUND(AVG(rating), 1), 0)").
			Where("reviewee_id = ?", review.RevieweeID)
		return tx.Model(&entity.Mentor{}).
			Where("user_id = ?", review.RevieweeID).
			UpdateColumn("rating", average).Error
	})
}

func (r *reviewRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindByReviewee(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
