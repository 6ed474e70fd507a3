package repository

import (
	"context"
	"errors"
	"strings"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Search   string
	Role     string
	UserType string
	Limit    int
	Offset   int
}

type UserRepository interface {
	// CreateAccount inserts user together with whichever profile is non-nil.
	CreateAccount(ctx context.Context, user *entity.User, mentor *entity.Mentor, mentee *entity.Mentee) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ProfileIDs(ctx context.Context, userID uuid.UUID) (mentorID, menteeID *uuid.UUID, err error)
	CountActiveMentorSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) error
	// DeleteAccount removes the user and the mentor profile it owns.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateAccount(ctx context.Context, user *entity.User, mentor *entity.Mentor, mentee *entity.Mentee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if mentor != nil {
			mentor.UserID = &user.ID
			if err := tx.Omit(clause.Associations).Create(mentor).Error; err != nil {
				return err
			}
			for i := range mentor.Languages {
				mentor.Languages[i].MentorID = mentor.ID
			}
			if len(mentor.Languages) > 0 {
				if err := tx.Create(&mentor.Languages).Error; err != nil {
					return err
				}
			}
		}

		if mentee != nil {
			mentee.UserID = user.ID
			if err := tx.Omit(clause.Associations).Create(mentee).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) ProfileIDs(ctx context.Context, userID uuid.UUID) (*uuid.UUID, *uuid.UUID, error) {
	var mentorID, menteeID *uuid.UUID

	var mentor entity.Mentor
	err := r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&mentor).Error
	switch {
	case err == nil:
		mentorID = &mentor.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, err
	}

	var mentee entity.Mentee
	err = r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&mentee).Error
	switch {
	case err == nil:
		menteeID = &mentee.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, err
	}

	return mentorID, menteeID, nil
}

func (r *userRepository) CountActiveMentorSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Session{}).
		Joins("JOIN mentors ON mentors.id = sessions.mentor_id").
		Where("mentors.user_id = ? AND sessions.status IN ?", userID, entity.ActiveSessionStatuses).
		Count(&count).Error
	return count, err
}

func (r *userRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.User, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
		if filter.Role != "" {
			db = db.Where("role = ?", filter.Role)
		}
		if filter.UserType != "" {
			db = db.Where("user_type = ?", filter.UserType)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*entity.User
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(user).Select("Name", "Email", "ProfileImageURL", "Avatar").Updates(user).Error
}

func (r *userRepository) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.Mentor{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.User{}, "id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
