package repository

import (
	"context"
	"strings"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Search    string
	Specialty string
	MinRating *float64
	Limit     int
	Offset    int
}

// Collections selects which child lists Update rewrites.
type Collections struct {
	Specialties    bool
	Languages      bool
	Certifications bool
}

type MentorRepository interface {
	Create(ctx context.Context, mentor *entity.Mentor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Mentor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Mentor, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Mentor, int64, error)
	Update(ctx context.Context, mentor *entity.Mentor, replace Collections) error
	ReplaceAvailability(ctx context.Context, mentorID uuid.UUID, slots []entity.MentorAvailability) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveSessions(ctx context.Context, mentorID uuid.UUID) (int64, error)
	Specialties(ctx context.Context) ([]string, error)
}

type mentorRepository struct {
	db *gorm.DB
}

func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Specialties", byPosition).
		Preload("Languages", byPosition).
		Preload("Certifications", byPosition).
		Preload("Availability", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_of_week ASC").Order("start_time ASC")
		})
}

func (r *mentorRepository) Create(ctx context.Context, mentor *entity.Mentor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(mentor).Error; err != nil {
			return err
		}
		return createChildren(tx, mentor, Collections{Specialties: true, Languages: true, Certifications: true})
	})
}

func (r *mentorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Mentor, error) {
	var mentor entity.Mentor
	if err := r.db.WithContext(ctx).Scopes(withChildren).First(&mentor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Mentor, error) {
	var mentor entity.Mentor
	if err := r.db.WithContext(ctx).Scopes(withChildren).Where("user_id = ?", userID).First(&mentor).Error; err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Mentor, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Specialty != "" {
			db = db.Where(
				"EXISTS (SELECT 1 FROM mentor_specialties ms WHERE ms.mentor_id = mentors.id AND LOWER(ms.name) = ?)",
				strings.ToLower(filter.Specialty),
			)
		}
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			db = db.Where("LOWER(mentors.name) LIKE ? OR LOWER(mentors.bio) LIKE ?", like, like)
		}
		if filter.MinRating != nil {
			db = db.Where("mentors.rating >= ?", *filter.MinRating)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Mentor{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mentors []*entity.Mentor
	err := r.db.WithContext(ctx).
		Scopes(scope, withChildren).
		Order("mentors.rating DESC").
		Order("mentors.total_sessions DESC").
		Order("mentors.created_at ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&mentors).Error
	if err != nil {
		return nil, 0, err
	}
	return mentors, total, nil
}

func (r *mentorRepository) Update(ctx context.Context, mentor *entity.Mentor, replace Collections) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(mentor).
			Omit(clause.Associations).
			Select("Name", "Title", "Company", "Bio", "Avatar", "Experience", "HourlyRate", "IsAvailable", "UpdatedAt").
			Updates(mentor).Error
		if err != nil {
			return err
		}

		if replace.Specialties {
			if err := tx.Where("mentor_id = ?", mentor.ID).Delete(&entity.MentorSpecialty{}).Error; err != nil {
				return err
			}
		}
		if replace.Languages {
			if err := tx.Where("mentor_id = ?", mentor.ID).Delete(&entity.MentorLanguage{}).Error; err != nil {
				return err
			}
		}
		if replace.Certifications {
			if err := tx.Where("mentor_id = ?", mentor.ID).Delete(&entity.MentorCertification{}).Error; err != nil {
				return err
			}
		}
		return createChildren(tx, mentor, replace)
	})
}

func createChildren(tx *gorm.DB, mentor *entity.Mentor, which Collections) error {
	if which.Specialties && len(mentor.Specialties) > 0 {
		for i := range mentor.Specialties {
			mentor.Specialties[i].ID = 0
			mentor.Specialties[i].MentorID = mentor.ID
			mentor.Specialties[i].Position = i
		}
		if err := tx.Create(&mentor.Specialties).Error; err != nil {
			return err
		}
	}
	if which.Languages && len(mentor.Languages) > 0 {
		for i := range mentor.Languages {
			mentor.Languages[i].ID = 0
			mentor.Languages[i].MentorID = mentor.ID
			mentor.Languages[i].Position = i
		}
		if err := tx.Create(&mentor.Languages).Error; err != nil {
			return err
		}
	}
	if which.Certifications && len(mentor.Certifications) > 0 {
		for i := range mentor.Certifications {
			mentor.Certifications[i].ID = 0
			mentor.Certifications[i].MentorID = mentor.ID
			mentor.Certifications[i].Position = i
		}
		if err := tx.Create(&mentor.Certifications).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *mentorRepository) ReplaceAvailability(ctx context.Context, mentorID uuid.UUID, slots []entity.MentorAvailability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mentor_id = ?", mentorID).Delete(&entity.MentorAvailability{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		for i := range slots {
			slots[i].ID = 0
			slots[i].MentorID = mentorID
		}
		return tx.Create(&slots).Error
	})
}

func (r *mentorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Mentor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mentorRepository) CountActiveSessions(ctx context.Context, mentorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Session{}).
		Where("mentor_id = ? AND status IN ?", mentorID, entity.ActiveSessionStatuses).
		Count(&count).Error
	return count, err
}

func (r *mentorRepository) Specialties(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&entity.MentorSpecialty{}).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}
