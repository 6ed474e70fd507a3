package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEnrollmentClosed = errors.New("session does not accept enrollment")
	ErrSessionEnded     = errors.New("session is completed or cancelled")
	ErrAlreadyEnrolled  = errors.New("user already enrolled")
	ErrSessionFull      = errors.New("session is full")
	ErrNotEnrolled      = errors.New("user not enrolled")
	ErrCapacityTooLow   = errors.New("capacity below current participants")
)

type Filter struct {
	Statuses []string
	MentorID *uuid.UUID
	Type     string
	Search   string
	Upcoming bool
	Now      time.Time
	// ViewerID limits private sessions to the ones the viewer's mentor
	// profile owns. Nil hides all private sessions; AllVisible skips the check.
	ViewerID   *uuid.UUID
	AllVisible bool
	Limit      int
	Offset     int
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context, filter Filter) ([]*entity.Session, int64, error)
	FindEnrolled(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error)
	// EnrolledIn returns the subset of sessionIDs userID participates in.
	EnrolledIn(ctx context.Context, userID uuid.UUID, sessionIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	Update(ctx context.Context, session *entity.Session, replaceRequirements, replaceObjectives bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Join(ctx context.Context, sessionID, userID uuid.UUID) error
	Leave(ctx context.Context, sessionID, userID uuid.UUID) error
	Participants(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionParticipant, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC").Order("id ASC")
	}
	return db.
		Preload("Mentor").
		Preload("Requirements", byPosition).
		Preload("Objectives", byPosition)
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return err
		}
		if err := createChildren(tx, session, true, true); err != nil {
			return err
		}
		return syncTotalSessions(tx, session.MentorID)
	})
}

// syncTotalSessions sets mentors.total_sessions to the number of completed
// sessions the mentor owns.
func syncTotalSessions(tx *gorm.DB, mentorID uuid.UUID) error {
	completed := tx.Model(&entity.Session{}).Select("COUNT(*)").
		Where("mentor_id = ? AND status = ?", mentorID, entity.SessionStatusCompleted)
	return tx.Model(&entity.Mentor{}).Where("id = ?", mentorID).
		UpdateColumn("total_sessions", completed).Error
}

func createChildren(tx *gorm.DB, session *entity.Session, requirements, objectives bool) error {
	if requirements && len(session.Requirements) > 0 {
		for i := range session.Requirements {
			session.Requirements[i].ID = 0
			session.Requirements[i].SessionID = session.ID
			session.Requirements[i].Position = i
		}
		if err := tx.Create(&session.Requirements).Error; err != nil {
			return err
		}
	}
	if objectives && len(session.Objectives) > 0 {
		for i := range session.Objectives {
			session.Objectives[i].ID = 0
			session.Objectives[i].SessionID = session.ID
			session.Objectives[i].Position = i
		}
		if err := tx.Create(&session.Objectives).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	if err := r.db.WithContext(ctx).Scopes(withDetails).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context, filter Filter) ([]*entity.Session, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if len(filter.Statuses) > 0 {
			db = db.Where("sessions.status IN ?", filter.Statuses)
		}
		if filter.MentorID != nil {
			db = db.Where("sessions.mentor_id = ?", *filter.MentorID)
		}
		if filter.Type != "" {
			db = db.Where("sessions.type = ?", filter.Type)
		}
		if filter.Search != "" {
			like := "%" + strings.ToLower(filter.Search) + "%"
			db = db.Where("LOWER(sessions.title) LIKE ? OR LOWER(sessions.description) LIKE ?", like, like)
		}
		if filter.Upcoming {
			db = db.Where("sessions.scheduled_at >= ? AND sessions.status IN ?", filter.Now,
				[]string{entity.SessionStatusScheduled, entity.SessionStatusUpcoming})
		}
		if !filter.AllVisible {
			if filter.ViewerID != nil {
				db = db.Where("sessions.is_public = ? OR sessions.mentor_id IN (SELECT id FROM mentors WHERE user_id = ?)",
					true, *filter.ViewerID)
			} else {
				db = db.Where("sessions.is_public = ?", true)
			}
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Session{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []*entity.Session
	err := r.db.WithContext(ctx).
		Scopes(scope, withDetails).
		Order("sessions.scheduled_at ASC").
		Order("sessions.created_at ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *sessionRepository) FindEnrolled(ctx context.Context, userID uuid.UUID) ([]*entity.Session, error) {
	var sessions []*entity.Session
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Joins("JOIN session_participants sp ON sp.session_id = sessions.id").
		Where("sp.user_id = ?", userID).
		Order("sessions.scheduled_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) EnrolledIn(ctx context.Context, userID uuid.UUID, sessionIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	enrolled := make(map[uuid.UUID]bool, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return enrolled, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.SessionParticipant{}).
		Where("user_id = ? AND session_id IN ?", userID, sessionIDs).
		Pluck("session_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		enrolled[id] = true
	}
	return enrolled, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session, replaceRequirements, replaceObjectives bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(session).Omit(clause.Associations)
		if session.MaxParticipants != nil {
			query = query.Where("current_participants <= ?", *session.MaxParticipants)
		}
		res := query.
			Select("Title", "Description", "ScheduledAt", "Duration", "Status", "Type",
				"MeetingURL", "Notes", "MaxParticipants", "IsPublic", "UpdatedAt").
			Updates(session)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCapacityTooLow
		}

		if replaceRequirements {
			if err := tx.Where("session_id = ?", session.ID).Delete(&entity.SessionRequirement{}).Error; err != nil {
				return err
			}
		}
		if replaceObjectives {
			if err := tx.Where("session_id = ?", session.ID).Delete(&entity.SessionObjective{}).Error; err != nil {
				return err
			}
		}
		if err := createChildren(tx, session, replaceRequirements, replaceObjectives); err != nil {
			return err
		}
		return syncTotalSessions(tx, session.MentorID)
	})
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session entity.Session
		if err := tx.Select("id", "mentor_id").First(&session, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Session{}, "id = ?", id).Error; err != nil {
			return err
		}
		return syncTotalSessions(tx, session.MentorID)
	})
}

// Join enrolls userID. The counter is bumped by a conditional update so that
// concurrent joins cannot overshoot max_participants.
func (r *sessionRepository) Join(ctx context.Context, sessionID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session entity.Session
		if err := tx.Select("id", "status", "max_participants").First(&session, "id = ?", sessionID).Error; err != nil {
			return err
		}
		if session.MaxParticipants == nil || *session.MaxParticipants <= 0 {
			return ErrEnrollmentClosed
		}
		if !entity.AcceptsEnrollment(session.Status) {
			return ErrSessionEnded
		}

		var existing int64
		if err := tx.Model(&entity.SessionParticipant{}).
			Where("session_id = ? AND user_id = ?", sessionID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		res := tx.Model(&entity.Session{}).
			Where("id = ? AND max_participants IS NOT NULL AND current_participants < max_participants", sessionID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionFull
		}

		err := tx.Create(&entity.SessionParticipant{SessionID: sessionID, UserID: userID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyEnrolled
		}
		return err
	})
}

func (r *sessionRepository) Leave(ctx context.Context, sessionID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).Delete(&entity.SessionParticipant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotEnrolled
		}

		return tx.Model(&entity.Session{}).
			Where("id = ? AND current_participants > 0", sessionID).
			UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).Error
	})
}

func (r *sessionRepository) Participants(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionParticipant, error) {
	var participants []entity.SessionParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("session_id = ?", sessionID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}
