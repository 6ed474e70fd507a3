package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusUpcoming   = "upcoming"
	SessionStatusInProgress = "in-progress"
	SessionStatusLive       = "live"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)

const (
	SessionTypeOneOnOne = "one-on-one"
	SessionTypeGroup    = "group"
	SessionTypeWorkshop = "workshop"
)

// sessionStatusAliases pairs the scheduling vocabulary with the public one.
// Both values are stored as written.
var sessionStatusAliases = map[string]string{
	SessionStatusScheduled:  SessionStatusUpcoming,
	SessionStatusUpcoming:   SessionStatusScheduled,
	SessionStatusInProgress: SessionStatusLive,
	SessionStatusLive:       SessionStatusInProgress,
}

// ActiveSessionStatuses block deletion of the owning mentor or mentee.
var ActiveSessionStatuses = []string{
	SessionStatusScheduled,
	SessionStatusUpcoming,
	SessionStatusInProgress,
	SessionStatusLive,
}

func IsValidSessionStatus(status string) bool {
	switch status {
	case SessionStatusScheduled, SessionStatusUpcoming, SessionStatusInProgress,
		SessionStatusLive, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// EquivalentSessionStatuses returns status plus its alias, if any.
func EquivalentSessionStatuses(status string) []string {
	if alias, ok := sessionStatusAliases[status]; ok {
		return []string{status, alias}
	}
	return []string{status}
}

// AcceptsEnrollment reports whether the status still allows joining.
func AcceptsEnrollment(status string) bool {
	return status != SessionStatusCompleted && status != SessionStatusCancelled
}

type Session struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MentorID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"mentorId"`
	Mentor              *Mentor    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MenteeID            *uuid.UUID `gorm:"type:uuid;index" json:"menteeId"`
	Mentee              *Mentee    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Title               string     `gorm:"size:200;not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	ScheduledAt         time.Time  `gorm:"not null;index" json:"scheduledAt"`
	Duration            int        `gorm:"not null;default:60" json:"duration"`
	Status              string     `gorm:"size:20;not null;default:scheduled;index" json:"status"`
	Type                string     `gorm:"size:20;not null;default:one-on-one" json:"type"`
	MeetingURL          string     `gorm:"type:text" json:"meetingUrl"`
	Notes               string     `gorm:"type:text" json:"notes"`
	MaxParticipants     *int       `json:"maxParticipants"`
	CurrentParticipants int        `gorm:"not null;default:0" json:"currentParticipants"`
	IsPublic            bool       `gorm:"not null" json:"isPublic"`
	HasDocuments        bool       `gorm:"not null;default:false" json:"hasDocuments"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Requirements []SessionRequirement `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	Objectives   []SessionObjective   `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	Participants []SessionParticipant `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}

type SessionRequirement struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"size:255;not null"`
	Position  int       `gorm:"not null;default:0"`
}

type SessionObjective struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"size:255;not null"`
	Position  int       `gorm:"not null;default:0"`
}

type SessionParticipant struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_participant" json:"sessionId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_participant;index" json:"userId"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}
