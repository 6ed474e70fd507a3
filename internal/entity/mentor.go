package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mentor struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"userId"`
	User          *User      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Name          string     `gorm:"size:120;not null" json:"name"`
	Title         string     `gorm:"size:160" json:"title"`
	Company       string     `gorm:"size:160" json:"company"`
	Bio           string     `gorm:"type:text" json:"bio"`
	Avatar        string     `gorm:"size:8" json:"avatar"`
	Experience    int        `gorm:"not null;default:0" json:"experience"`
	HourlyRate    float64    `gorm:"not null;default:0" json:"hourlyRate"`
	Rating        float64    `gorm:"not null;default:0;index" json:"rating"`
	TotalSessions int        `gorm:"not null;default:0" json:"totalSessions"`
	IsAvailable   bool       `gorm:"not null" json:"isAvailable"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	Specialties    []MentorSpecialty     `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"-"`
	Languages      []MentorLanguage      `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"-"`
	Certifications []MentorCertification `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"-"`
	Availability   []MentorAvailability  `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Mentor) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}

// OwnedBy reports whether the profile is linked to userID.
func (m *Mentor) OwnedBy(userID uuid.UUID) bool {
	return m.UserID != nil && *m.UserID == userID
}

type MentorSpecialty struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	MentorID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name     string    `gorm:"size:100;not null;index" json:"name"`
	Position int       `gorm:"not null;default:0" json:"-"`
}

type MentorLanguage struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	MentorID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name     string    `gorm:"size:60;not null" json:"name"`
	Position int       `gorm:"not null;default:0" json:"-"`
}

type MentorCertification struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	MentorID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name     string    `gorm:"size:200;not null" json:"name"`
	Position int       `gorm:"not null;default:0" json:"-"`
}

func (MentorAvailability) TableName() string {
	return "mentor_availability"
}

type MentorAvailability struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MentorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	DayOfWeek int       `gorm:"not null" json:"dayOfWeek"` // 0 = Sunday
	StartTime string    `gorm:"size:5;not null" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" json:"endTime"`
	Timezone  string    `gorm:"size:64;not null;default:America/Sao_Paulo" json:"timezone"`
}
