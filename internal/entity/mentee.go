package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mentee struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Bio             string    `gorm:"type:text" json:"bio"`
	CurrentRole     string    `gorm:"column:current_position;size:160" json:"currentRole"`
	ExperienceLevel string    `gorm:"size:20;not null;default:beginner" json:"experienceLevel"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Goals     []MenteeGoal     `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"-"`
	Interests []MenteeInterest `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Mentee) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}

type MenteeGoal struct {
	ID       uint      `gorm:"primaryKey"`
	MenteeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"size:255;not null"`
	Position int       `gorm:"not null;default:0"`
}

type MenteeInterest struct {
	ID       uint      `gorm:"primaryKey"`
	MenteeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"size:100;not null"`
	Position int       `gorm:"not null;default:0"`
}
