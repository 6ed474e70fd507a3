package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID     uuid.UUID `gorm:"type:uuid;not null;index" json:"sessionId"`
	Session       *Session  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MentorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"mentorId"`
	Mentor        *Mentor   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	FileURL       string    `gorm:"type:text;not null" json:"fileUrl"`
	FileName      string    `gorm:"size:255;not null" json:"fileName"`
	FileType      string    `gorm:"size:100;not null" json:"fileType"`
	FileSize      int64     `gorm:"not null;default:0" json:"fileSize"`
	Category      string    `gorm:"size:50" json:"category"`
	IsPublic      bool      `gorm:"not null;default:false" json:"isPublic"`
	ViewCount     int64     `gorm:"not null;default:0" json:"viewCount"`
	DownloadCount int64     `gorm:"not null;default:0" json:"downloadCount"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Tags []DocumentTag `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID, err = uuid.NewV7()
	}
	return
}

type DocumentTag struct {
	ID         uint      `gorm:"primaryKey"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"size:60;not null"`
}
