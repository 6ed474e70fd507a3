package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_session_reviewer" json:"sessionId"`
	Session             *Session  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReviewerID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_session_reviewer" json:"reviewerId"`
	Reviewer            *User     `gorm:"constraint:OnDelete:CASCADE" json:"reviewer,omitempty"`
	RevieweeID          uuid.UUID `gorm:"type:uuid;not null;index" json:"revieweeId"`
	Reviewee            *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rating              int       `gorm:"not null" json:"rating"`
	CommunicationRating int       `gorm:"not null" json:"communicationRating"`
	KnowledgeRating     int       `gorm:"not null" json:"knowledgeRating"`
	HelpfulnessRating   int       `gorm:"not null" json:"helpfulnessRating"`
	PunctualityRating   int       `gorm:"not null" json:"punctualityRating"`
	Comment             string    `gorm:"type:text" json:"comment"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
