package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GoalPriorityLow    = "low"
	GoalPriorityMedium = "medium"
	GoalPriorityHigh   = "high"
)

const (
	GoalStatusNotStarted = "not-started"
	GoalStatusInProgress = "in-progress"
	GoalStatusCompleted  = "completed"
	GoalStatusPaused     = "paused"
)

type Goal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:20;not null" json:"category"`
	Priority    string     `gorm:"size:10;not null;default:medium" json:"priority"`
	Status      string     `gorm:"size:20;not null;default:not-started" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	TargetDate  *time.Time `json:"targetDate"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID, err = uuid.NewV7()
	}
	return
}
