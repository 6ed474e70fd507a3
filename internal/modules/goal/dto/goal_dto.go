package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	commonDto "anoa.com/mentoria/pkg/dto"
	"github.com/google/uuid"
)

type GoalFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=not-started in-progress completed paused"`
	Category string `form:"category" binding:"omitempty,oneof=technical career soft-skills leadership personal other"`
	// UserID lets admins list another user's goals.
	UserID string `form:"userId" binding:"omitempty,uuid"`
	commonDto.ListQuery
}

type CreateGoalRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"omitempty,max=5000"`
	Category    string     `json:"category" binding:"required,oneof=technical career soft-skills leadership personal other"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" binding:"omitempty,oneof=not-started in-progress completed paused"`
	Progress    *int       `json:"progress" binding:"omitempty,min=0,max=100"`
	TargetDate  *time.Time `json:"targetDate"`
}

type UpdateGoalRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Category    *string    `json:"category" binding:"omitempty,oneof=technical career soft-skills leadership personal other"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string    `json:"status" binding:"omitempty,oneof=not-started in-progress completed paused"`
	Progress    *int       `json:"progress" binding:"omitempty,min=0,max=100"`
	TargetDate  *time.Time `json:"targetDate"`
}

type GoalResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	TargetDate  *time.Time `json:"targetDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Priority:    g.Priority,
		Status:      g.Status,
		Progress:    g.Progress,
		TargetDate:  g.TargetDate,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
