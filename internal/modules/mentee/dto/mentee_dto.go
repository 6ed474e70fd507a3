package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
)

type UpdateMenteeRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Bio             *string  `json:"bio" binding:"omitempty,max=5000"`
	CurrentRole     *string  `json:"currentRole" binding:"omitempty,max=160"`
	ExperienceLevel *string  `json:"experienceLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	Goals           []string `json:"goals" binding:"omitempty,max=20,dive,max=255"`
	Interests       []string `json:"interests" binding:"omitempty,max=20,dive,max=100"`
}

type MenteeResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	CurrentRole     string    `json:"currentRole"`
	ExperienceLevel string    `json:"experienceLevel"`
	Goals           []string  `json:"goals"`
	Interests       []string  `json:"interests"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewMenteeResponse(m *entity.Mentee) *MenteeResponse {
	res := &MenteeResponse{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Bio:             m.Bio,
		CurrentRole:     m.CurrentRole,
		ExperienceLevel: m.ExperienceLevel,
		Goals:           make([]string, 0, len(m.Goals)),
		Interests:       make([]string, 0, len(m.Interests)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, g := range m.Goals {
		res.Goals = append(res.Goals, g.Text)
	}
	for _, i := range m.Interests {
		res.Interests = append(res.Interests, i.Text)
	}
	return res
}
