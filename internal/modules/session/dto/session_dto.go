package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	commonDto "anoa.com/mentoria/pkg/dto"
	"github.com/google/uuid"
)

type SessionFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=scheduled upcoming in-progress live completed cancelled"`
	MentorID string `form:"mentorId" binding:"omitempty,uuid"`
	Type     string `form:"type" binding:"omitempty,oneof=one-on-one group workshop"`
	Search   string `form:"search"`
	Upcoming bool   `form:"upcoming"`
	commonDto.ListQuery
}

type CreateSessionRequest struct {
	MentorID        string     `json:"mentorId" binding:"required,uuid"`
	MenteeID        *string    `json:"menteeId" binding:"omitempty,uuid"`
	Title           string     `json:"title" binding:"required,max=200"`
	Description     string     `json:"description" binding:"omitempty,max=10000"`
	ScheduledAt     *time.Time `json:"scheduledAt" binding:"required"`
	Duration        *int       `json:"duration" binding:"omitempty,min=1,max=1440"`
	Status          string     `json:"status" binding:"omitempty,oneof=scheduled upcoming in-progress live completed cancelled"`
	Type            string     `json:"type" binding:"omitempty,oneof=one-on-one group workshop"`
	MeetingURL      string     `json:"meetingUrl" binding:"omitempty,max=2048"`
	Notes           string     `json:"notes" binding:"omitempty,max=10000"`
	MaxParticipants *int       `json:"maxParticipants" binding:"omitempty,min=0,max=10000"`
	IsPublic        *bool      `json:"isPublic"`
	Requirements    []string   `json:"requirements" binding:"omitempty,max=30,dive,max=255"`
	Objectives      []string   `json:"objectives" binding:"omitempty,max=30,dive,max=255"`
}

// UpdateSessionRequest merges into the stored session; lists that are
// present replace the stored ones.
type UpdateSessionRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string    `json:"description" binding:"omitempty,max=10000"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	Duration        *int       `json:"duration" binding:"omitempty,min=1,max=1440"`
	Status          *string    `json:"status" binding:"omitempty,oneof=scheduled upcoming in-progress live completed cancelled"`
	Type            *string    `json:"type" binding:"omitempty,oneof=one-on-one group workshop"`
	MeetingURL      *string    `json:"meetingUrl" binding:"omitempty,max=2048"`
	Notes           *string    `json:"notes" binding:"omitempty,max=10000"`
	MaxParticipants *int       `json:"maxParticipants" binding:"omitempty,min=0,max=10000"`
	IsPublic        *bool      `json:"isPublic"`
	Requirements    []string   `json:"requirements" binding:"omitempty,max=30,dive,max=255"`
	Objectives      []string   `json:"objectives" binding:"omitempty,max=30,dive,max=255"`
}

type MentorSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Title  string    `json:"title"`
	Avatar string    `json:"avatar"`
	Rating float64   `json:"rating"`
}

type SessionResponse struct {
	ID                  uuid.UUID      `json:"id"`
	MentorID            uuid.UUID      `json:"mentorId"`
	MenteeID            *uuid.UUID     `json:"menteeId"`
	Mentor              *MentorSummary `json:"mentor,omitempty"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	ScheduledAt         time.Time      `json:"scheduledAt"`
	Duration            int            `json:"duration"`
	Status              string         `json:"status"`
	Type                string         `json:"type"`
	MeetingURL          string         `json:"meetingUrl"`
	Notes               string         `json:"notes"`
	MaxParticipants     *int           `json:"maxParticipants"`
	CurrentParticipants int            `json:"currentParticipants"`
	IsPublic            bool           `json:"isPublic"`
	HasDocuments        bool           `json:"hasDocuments"`
	Requirements        []string       `json:"requirements"`
	Objectives          []string       `json:"objectives"`
	IsEnrolled          *bool          `json:"isEnrolled,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

type ParticipantResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	JoinedAt time.Time `json:"joinedAt"`
}

func NewSessionResponse(s *entity.Session) SessionResponse {
	res := SessionResponse{
		ID:                  s.ID,
		MentorID:            s.MentorID,
		MenteeID:            s.MenteeID,
		Title:               s.Title,
		Description:         s.Description,
		ScheduledAt:         s.ScheduledAt,
		Duration:            s.Duration,
		Status:              s.Status,
		Type:                s.Type,
		MeetingURL:          s.MeetingURL,
		Notes:               s.Notes,
		MaxParticipants:     s.MaxParticipants,
		CurrentParticipants: s.CurrentParticipants,
		IsPublic:            s.IsPublic,
		HasDocuments:        s.HasDocuments,
		Requirements:        make([]string, 0, len(s.Requirements)),
		Objectives:          make([]string, 0, len(s.Objectives)),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.Mentor != nil {
		res.Mentor = &MentorSummary{
			ID:     s.Mentor.ID,
			Name:   s.Mentor.Name,
			Title:  s.Mentor.Title,
			Avatar: s.Mentor.Avatar,
			Rating: s.Mentor.Rating,
		}
	}
	for _, r := range s.Requirements {
		res.Requirements = append(res.Requirements, r.Text)
	}
	for _, o := range s.Objectives {
		res.Objectives = append(res.Objectives, o.Text)
	}
	return res
}
