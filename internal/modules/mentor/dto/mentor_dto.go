package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	commonDto "anoa.com/mentoria/pkg/dto"
	"github.com/google/uuid"
)

type MentorFilter struct {
	Search    string   `form:"search"`
	Specialty string   `form:"specialty"`
	MinRating *float64 `form:"minRating" binding:"omitempty,min=0,max=5"`
	commonDto.ListQuery
}

type CreateMentorRequest struct {
	Name           string   `json:"name" binding:"omitempty,max=120"`
	Title          string   `json:"title" binding:"omitempty,max=160"`
	Company        string   `json:"company" binding:"omitempty,max=160"`
	Bio            string   `json:"bio" binding:"omitempty,max=5000"`
	Experience     *int     `json:"experience" binding:"omitempty,min=0,max=100"`
	HourlyRate     *float64 `json:"hourlyRate" binding:"omitempty,min=0,max=10000"`
	IsAvailable    *bool    `json:"isAvailable"`
	Specialties    []string `json:"specialties" binding:"omitempty,max=20,dive,max=100"`
	Languages      []string `json:"languages" binding:"omitempty,max=10,dive,max=60"`
	Certifications []string `json:"certifications" binding:"omitempty,max=50,dive,max=200"`
}

// UpdateMentorRequest merges into the stored profile. A list that is present
// replaces the stored one entirely.
type UpdateMentorRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Title          *string  `json:"title" binding:"omitempty,max=160"`
	Company        *string  `json:"company" binding:"omitempty,max=160"`
	Bio            *string  `json:"bio" binding:"omitempty,max=5000"`
	Avatar         *string  `json:"avatar" binding:"omitempty,max=8"`
	Experience     *int     `json:"experience" binding:"omitempty,min=0,max=100"`
	HourlyRate     *float64 `json:"hourlyRate" binding:"omitempty,min=0,max=10000"`
	IsAvailable    *bool    `json:"isAvailable"`
	Specialties    []string `json:"specialties" binding:"omitempty,max=20,dive,max=100"`
	Languages      []string `json:"languages" binding:"omitempty,max=10,dive,max=60"`
	Certifications []string `json:"certifications" binding:"omitempty,max=50,dive,max=200"`
}

type AvailabilitySlot struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Timezone  string `json:"timezone" binding:"omitempty,max=64"`
}

type ReplaceAvailabilityRequest struct {
	Availability []AvailabilitySlot `json:"availability" binding:"max=50,dive"`
}

type AvailabilityResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Timezone  string `json:"timezone"`
}

type MentorResponse struct {
	ID             uuid.UUID              `json:"id"`
	UserID         *uuid.UUID             `json:"userId"`
	Name           string                 `json:"name"`
	Title          string                 `json:"title"`
	Company        string                 `json:"company"`
	Bio            string                 `json:"bio"`
	Avatar         string                 `json:"avatar"`
	Experience     int                    `json:"experience"`
	HourlyRate     float64                `json:"hourlyRate"`
	Rating         float64                `json:"rating"`
	TotalSessions  int                    `json:"totalSessions"`
	IsAvailable    bool                   `json:"isAvailable"`
	Specialties    []string               `json:"specialties"`
	Languages      []string               `json:"languages"`
	Certifications []string               `json:"certifications"`
	Availability   []AvailabilityResponse `json:"availability"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func NewMentorResponse(m *entity.Mentor) MentorResponse {
	res := MentorResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		Name:           m.Name,
		Title:          m.Title,
		Company:        m.Company,
		Bio:            m.Bio,
		Avatar:         m.Avatar,
		Experience:     m.Experience,
		HourlyRate:     m.HourlyRate,
		Rating:         m.Rating,
		TotalSessions:  m.TotalSessions,
		IsAvailable:    m.IsAvailable,
		Specialties:    make([]string, 0, len(m.Specialties)),
		Languages:      make([]string, 0, len(m.Languages)),
		Certifications: make([]string, 0, len(m.Certifications)),
		Availability:   make([]AvailabilityResponse, 0, len(m.Availability)),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, s := range m.Specialties {
		res.Specialties = append(res.Specialties, s.Name)
	}
	for _, l := range m.Languages {
		res.Languages = append(res.Languages, l.Name)
	}
	for _, c := range m.Certifications {
		res.Certifications = append(res.Certifications, c.Name)
	}
	for _, a := range m.Availability {
		res.Availability = append(res.Availability, AvailabilityResponse{
			DayOfWeek: a.DayOfWeek,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Timezone:  a.Timezone,
		})
	}
	return res
}
