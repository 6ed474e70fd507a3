package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	commonDto "anoa.com/mentoria/pkg/dto"
	"github.com/google/uuid"
)

type DocumentFilter struct {
	SessionID string `form:"sessionId" binding:"omitempty,uuid"`
	MentorID  string `form:"mentorId" binding:"omitempty,uuid"`
	Category  string `form:"category"`
	Search    string `form:"search"`
	commonDto.ListQuery
}

type CreateDocumentRequest struct {
	SessionID   string   `json:"sessionId" binding:"required,uuid"`
	MentorID    string   `json:"mentorId" binding:"required,uuid"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"omitempty,max=5000"`
	FileURL     string   `json:"fileUrl" binding:"required,url"`
	FileName    string   `json:"fileName" binding:"required,max=255"`
	FileType    string   `json:"fileType" binding:"required,max=100"`
	FileSize    int64    `json:"fileSize" binding:"omitempty,min=0"`
	Category    string   `json:"category" binding:"omitempty,max=50"`
	IsPublic    *bool    `json:"isPublic"`
	Tags        []string `json:"tags" binding:"omitempty,max=20,dive,max=60"`
}

// UpdateDocumentRequest merges into the stored document. Tags, when present,
// replace the stored set.
type UpdateDocumentRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	IsPublic    *bool    `json:"isPublic"`
	Tags        []string `json:"tags" binding:"omitempty,max=20,dive,max=60"`
}

type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

type DownloadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

type DocumentResponse struct {
	ID            uuid.UUID `json:"id"`
	SessionID     uuid.UUID `json:"sessionId"`
	MentorID      uuid.UUID `json:"mentorId"`
	MentorName    string    `json:"mentorName,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileURL       string    `json:"fileUrl"`
	FileName      string    `json:"fileName"`
	FileType      string    `json:"fileType"`
	FileSize      int64     `json:"fileSize"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	IsPublic      bool      `json:"isPublic"`
	ViewCount     int64     `json:"viewCount"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewDocumentResponse(d *entity.Document) DocumentResponse {
	res := DocumentResponse{
		ID:            d.ID,
		SessionID:     d.SessionID,
		MentorID:      d.MentorID,
		Title:         d.Title,
		Description:   d.Description,
		FileURL:       d.FileURL,
		FileName:      d.FileName,
		FileType:      d.FileType,
		FileSize:      d.FileSize,
		Category:      d.Category,
		Tags:          make([]string, 0, len(d.Tags)),
		IsPublic:      d.IsPublic,
		ViewCount:     d.ViewCount,
		DownloadCount: d.DownloadCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Mentor != nil {
		res.MentorName = d.Mentor.Name
	}
	for _, tag := range d.Tags {
		res.Tags = append(res.Tags, tag.Name)
	}
	return res
}
