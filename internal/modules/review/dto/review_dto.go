package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	SessionID           string `json:"sessionId" binding:"required,uuid"`
	RevieweeID          string `json:"revieweeId" binding:"required,uuid"`
	Rating              int    `json:"rating" binding:"required,min=1,max=5"`
	CommunicationRating int    `json:"communicationRating" binding:"required,min=1,max=5"`
	KnowledgeRating     int    `json:"knowledgeRating" binding:"required,min=1,max=5"`
	HelpfulnessRating   int    `json:"helpfulnessRating" binding:"required,min=1,max=5"`
	PunctualityRating   int    `json:"punctualityRating" binding:"required,min=1,max=5"`
	Comment             string `json:"comment" binding:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID                  uuid.UUID `json:"id"`
	SessionID           uuid.UUID `json:"sessionId"`
	ReviewerID          uuid.UUID `json:"reviewerId"`
	ReviewerName        string    `json:"reviewerName,omitempty"`
	ReviewerAvatar      string    `json:"reviewerAvatar,omitempty"`
	RevieweeID          uuid.UUID `json:"revieweeId"`
	Rating              int       `json:"rating"`
	CommunicationRating int       `json:"communicationRating"`
	KnowledgeRating     int       `json:"knowledgeRating"`
	HelpfulnessRating   int       `json:"helpfulnessRating"`
	PunctualityRating   int       `json:"punctualityRating"`
	Comment             string    `json:"comment"`
	CreatedAt           time.Time `json:"createdAt"`
}

func NewReviewResponse(r *entity.Review) ReviewResponse {
	res := ReviewResponse{
		ID:                  r.ID,
		SessionID:           r.SessionID,
		ReviewerID:          r.ReviewerID,
		RevieweeID:          r.RevieweeID,
		Rating:              r.Rating,
		CommunicationRating: r.CommunicationRating,
		KnowledgeRating:     r.KnowledgeRating,
		HelpfulnessRating:   r.HelpfulnessRating,
		PunctualityRating:   r.PunctualityRating,
		Comment:             r.Comment,
		CreatedAt:           r.CreatedAt,
	}
	if r.Reviewer != nil {
		res.ReviewerName = r.Reviewer.Name
		res.ReviewerAvatar = r.Reviewer.Avatar
	}
	return res
}
