package dto

import (
	"time"

	"anoa.com/mentoria/internal/entity"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	UserType string `json:"userType" binding:"required,oneof=mentor aprendiz"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest only touches the fields that are present.
type UpdateProfileRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=120"`
	Email           *string `json:"email" binding:"omitempty,email,max=255"`
	ProfileImageURL *string `json:"profileImageUrl" binding:"omitempty,max=2048"`
}

type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	UserType        string     `json:"userType"`
	Avatar          string     `json:"avatar"`
	ProfileImageURL *string    `json:"profileImageUrl,omitempty"`
	MentorID        *uuid.UUID `json:"mentorId,omitempty"`
	MenteeID        *uuid.UUID `json:"menteeId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		UserType:        u.UserType,
		Avatar:          u.Avatar,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
	}
}
