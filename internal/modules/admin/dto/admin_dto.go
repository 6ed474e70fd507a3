package dto

import commonDto "anoa.com/mentoria/pkg/dto"

type UserFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin user mentor"`
	UserType string `form:"userType" binding:"omitempty,oneof=mentor aprendiz"`
	commonDto.ListQuery
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user mentor"`
}
