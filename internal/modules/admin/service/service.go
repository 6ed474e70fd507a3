package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/admin/dto"
	userDto "anoa.com/mentoria/internal/modules/user/dto"
	userRepo "anoa.com/mentoria/internal/modules/user/repository"
	userService "anoa.com/mentoria/internal/modules/user/service"
	"anoa.com/mentoria/pkg/apperror"
	commonDto "anoa.com/mentoria/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errSelfAction = apperror.Validation("Administradores não podem alterar a própria conta por aqui")

type AdminService interface {
	GetAllUsers(ctx context.Context, filter dto.UserFilter) (*commonDto.Page[userDto.UserResponse], error)
	UpdateRole(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateRoleRequest) (*userDto.UserResponse, error)
	DeleteUser(ctx context.Context, caller *entity.User, id uuid.UUID) error
}

type adminService struct {
	userRepo userRepo.UserRepository
	accounts userService.AuthService
}

// NewAdminService reuses the account service so admin deletions follow the
// same active-session guard as self-service ones.
func NewAdminService(userRepo userRepo.UserRepository, accounts userService.AuthService) AdminService {
	return &adminService{
		userRepo: userRepo,
		accounts: accounts,
	}
}

func (s *adminService) GetAllUsers(ctx context.Context, filter dto.UserFilter) (*commonDto.Page[userDto.UserResponse], error) {
	q := filter.ListQuery.Normalize()

	users, total, err := s.userRepo.FindAll(ctx, userRepo.Filter{
		Search:   filter.Search,
		Role:     filter.Role,
		UserType: filter.UserType,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]userDto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, *userDto.NewUserResponse(user))
	}
	page := commonDto.NewPage(items, total, q)
	return &page, nil
}

func (s *adminService) UpdateRole(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateRoleRequest) (*userDto.UserResponse, error) {
	if caller.ID == id {
		return nil, errSelfAction
	}

	if err := s.userRepo.UpdateRole(ctx, id, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Usuário não encontrado")
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.accounts.Me(ctx, id)
}

func (s *adminService) DeleteUser(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	if caller.ID == id {
		return errSelfAction
	}
	return s.accounts.DeleteAccount(ctx, id)
}
