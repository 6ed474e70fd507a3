package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/goal/dto"
	"anoa.com/mentoria/internal/modules/goal/repository"
	"anoa.com/mentoria/pkg/apperror"
	commonDto "anoa.com/mentoria/pkg/dto"
	"anoa.com/mentoria/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errGoalNotFound = apperror.NotFound("Meta não encontrada")
	errNotOwner     = apperror.Forbidden("Você não tem permissão para acessar esta meta")
)

type GoalService interface {
	GetAll(ctx context.Context, caller *entity.User, filter dto.GoalFilter) (*commonDto.Page[dto.GoalResponse], error)
	GetByID(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.GoalResponse, error)
	Create(ctx context.Context, caller *entity.User, req dto.CreateGoalRequest) (*dto.GoalResponse, error)
	Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateGoalRequest) (*dto.GoalResponse, error)
	Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error
}

type goalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) GoalService {
	return &goalService{repo: repo}
}

func (s *goalService) GetAll(ctx context.Context, caller *entity.User, filter dto.GoalFilter) (*commonDto.Page[dto.GoalResponse], error) {
	q := filter.ListQuery.Normalize()

	userID := caller.ID
	if filter.UserID != "" {
		id, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, apperror.Validation("ID do usuário inválido")
		}
		if id != caller.ID && !caller.IsAdmin() {
			return nil, errNotOwner
		}
		userID = id
	}

	goals, total, err := s.repo.FindAll(ctx, repository.Filter{
		UserID:   userID,
		Status:   filter.Status,
		Category: filter.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	items := make([]dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		items = append(items, dto.NewGoalResponse(goal))
	}
	page := commonDto.NewPage(items, total, q)
	return &page, nil
}

func (s *goalService) GetByID(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.GoalResponse, error) {
	goal, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewGoalResponse(goal)
	return &res, nil
}

func (s *goalService) Create(ctx context.Context, caller *entity.User, req dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	goal := &entity.Goal{
		UserID:      caller.ID,
		Title:       sanitize.Text(req.Title),
		Description: sanitize.Text(req.Description),
		Category:    req.Category,
		Priority:    entity.GoalPriorityMedium,
		Status:      entity.GoalStatusNotStarted,
		TargetDate:  req.TargetDate,
	}
	if goal.Title == "" {
		return nil, apperror.Validation("Título é obrigatório")
	}
	if req.Priority != "" {
		goal.Priority = req.Priority
	}
	if req.Status != "" {
		goal.Status = req.Status
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	res := dto.NewGoalResponse(goal)
	return &res, nil
}

func (s *goalService) Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	goal, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := sanitize.Text(*req.Title)
		if title == "" {
			return nil, apperror.Validation("Título é obrigatório")
		}
		goal.Title = title
	}
	if req.Description != nil {
		goal.Description = sanitize.Text(*req.Description)
	}
	if req.Category != nil {
		goal.Category = *req.Category
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	switch {
	case req.Status != nil:
		goal.Status = *req.Status
	case req.Progress != nil && *req.Progress == 100:
		goal.Status = entity.GoalStatusCompleted
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	res := dto.NewGoalResponse(goal)
	return &res, nil
}

func (s *goalService) Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	goal, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, goal.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errGoalNotFound
		}
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *goalService) findOwned(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Goal, error) {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errGoalNotFound
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.UserID != caller.ID && !caller.IsAdmin() {
		return nil, errNotOwner
	}
	return goal, nil
}
