package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/mentee/dto"
	"anoa.com/mentoria/internal/modules/mentee/repository"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errMenteeNotFound = apperror.NotFound("Aprendiz não encontrado")

type MenteeService interface {
	GetMe(ctx context.Context, caller *entity.User) (*dto.MenteeResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MenteeResponse, error)
	Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateMenteeRequest) (*dto.MenteeResponse, error)
	Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error
}

type menteeService struct {
	repo repository.MenteeRepository
}

func NewMenteeService(repo repository.MenteeRepository) MenteeService {
	return &menteeService{repo: repo}
}

func (s *menteeService) GetMe(ctx context.Context, caller *entity.User) (*dto.MenteeResponse, error) {
	mentee, err := s.repo.FindByUserID(ctx, caller.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return dto.NewMenteeResponse(mentee), nil
}

func (s *menteeService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MenteeResponse, error) {
	mentee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return dto.NewMenteeResponse(mentee), nil
}

func (s *menteeService) Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateMenteeRequest) (*dto.MenteeResponse, error) {
	mentee, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := sanitize.Text(*req.Name); name != "" {
			mentee.Name = name
		}
	}
	if req.Bio != nil {
		mentee.Bio = sanitize.Text(*req.Bio)
	}
	if req.CurrentRole != nil {
		mentee.CurrentRole = sanitize.Text(*req.CurrentRole)
	}
	if req.ExperienceLevel != nil {
		mentee.ExperienceLevel = *req.ExperienceLevel
	}

	replaceGoals := req.Goals != nil
	if replaceGoals {
		mentee.Goals = nil
		for _, text := range sanitize.List(req.Goals) {
			mentee.Goals = append(mentee.Goals, entity.MenteeGoal{Text: text})
		}
	}
	replaceInterests := req.Interests != nil
	if replaceInterests {
		mentee.Interests = nil
		for _, text := range sanitize.List(req.Interests) {
			mentee.Interests = append(mentee.Interests, entity.MenteeInterest{Text: text})
		}
	}

	if err := s.repo.Update(ctx, mentee, replaceGoals, replaceInterests); err != nil {
		return nil, fmt.Errorf("failed to update mentee: %w", err)
	}

	return s.GetByID(ctx, mentee.ID)
}

func (s *menteeService) Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	mentee, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	active, err := s.repo.CountActiveSessions(ctx, mentee.ID)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	if active > 0 {
		return apperror.Conflict("Não é possível excluir aprendiz com sessões ativas")
	}

	if err := s.repo.Delete(ctx, mentee.ID); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *menteeService) findOwned(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Mentee, error) {
	mentee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !caller.IsAdmin() && mentee.UserID != caller.ID {
		return nil, apperror.Forbidden("Você não tem permissão para alterar este perfil")
	}
	return mentee, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errMenteeNotFound
	}
	return fmt.Errorf("failed to load mentee: %w", err)
}
