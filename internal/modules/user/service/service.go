package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/user/dto"
	"anoa.com/mentoria/internal/modules/user/repository"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultMentorLanguage = "Português"

var (
	errInvalidCredentials = apperror.Unauthorized("Credenciais inválidas")
	errEmailTaken         = apperror.Conflict("Email já cadastrado")
	errUserNotFound       = apperror.NotFound("Usuário não encontrado")
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	repo   repository.UserRepository
	tokens *token.Manager
	cost   int
}

func NewAuthService(repo repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("Nome é obrigatório")
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        req.Email,
		PasswordHash: string(hash),
		UserType:     req.UserType,
		Avatar:       entity.Initials(name),
	}

	var (
		mentor *entity.Mentor
		mentee *entity.Mentee
	)
	if req.UserType == entity.UserTypeMentor {
		user.Role = entity.RoleMentor
		mentor = &entity.Mentor{
			Name:        name,
			Avatar:      user.Avatar,
			IsAvailable: true,
			Languages:   []entity.MentorLanguage{{Name: DefaultMentorLanguage}},
		}
	} else {
		user.Role = entity.RoleUser
		mentee = &entity.Mentee{
			Name:            name,
			ExperienceLevel: "beginner",
		}
	}

	if err := s.repo.CreateAccount(ctx, user, mentor, mentee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := dto.NewUserResponse(user)
	if mentor != nil {
		resp.MentorID = &mentor.ID
	}
	if mentee != nil {
		resp.MenteeID = &mentee.ID
	}
	return s.authResponse(user, resp)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	resp, err := s.withProfiles(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.authResponse(user, resp)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, user)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.repo.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, errEmailTaken
		}
		user.Email = *req.Email
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Validation("Nome é obrigatório")
		}
		user.Name = name
		user.Avatar = entity.Initials(name)
	}

	if req.ProfileImageURL != nil {
		if *req.ProfileImageURL == "" {
			user.ProfileImageURL = nil
		} else {
			user.ProfileImageURL = req.ProfileImageURL
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return s.withProfiles(ctx, user)
}

func (s *authService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.UserType == entity.UserTypeMentor {
		active, err := s.repo.CountActiveMentorSessions(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count sessions: %w", err)
		}
		if active > 0 {
			return apperror.Conflict("Não é possível excluir a conta com sessões ativas")
		}
	}

	if err := s.repo.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errUserNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *authService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *authService) withProfiles(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	mentorID, menteeID, err := s.repo.ProfileIDs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	resp := dto.NewUserResponse(user)
	resp.MentorID = mentorID
	resp.MenteeID = menteeID
	return resp, nil
}

func (s *authService) authResponse(user *entity.User, resp *dto.UserResponse) (*dto.AuthResponse, error) {
	signed, err := s.tokens.Issue(token.Subject{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		UserType: user.UserType,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: resp, Token: signed}, nil
}
