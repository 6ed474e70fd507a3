package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/mentoria/internal/entity"
	menteeRepo "anoa.com/mentoria/internal/modules/mentee/repository"
	"anoa.com/mentoria/internal/modules/review/dto"
	"anoa.com/mentoria/internal/modules/review/repository"
	sessionRepo "anoa.com/mentoria/internal/modules/session/repository"
	userRepo "anoa.com/mentoria/internal/modules/user/repository"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errSessionNotFound = apperror.NotFound("Sessão não encontrada")

type ReviewService interface {
	Create(ctx context.Context, caller *entity.User, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	BySession(ctx context.Context, sessionID uuid.UUID) ([]dto.ReviewResponse, error)
	ByUser(ctx context.Context, userID uuid.UUID) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	repo        repository.ReviewRepository
	sessionRepo sessionRepo.SessionRepository
	menteeRepo  menteeRepo.MenteeRepository
	userRepo    userRepo.UserRepository
}

func NewReviewService(
	repo repository.ReviewRepository,
	sessionRepo sessionRepo.SessionRepository,
	menteeRepo menteeRepo.MenteeRepository,
	userRepo userRepo.UserRepository,
) ReviewService {
	return &reviewService{
		repo:        repo,
		sessionRepo: sessionRepo,
		menteeRepo:  menteeRepo,
		userRepo:    userRepo,
	}
}

func (s *reviewService) Create(ctx context.Context, caller *entity.User, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, apperror.Validation("ID da sessão inválido")
	}
	revieweeID, err := uuid.Parse(req.RevieweeID)
	if err != nil {
		return nil, apperror.Validation("ID do avaliado inválido")
	}
	if revieweeID == caller.ID {
		return nil, apperror.Validation("Você não pode avaliar a si mesmo")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.Status != entity.SessionStatusCompleted {
		return nil, apperror.Validation("Apenas sessões concluídas podem ser avaliadas")
	}

	reviewerOK, err := s.takesPart(ctx, session, caller.ID)
	if err != nil {
		return nil, err
	}
	if !reviewerOK {
		return nil, apperror.Forbidden("Apenas participantes da sessão podem avaliá-la")
	}
	revieweeOK, err := s.takesPart(ctx, session, revieweeID)
	if err != nil {
		return nil, err
	}
	if !revieweeOK {
		return nil, apperror.Validation("O avaliado não participou desta sessão")
	}

	review := &entity.Review{
		SessionID:           session.ID,
		ReviewerID:          caller.ID,
		RevieweeID:          revieweeID,
		Rating:              req.Rating,
		CommunicationRating: req.CommunicationRating,
		KnowledgeRating:     req.KnowledgeRating,
		HelpfulnessRating:   req.HelpfulnessRating,
		PunctualityRating:   req.PunctualityRating,
		Comment:             sanitize.Text(req.Comment),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrAlreadyReviewed) {
			return nil, apperror.Conflict("Você já avaliou esta sessão")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	review.Reviewer = caller
	res := dto.NewReviewResponse(review)
	return &res, nil
}

// takesPart reports whether userID is the session's mentor, its bound
// mentee, or an enrolled participant.
func (s *reviewService) takesPart(ctx context.Context, session *entity.Session, userID uuid.UUID) (bool, error) {
	if session.Mentor != nil && session.Mentor.OwnedBy(userID) {
		return true, nil
	}

	if session.MenteeID != nil {
		mentee, err := s.menteeRepo.FindByID(ctx, *session.MenteeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to find mentee: %w", err)
		}
		if mentee != nil && mentee.UserID == userID {
			return true, nil
		}
	}

	enrolled, err := s.sessionRepo.EnrolledIn(ctx, userID, []uuid.UUID{session.ID})
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled[session.ID], nil
}

func (s *reviewService) BySession(ctx context.Context, sessionID uuid.UUID) ([]dto.ReviewResponse, error) {
	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	reviews, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return toResponses(reviews), nil
}

func (s *reviewService) ByUser(ctx context.Context, userID uuid.UUID) ([]dto.ReviewResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Usuário não encontrado")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	reviews, err := s.repo.FindByReviewee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return toResponses(reviews), nil
}

func toResponses(reviews []*entity.Review) []dto.ReviewResponse {
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, dto.NewReviewResponse(review))
	}
	return items
}
