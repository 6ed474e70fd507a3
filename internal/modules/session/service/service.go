package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/mentoria/internal/entity"
	menteeRepo "anoa.com/mentoria/internal/modules/mentee/repository"
	mentorRepo "anoa.com/mentoria/internal/modules/mentor/repository"
	"anoa.com/mentoria/internal/modules/session/dto"
	"anoa.com/mentoria/internal/modules/session/repository"
	"anoa.com/mentoria/pkg/apperror"
	commonDto "anoa.com/mentoria/pkg/dto"
	"anoa.com/mentoria/pkg/sanitize"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultDuration = 60

var (
	errSessionNotFound = apperror.NotFound("Sessão não encontrada")
	errMentorNotFound  = apperror.NotFound("Mentor não encontrado")
	errNotOwner        = apperror.Forbidden("Você não tem permissão para gerenciar esta sessão")
)

type SessionService interface {
	GetAll(ctx context.Context, caller *entity.User, filter dto.SessionFilter) (*commonDto.Page[dto.SessionResponse], error)
	GetByID(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.SessionResponse, error)
	Create(ctx context.Context, caller *entity.User, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error
	Join(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.SessionResponse, error)
	Leave(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.SessionResponse, error)
	MyEnrolled(ctx context.Context, caller *entity.User) ([]dto.SessionResponse, error)
	Participants(ctx context.Context, caller *entity.User, id uuid.UUID) ([]dto.ParticipantResponse, error)
}

type sessionService struct {
	repo       repository.SessionRepository
	mentorRepo mentorRepo.MentorRepository
	menteeRepo menteeRepo.MenteeRepository
	now        func() time.Time
}

func NewSessionService(repo repository.SessionRepository, mentorRepo mentorRepo.MentorRepository, menteeRepo menteeRepo.MenteeRepository) SessionService {
	return &sessionService{
		repo:       repo,
		mentorRepo: mentorRepo,
		menteeRepo: menteeRepo,
		now:        time.Now,
	}
}

func (s *sessionService) GetAll(ctx context.Context, caller *entity.User, filter dto.SessionFilter) (*commonDto.Page[dto.SessionResponse], error) {
	q := filter.ListQuery.Normalize()

	f := repository.Filter{
		Type:     filter.Type,
		Search:   filter.Search,
		Upcoming: filter.Upcoming,
		Now:      s.now().UTC(),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if filter.Status != "" {
		f.Statuses = entity.EquivalentSessionStatuses(filter.Status)
	}
	if filter.MentorID != "" {
		mentorID, err := uuid.Parse(filter.MentorID)
		if err != nil {
			return nil, apperror.Validation("ID do mentor inválido")
		}
		f.MentorID = &mentorID
	}
	if caller != nil {
		f.ViewerID = &caller.ID
		f.AllVisible = caller.IsAdmin()
	}

	sessions, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	items, err := s.toResponses(ctx, caller, sessions)
	if err != nil {
		return nil, err
	}
	page := commonDto.NewPage(items, total, q)
	return &page, nil
}

func (s *sessionService) GetByID(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	items, err := s.toResponses(ctx, caller, []*entity.Session{session})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *sessionService) Create(ctx context.Context, caller *entity.User, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		return nil, apperror.Validation("ID do mentor inválido")
	}
	mentor, err := s.mentorRepo.FindByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errMentorNotFound
		}
		return nil, fmt.Errorf("failed to find mentor: %w", err)
	}
	if !caller.IsAdmin() && !mentor.OwnedBy(caller.ID) {
		return nil, errNotOwner
	}

	session := &entity.Session{
		MentorID:        mentor.ID,
		Title:           sanitize.Text(req.Title),
		Description:     sanitize.Text(req.Description),
		ScheduledAt:     req.ScheduledAt.UTC(),
		Duration:        DefaultDuration,
		Status:          entity.SessionStatusScheduled,
		Type:            entity.SessionTypeOneOnOne,
		MeetingURL:      req.MeetingURL,
		Notes:           sanitize.Text(req.Notes),
		MaxParticipants: req.MaxParticipants,
		IsPublic:        true,
	}
	if session.Title == "" {
		return nil, apperror.Validation("Título é obrigatório")
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.Status != "" {
		session.Status = req.Status
	}
	if req.Type != "" {
		session.Type = req.Type
	}
	if req.IsPublic != nil {
		session.IsPublic = *req.IsPublic
	}
	if req.MenteeID != nil {
		menteeID, err := s.resolveMentee(ctx, *req.MenteeID)
		if err != nil {
			return nil, err
		}
		session.MenteeID = &menteeID
	}
	for _, text := range sanitize.List(req.Requirements) {
		session.Requirements = append(session.Requirements, entity.SessionRequirement{Text: text})
	}
	for _, text := range sanitize.List(req.Objectives) {
		session.Objectives = append(session.Objectives, entity.SessionObjective{Text: text})
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.GetByID(ctx, caller, session.ID)
}

func (s *sessionService) Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if title := sanitize.Text(*req.Title); title != "" {
			session.Title = title
		}
	}
	if req.Description != nil {
		session.Description = sanitize.Text(*req.Description)
	}
	if req.ScheduledAt != nil {
		session.ScheduledAt = req.ScheduledAt.UTC()
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.Status != nil {
		session.Status = *req.Status
	}
	if req.Type != nil {
		session.Type = *req.Type
	}
	if req.MeetingURL != nil {
		session.MeetingURL = *req.MeetingURL
	}
	if req.Notes != nil {
		session.Notes = sanitize.Text(*req.Notes)
	}
	if req.MaxParticipants != nil {
		session.MaxParticipants = req.MaxParticipants
	}
	if req.IsPublic != nil {
		session.IsPublic = *req.IsPublic
	}

	replaceRequirements := req.Requirements != nil
	if replaceRequirements {
		session.Requirements = nil
		for _, text := range sanitize.List(req.Requirements) {
			session.Requirements = append(session.Requirements, entity.SessionRequirement{Text: text})
		}
	}
	replaceObjectives := req.Objectives != nil
	if replaceObjectives {
		session.Objectives = nil
		for _, text := range sanitize.List(req.Objectives) {
			session.Objectives = append(session.Objectives, entity.SessionObjective{Text: text})
		}
	}

	if err := s.repo.Update(ctx, session, replaceRequirements, replaceObjectives); err != nil {
		if errors.Is(err, repository.ErrCapacityTooLow) {
			return nil, apperror.Validation("Máximo de participantes não pode ser menor que o número de inscritos")
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return s.GetByID(ctx, caller, session.ID)
}

func (s *sessionService) Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	session, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *sessionService) Join(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.SessionResponse, error) {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := s.repo.Join(ctx, id, caller.ID); err != nil {
		return nil, enrollmentError(err)
	}
	return s.GetByID(ctx, caller, id)
}

func (s *sessionService) Leave(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.SessionResponse, error) {
	if _, err := s.findVisible(ctx, caller, id); err != nil {
		return nil, err
	}
	if err := s.repo.Leave(ctx, id, caller.ID); err != nil {
		return nil, enrollmentError(err)
	}
	return s.GetByID(ctx, caller, id)
}

func (s *sessionService) MyEnrolled(ctx context.Context, caller *entity.User) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.FindEnrolled(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled sessions: %w", err)
	}

	enrolled := true
	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res := dto.NewSessionResponse(session)
		res.IsEnrolled = &enrolled
		items = append(items, res)
	}
	return items, nil
}

func (s *sessionService) Participants(ctx context.Context, caller *entity.User, id uuid.UUID) ([]dto.ParticipantResponse, error) {
	session, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	participants, err := s.repo.Participants(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	items := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		item := dto.ParticipantResponse{UserID: p.UserID, JoinedAt: p.JoinedAt}
		if p.User != nil {
			item.Name = p.User.Name
			item.Email = p.User.Email
			item.Avatar = p.User.Avatar
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *sessionService) toResponses(ctx context.Context, caller *entity.User, sessions []*entity.Session) ([]dto.SessionResponse, error) {
	var enrolled map[uuid.UUID]bool
	if caller != nil {
		ids := make([]uuid.UUID, 0, len(sessions))
		for _, session := range sessions {
			ids = append(ids, session.ID)
		}
		var err error
		enrolled, err = s.repo.EnrolledIn(ctx, caller.ID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
	}

	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res := dto.NewSessionResponse(session)
		if enrolled != nil {
			isEnrolled := enrolled[session.ID]
			res.IsEnrolled = &isEnrolled
		}
		items = append(items, res)
	}
	return items, nil
}

func (s *sessionService) find(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// findVisible hides private sessions from everyone but the owning mentor,
// admins and users already enrolled.
func (s *sessionService) findVisible(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Session, error) {
	session, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsPublic || caller.IsAdmin() {
		return session, nil
	}
	if caller == nil {
		return nil, errSessionNotFound
	}
	if session.Mentor != nil && session.Mentor.OwnedBy(caller.ID) {
		return session, nil
	}

	enrolled, err := s.repo.EnrolledIn(ctx, caller.ID, []uuid.UUID{session.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled[session.ID] {
		return session, nil
	}
	return nil, errSessionNotFound
}

func (s *sessionService) findOwned(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Session, error) {
	session, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() || (session.Mentor != nil && session.Mentor.OwnedBy(caller.ID)) {
		return session, nil
	}
	return nil, errNotOwner
}

func (s *sessionService) resolveMentee(ctx context.Context, raw string) (uuid.UUID, error) {
	menteeID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation("ID do aprendiz inválido")
	}
	if _, err := s.menteeRepo.FindByID(ctx, menteeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.NotFound("Aprendiz não encontrado")
		}
		return uuid.Nil, fmt.Errorf("failed to find mentee: %w", err)
	}
	return menteeID, nil
}

func enrollmentError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errSessionNotFound
	case errors.Is(err, repository.ErrEnrollmentClosed):
		return apperror.Validation("Esta sessão não aceita inscrições")
	case errors.Is(err, repository.ErrSessionEnded):
		return apperror.Validation("Esta sessão não está mais aberta para inscrições")
	case errors.Is(err, repository.ErrAlreadyEnrolled):
		return apperror.Conflict("Você já está inscrito nesta sessão")
	case errors.Is(err, repository.ErrSessionFull):
		return apperror.Conflict("Sessão cheia")
	case errors.Is(err, repository.ErrNotEnrolled):
		return apperror.Validation("Você não está inscrito nesta sessão")
	}
	return fmt.Errorf("failed to update enrollment: %w", err)
}
