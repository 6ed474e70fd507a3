package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/mentor/dto"
	"anoa.com/mentoria/internal/modules/mentor/repository"
	"anoa.com/mentoria/pkg/apperror"
	commonDto "anoa.com/mentoria/pkg/dto"
	"anoa.com/mentoria/pkg/sanitize"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	SpecialtiesCacheKey = "mentors:specialties"
	specialtiesCacheTTL = 10 * time.Minute

	DefaultLanguage = "Português"
	DefaultTimezone = "America/Sao_Paulo"
)

var (
	hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	errMentorNotFound = apperror.NotFound("Mentor não encontrado")
	errNotOwner       = apperror.Forbidden("Você não tem permissão para alterar este mentor")
)

type MentorService interface {
	GetAll(ctx context.Context, filter dto.MentorFilter) (*commonDto.Page[dto.MentorResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MentorResponse, error)
	Create(ctx context.Context, caller *entity.User, req dto.CreateMentorRequest) (*dto.MentorResponse, error)
	Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateMentorRequest) (*dto.MentorResponse, error)
	ReplaceAvailability(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.ReplaceAvailabilityRequest) (*dto.MentorResponse, error)
	Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error
	Specialties(ctx context.Context) ([]string, error)
}

type mentorService struct {
	repo        repository.MentorRepository
	redisClient *redis.Client
	log         *zap.Logger
}

// NewMentorService builds the service. redisClient may be nil.
func NewMentorService(repo repository.MentorRepository, redisClient *redis.Client, log *zap.Logger) MentorService {
	if log == nil {
		log = zap.NewNop()
	}
	return &mentorService{
		repo:        repo,
		redisClient: redisClient,
		log:         log,
	}
}

func (s *mentorService) GetAll(ctx context.Context, filter dto.MentorFilter) (*commonDto.Page[dto.MentorResponse], error) {
	q := filter.ListQuery.Normalize()

	mentors, total, err := s.repo.FindAll(ctx, repository.Filter{
		Search:    filter.Search,
		Specialty: filter.Specialty,
		MinRating: filter.MinRating,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	items := make([]dto.MentorResponse, 0, len(mentors))
	for _, m := range mentors {
		items = append(items, dto.NewMentorResponse(m))
	}
	page := commonDto.NewPage(items, total, q)
	return &page, nil
}

func (s *mentorService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MentorResponse, error) {
	mentor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewMentorResponse(mentor)
	return &res, nil
}

func (s *mentorService) Create(ctx context.Context, caller *entity.User, req dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	_, err := s.repo.FindByUserID(ctx, caller.ID)
	if err == nil {
		return nil, apperror.Conflict("Você já possui um perfil de mentor")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check mentor profile: %w", err)
	}

	name := sanitize.Text(req.Name)
	if name == "" {
		name = caller.Name
	}

	mentor := &entity.Mentor{
		UserID:      &caller.ID,
		Name:        name,
		Title:       sanitize.Text(req.Title),
		Company:     sanitize.Text(req.Company),
		Bio:         sanitize.Text(req.Bio),
		Avatar:      entity.Initials(name),
		IsAvailable: true,
	}
	if req.Experience != nil {
		mentor.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		mentor.HourlyRate = *req.HourlyRate
	}
	if req.IsAvailable != nil {
		mentor.IsAvailable = *req.IsAvailable
	}

	languages := sanitize.List(req.Languages)
	if len(languages) == 0 {
		languages = []string{DefaultLanguage}
	}
	mentor.Specialties = toSpecialties(sanitize.List(req.Specialties))
	mentor.Languages = toLanguages(languages)
	mentor.Certifications = toCertifications(sanitize.List(req.Certifications))

	if err := s.repo.Create(ctx, mentor); err != nil {
		return nil, fmt.Errorf("failed to create mentor: %w", err)
	}
	s.invalidateSpecialties(ctx)

	return s.GetByID(ctx, mentor.ID)
}

func (s *mentorService) Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	mentor, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := sanitize.Text(*req.Name); name != "" {
			mentor.Name = name
		}
	}
	if req.Title != nil {
		mentor.Title = sanitize.Text(*req.Title)
	}
	if req.Company != nil {
		mentor.Company = sanitize.Text(*req.Company)
	}
	if req.Bio != nil {
		mentor.Bio = sanitize.Text(*req.Bio)
	}
	if req.Avatar != nil {
		mentor.Avatar = sanitize.Text(*req.Avatar)
	}
	if req.Experience != nil {
		mentor.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		mentor.HourlyRate = *req.HourlyRate
	}
	if req.IsAvailable != nil {
		mentor.IsAvailable = *req.IsAvailable
	}

	var replace repository.Collections
	if req.Specialties != nil {
		replace.Specialties = true
		mentor.Specialties = toSpecialties(sanitize.List(req.Specialties))
	}
	if req.Languages != nil {
		replace.Languages = true
		mentor.Languages = toLanguages(sanitize.List(req.Languages))
	}
	if req.Certifications != nil {
		replace.Certifications = true
		mentor.Certifications = toCertifications(sanitize.List(req.Certifications))
	}

	if err := s.repo.Update(ctx, mentor, replace); err != nil {
		return nil, fmt.Errorf("failed to update mentor: %w", err)
	}
	if replace.Specialties {
		s.invalidateSpecialties(ctx)
	}

	return s.GetByID(ctx, mentor.ID)
}

func (s *mentorService) ReplaceAvailability(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.ReplaceAvailabilityRequest) (*dto.MentorResponse, error) {
	mentor, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	slots := make([]entity.MentorAvailability, 0, len(req.Availability))
	for _, slot := range req.Availability {
		if !hhmm.MatchString(slot.StartTime) || !hhmm.MatchString(slot.EndTime) {
			return nil, apperror.Validation("Horários devem estar no formato HH:MM")
		}
		if slot.StartTime >= slot.EndTime {
			return nil, apperror.Validation("Horário de início deve ser anterior ao horário de término")
		}
		tz := slot.Timezone
		if tz == "" {
			tz = DefaultTimezone
		}
		slots = append(slots, entity.MentorAvailability{
			DayOfWeek: *slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Timezone:  tz,
		})
	}

	if err := s.repo.ReplaceAvailability(ctx, mentor.ID, slots); err != nil {
		return nil, fmt.Errorf("failed to replace availability: %w", err)
	}

	return s.GetByID(ctx, mentor.ID)
}

func (s *mentorService) Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	mentor, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	active, err := s.repo.CountActiveSessions(ctx, mentor.ID)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}
	if active > 0 {
		return apperror.Conflict("Não é possível excluir mentor com sessões ativas")
	}

	if err := s.repo.Delete(ctx, mentor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errMentorNotFound
		}
		return fmt.Errorf("failed to delete mentor: %w", err)
	}
	s.invalidateSpecialties(ctx)
	return nil
}

func (s *mentorService) Specialties(ctx context.Context) ([]string, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, SpecialtiesCacheKey).Bytes()
		if err == nil {
			var names []string
			if json.Unmarshal(cached, &names) == nil {
				return names, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("failed to read specialties cache", zap.Error(err))
		}
	}

	names, err := s.repo.Specialties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	if names == nil {
		names = []string{}
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(names); err == nil {
			if err := s.redisClient.Set(ctx, SpecialtiesCacheKey, payload, specialtiesCacheTTL).Err(); err != nil {
				s.log.Warn("failed to write specialties cache", zap.Error(err))
			}
		}
	}
	return names, nil
}

func (s *mentorService) invalidateSpecialties(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, SpecialtiesCacheKey).Err(); err != nil {
		s.log.Warn("failed to invalidate specialties cache", zap.Error(err))
	}
}

func (s *mentorService) find(ctx context.Context, id uuid.UUID) (*entity.Mentor, error) {
	mentor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errMentorNotFound
		}
		return nil, fmt.Errorf("failed to find mentor: %w", err)
	}
	return mentor, nil
}

func (s *mentorService) findOwned(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Mentor, error) {
	mentor, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !mentor.OwnedBy(caller.ID) {
		return nil, errNotOwner
	}
	return mentor, nil
}
