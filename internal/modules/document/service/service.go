package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"anoa.com/mentoria/internal/entity"
	counter "anoa.com/mentoria/internal/modules/counter/service"
	"anoa.com/mentoria/internal/modules/document/dto"
	"anoa.com/mentoria/internal/modules/document/repository"
	mentorRepo "anoa.com/mentoria/internal/modules/mentor/repository"
	sessionRepo "anoa.com/mentoria/internal/modules/session/repository"
	"anoa.com/mentoria/pkg/apperror"
	commonDto "anoa.com/mentoria/pkg/dto"
	"anoa.com/mentoria/pkg/sanitize"
	"anoa.com/mentoria/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxUploadSize caps a single uploaded file.
const MaxUploadSize = 20 << 20

var (
	errDocumentNotFound = apperror.NotFound("Documento não encontrado")
	errNotOwner         = apperror.Forbidden("Você não tem permissão para alterar este documento")
	errStorageDisabled  = apperror.New(http.StatusServiceUnavailable, "Armazenamento de arquivos não configurado", apperror.ErrUnavailable)
)

type DocumentService interface {
	GetAll(ctx context.Context, caller *entity.User, filter dto.DocumentFilter) (*commonDto.Page[dto.DocumentResponse], error)
	// GetByID returns a visible document and records a view by viewer.
	GetByID(ctx context.Context, caller *entity.User, id uuid.UUID, viewer string) (*dto.DocumentResponse, error)
	Create(ctx context.Context, caller *entity.User, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Upload(ctx context.Context, caller *entity.User, file *multipart.FileHeader) (*dto.UploadResponse, error)
	Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error
	Download(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.DownloadResponse, error)
}

type documentService struct {
	repo         repository.DocumentRepository
	mentorRepo   mentorRepo.MentorRepository
	sessionRepo  sessionRepo.SessionRepository
	counters     counter.CounterService
	fileStorage  storage.FileStorage
	uploadFolder string
	log          *zap.Logger
}

// NewDocumentService builds the service. fileStorage may be nil, in which
// case uploads report the storage as unavailable.
func NewDocumentService(
	repo repository.DocumentRepository,
	mentorRepo mentorRepo.MentorRepository,
	sessionRepo sessionRepo.SessionRepository,
	counters counter.CounterService,
	fileStorage storage.FileStorage,
	uploadFolder string,
	log *zap.Logger,
) DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &documentService{
		repo:         repo,
		mentorRepo:   mentorRepo,
		sessionRepo:  sessionRepo,
		counters:     counters,
		fileStorage:  fileStorage,
		uploadFolder: uploadFolder,
		log:          log,
	}
}

func (s *documentService) GetAll(ctx context.Context, caller *entity.User, filter dto.DocumentFilter) (*commonDto.Page[dto.DocumentResponse], error) {
	q := filter.ListQuery.Normalize()

	f := repository.Filter{
		Category: filter.Category,
		Search:   filter.Search,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if filter.SessionID != "" {
		id, err := uuid.Parse(filter.SessionID)
		if err != nil {
			return nil, apperror.Validation("ID da sessão inválido")
		}
		f.SessionID = &id
	}
	if filter.MentorID != "" {
		id, err := uuid.Parse(filter.MentorID)
		if err != nil {
			return nil, apperror.Validation("ID do mentor inválido")
		}
		f.MentorID = &id
	}
	switch {
	case caller.IsAdmin():
		f.AllVisible = true
	case caller != nil:
		f.ViewerID = &caller.ID
	}

	docs, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, dto.NewDocumentResponse(doc))
	}
	page := commonDto.NewPage(items, total, q)
	return &page, nil
}

func (s *documentService) GetByID(ctx context.Context, caller *entity.User, id uuid.UUID, viewer string) (*dto.DocumentResponse, error) {
	doc, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := s.counters.RecordView(ctx, doc.ID, viewer); err != nil {
		s.log.Warn("failed to record document view", zap.String("document_id", doc.ID.String()), zap.Error(err))
	}

	res := dto.NewDocumentResponse(doc)
	return &res, nil
}

func (s *documentService) Create(ctx context.Context, caller *entity.User, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		return nil, apperror.Validation("ID do mentor inválido")
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, apperror.Validation("ID da sessão inválido")
	}

	mentor, err := s.mentorRepo.FindByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Mentor não encontrado")
		}
		return nil, fmt.Errorf("failed to find mentor: %w", err)
	}
	if !caller.IsAdmin() && !mentor.OwnedBy(caller.ID) {
		return nil, errNotOwner
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Sessão não encontrada")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session.MentorID != mentor.ID {
		return nil, apperror.Validation("A sessão não pertence a este mentor")
	}

	doc := &entity.Document{
		SessionID:   session.ID,
		MentorID:    mentor.ID,
		Title:       sanitize.Text(req.Title),
		Description: sanitize.Text(req.Description),
		FileURL:     strings.TrimSpace(req.FileURL),
		FileName:    strings.TrimSpace(req.FileName),
		FileType:    strings.TrimSpace(req.FileType),
		FileSize:    req.FileSize,
		Category:    strings.TrimSpace(req.Category),
		IsPublic:    true,
		Tags:        toTags(req.Tags),
	}
	if req.IsPublic != nil {
		doc.IsPublic = *req.IsPublic
	}
	if doc.Title == "" {
		return nil, apperror.Validation("Título é obrigatório")
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return s.reload(ctx, doc.ID)
}

func (s *documentService) Upload(ctx context.Context, caller *entity.User, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if s.fileStorage == nil {
		return nil, errStorageDisabled
	}
	if file.Size > MaxUploadSize {
		return nil, apperror.Validation("Arquivo excede o limite de 20MB")
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	url, err := s.fileStorage.Upload(ctx, f, s.uploadFolder, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.log.Info("document uploaded",
		zap.String("user_id", caller.ID.String()),
		zap.String("file_name", file.Filename),
		zap.Int64("size", file.Size),
	)

	return &dto.UploadResponse{
		FileURL:  url,
		FileName: file.Filename,
		FileType: contentType(file),
		FileSize: file.Size,
	}, nil
}

func (s *documentService) Update(ctx context.Context, caller *entity.User, id uuid.UUID, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := sanitize.Text(*req.Title)
		if title == "" {
			return nil, apperror.Validation("Título é obrigatório")
		}
		doc.Title = title
	}
	if req.Description != nil {
		doc.Description = sanitize.Text(*req.Description)
	}
	if req.Category != nil {
		doc.Category = strings.TrimSpace(*req.Category)
	}
	if req.IsPublic != nil {
		doc.IsPublic = *req.IsPublic
	}
	replaceTags := req.Tags != nil
	if replaceTags {
		doc.Tags = toTags(req.Tags)
	}

	if err := s.repo.Update(ctx, doc, replaceTags); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	return s.reload(ctx, doc.ID)
}

func (s *documentService) Delete(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	doc, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if s.fileStorage != nil {
		if publicID, _ := storage.ParsePublicID(doc.FileURL); publicID != "" {
			if err := s.fileStorage.Delete(ctx, doc.FileURL); err != nil {
				s.log.Warn("failed to delete stored file", zap.String("url", doc.FileURL), zap.Error(err))
			}
		}
	}
	return nil
}

func (s *documentService) Download(ctx context.Context, caller *entity.User, id uuid.UUID) (*dto.DownloadResponse, error) {
	doc, err := s.findVisible(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if err := s.counters.RecordDownload(ctx, doc.ID); err != nil {
		s.log.Warn("failed to record document download", zap.String("document_id", doc.ID.String()), zap.Error(err))
	}

	return &dto.DownloadResponse{FileURL: doc.FileURL, FileName: doc.FileName}, nil
}

func (s *documentService) find(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return doc, nil
}

// findVisible hides private documents from everyone but their owner and admins.
func (s *documentService) findVisible(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsPublic || caller.IsAdmin() || (caller != nil && ownedBy(doc, caller.ID)) {
		return doc, nil
	}
	return nil, errDocumentNotFound
}

func (s *documentService) findOwned(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() || ownedBy(doc, caller.ID) {
		return doc, nil
	}
	return nil, errNotOwner
}

func (s *documentService) reload(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewDocumentResponse(doc)
	return &res, nil
}

func ownedBy(doc *entity.Document, userID uuid.UUID) bool {
	return doc.Mentor != nil && doc.Mentor.OwnedBy(userID)
}

func toTags(names []string) []entity.DocumentTag {
	cleaned := sanitize.List(names)
	tags := make([]entity.DocumentTag, 0, len(cleaned))
	seen := make(map[string]bool, len(cleaned))
	for _, name := range cleaned {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, entity.DocumentTag{Name: name})
	}
	return tags
}

func contentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
