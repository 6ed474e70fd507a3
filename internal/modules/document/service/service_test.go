package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"anoa.com/mentoria/internal/entity"
	counterRepo "anoa.com/mentoria/internal/modules/counter/repository"
	counter "anoa.com/mentoria/internal/modules/counter/service"
	"anoa.com/mentoria/internal/modules/document/dto"
	"anoa.com/mentoria/internal/modules/document/repository"
	mentorRepo "anoa.com/mentoria/internal/modules/mentor/repository"
	sessionRepo "anoa.com/mentoria/internal/modules/session/repository"
	"anoa.com/mentoria/internal/testutil"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	args := m.Called(ctx, r, folder, fileName)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, fileURL string) error {
	args := m.Called(ctx, fileURL)
	return args.Error(0)
}

type fixture struct {
	db      *gorm.DB
	owner   *entity.User
	mentor  *entity.Mentor
	session *entity.Session
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "mentor@example.com", entity.RoleMentor, entity.UserTypeMentor)
	mentor := testutil.CreateMentor(t, db, owner)
	session := testutil.CreateSession(t, db, mentor, nil, entity.SessionStatusScheduled)
	return &fixture{db: db, owner: owner, mentor: mentor, session: session}
}

func (f *fixture) service(fileStorage storage.FileStorage) DocumentService {
	counters := counter.NewCounterService(nil, counterRepo.NewCounterRepository(f.db), nil)
	return NewDocumentService(
		repository.NewDocumentRepository(f.db),
		mentorRepo.NewMentorRepository(f.db),
		sessionRepo.NewSessionRepository(f.db),
		counters,
		fileStorage,
		"documents",
		nil,
	)
}

func (f *fixture) createRequest(public bool) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		SessionID: f.session.ID.String(),
		MentorID:  f.mentor.ID.String(),
		Title:     "Slides",
		FileURL:   "https://res.cloudinary.com/demo/raw/upload/v1/documents/slides.pdf",
		FileName:  "slides.pdf",
		FileType:  "application/pdf",
		FileSize:  2048,
		Category:  "slides",
		IsPublic:  &public,
		Tags:      []string{"go", "Go", "concurrency"},
	}
}

func TestCreate_FlagsSession(t *testing.T) {
	f := setup(t)
	svc := f.service(nil)
	ctx := context.Background()

	doc, err := svc.Create(ctx, f.owner, f.createRequest(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "concurrency"}, doc.Tags)
	assert.Equal(t, f.owner.Name, doc.MentorName)

	var session entity.Session
	require.NoError(t, f.db.First(&session, "id = ?", f.session.ID).Error)
	assert.True(t, session.HasDocuments)
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)
	svc := f.service(nil)
	ctx := context.Background()

	stranger := testutil.CreateUser(t, f.db, "x@example.com", entity.RoleMentor, entity.UserTypeMentor)
	_, err := svc.Create(ctx, stranger, f.createRequest(true))
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

	otherMentor := testutil.CreateMentor(t, f.db, stranger)
	otherSession := testutil.CreateSession(t, f.db, otherMentor, nil, entity.SessionStatusScheduled)
	req := f.createRequest(true)
	req.SessionID = otherSession.ID.String()
	_, err = svc.Create(ctx, f.owner, req)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	var session entity.Session
	require.NoError(t, f.db.First(&session, "id = ?", otherSession.ID).Error)
	assert.False(t, session.HasDocuments)
}

func TestVisibilityAndCounters(t *testing.T) {
	f := setup(t)
	svc := f.service(nil)
	ctx := context.Background()

	public, err := svc.Create(ctx, f.owner, f.createRequest(true))
	require.NoError(t, err)
	private, err := svc.Create(ctx, f.owner, f.createRequest(false))
	require.NoError(t, err)
	mentee := testutil.CreateUser(t, f.db, "a@example.com", entity.RoleUser, entity.UserTypeAprendiz)

	page, err := svc.GetAll(ctx, nil, dto.DocumentFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Meta.Total)

	page, err = svc.GetAll(ctx, f.owner, dto.DocumentFilter{SessionID: f.session.ID.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Meta.Total)

	_, err = svc.GetByID(ctx, mentee, private.ID, mentee.ID.String())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
	_, err = svc.Download(ctx, nil, private.ID)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))

	_, err = svc.GetByID(ctx, mentee, public.ID, mentee.ID.String())
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, nil, public.ID, "10.0.0.1")
	require.NoError(t, err)
	dl, err := svc.Download(ctx, nil, public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.FileURL, dl.FileURL)

	doc, err := svc.GetByID(ctx, f.owner, public.ID, f.owner.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, doc.ViewCount)
	assert.EqualValues(t, 1, doc.DownloadCount)
}

func TestUpdateAndDelete(t *testing.T) {
	f := setup(t)
	fileStorage := new(MockFileStorage)
	svc := f.service(fileStorage)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.owner, f.createRequest(true))
	require.NoError(t, err)

	title := "Slides v2"
	updated, err := svc.Update(ctx, f.owner, created.ID, dto.UpdateDocumentRequest{
		Title: &title,
		Tags:  []string{"grpc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Slides v2", updated.Title)
	assert.Equal(t, []string{"grpc"}, updated.Tags)
	assert.Equal(t, "slides", updated.Category)

	mentee := testutil.CreateUser(t, f.db, "a@example.com", entity.RoleUser, entity.UserTypeAprendiz)
	err = svc.Delete(ctx, mentee, created.ID)
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

	fileStorage.On("Delete", mock.Anything, created.FileURL).Return(assert.AnError).Once()
	require.NoError(t, svc.Delete(ctx, f.owner, created.ID))
	fileStorage.AssertExpectations(t)

	var tags int64
	require.NoError(t, f.db.Model(&entity.DocumentTag{}).Where("document_id = ?", created.ID).Count(&tags).Error)
	assert.Zero(t, tags)
}

func TestDeleteSessionCascadesDocuments(t *testing.T) {
	f := setup(t)
	svc := f.service(nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.owner, f.createRequest(true))
	require.NoError(t, err)

	require.NoError(t, sessionRepo.NewSessionRepository(f.db).Delete(ctx, f.session.ID))

	_, err = svc.GetByID(ctx, f.owner, created.ID, "")
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestUpload(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	header := fileHeader(t, "notes.pdf", []byte("%PDF-1.4"))

	_, err := f.service(nil).Upload(ctx, f.owner, header)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.MapErrorToStatus(err))

	fileStorage := new(MockFileStorage)
	fileStorage.On("Upload", mock.Anything, mock.Anything, "documents", "notes.pdf").
		Return("https://res.cloudinary.com/demo/raw/upload/v1/documents/1-notes.pdf", nil).Once()

	res, err := f.service(fileStorage).Upload(ctx, f.owner, header)
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/raw/upload/v1/documents/1-notes.pdf", res.FileURL)
	assert.Equal(t, "application/pdf", res.FileType)
	assert.EqualValues(t, len("%PDF-1.4"), res.FileSize)
	fileStorage.AssertExpectations(t)

	header.Size = MaxUploadSize + 1
	_, err = f.service(fileStorage).Upload(ctx, f.owner, header)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}
