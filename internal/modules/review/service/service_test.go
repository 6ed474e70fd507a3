package service

import (
	"context"
	"net/http"
	"testing"

	"anoa.com/mentoria/internal/entity"
	menteeRepo "anoa.com/mentoria/internal/modules/mentee/repository"
	"anoa.com/mentoria/internal/modules/review/dto"
	"anoa.com/mentoria/internal/modules/review/repository"
	sessionRepo "anoa.com/mentoria/internal/modules/session/repository"
	userRepo "anoa.com/mentoria/internal/modules/user/repository"
	"anoa.com/mentoria/internal/testutil"
	"anoa.com/mentoria/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc         ReviewService
	db          *gorm.DB
	mentorUser  *entity.User
	mentor      *entity.Mentor
	session     *entity.Session
	participant *entity.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	mentorUser := testutil.CreateUser(t, db, "mentor@example.com", entity.RoleMentor, entity.UserTypeMentor)
	mentor := testutil.CreateMentor(t, db, mentorUser)
	session := testutil.CreateSession(t, db, mentor, testutil.IntPtr(5), entity.SessionStatusCompleted)

	participant := testutil.CreateUser(t, db, "a@example.com", entity.RoleUser, entity.UserTypeAprendiz)
	require.NoError(t, db.Create(&entity.SessionParticipant{SessionID: session.ID, UserID: participant.ID}).Error)

	svc := NewReviewService(
		repository.NewReviewRepository(db),
		sessionRepo.NewSessionRepository(db),
		menteeRepo.NewMenteeRepository(db),
		userRepo.NewUserRepository(db),
	)
	return &fixture{svc: svc, db: db, mentorUser: mentorUser, mentor: mentor, session: session, participant: participant}
}

func (f *fixture) request(revieweeID string, rating int) dto.CreateReviewRequest {
	return dto.CreateReviewRequest{
		SessionID:           f.session.ID.String(),
		RevieweeID:          revieweeID,
		Rating:              rating,
		CommunicationRating: rating,
		KnowledgeRating:     rating,
		HelpfulnessRating:   rating,
		PunctualityRating:   rating,
		Comment:             "<b>Ótima</b> sessão",
	}
}

func (f *fixture) mentorRating(t *testing.T) float64 {
	t.Helper()
	var mentor entity.Mentor
	require.NoError(t, f.db.First(&mentor, "id = ?", f.mentor.ID).Error)
	return mentor.Rating
}

func TestCreate_UpdatesMentorRating(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	review, err := f.svc.Create(ctx, f.participant, f.request(f.mentorUser.ID.String(), 5))
	require.NoError(t, err)
	assert.Equal(t, "Ótima sessão", review.Comment)
	assert.Equal(t, f.participant.Name, review.ReviewerName)
	assert.InDelta(t, 5.0, f.mentorRating(t), 0.001)

	second := testutil.CreateUser(t, f.db, "b@example.com", entity.RoleUser, entity.UserTypeAprendiz)
	require.NoError(t, f.db.Create(&entity.SessionParticipant{SessionID: f.session.ID, UserID: second.ID}).Error)
	_, err = f.svc.Create(ctx, second, f.request(f.mentorUser.ID.String(), 4))
	require.NoError(t, err)
	assert.InDelta(t, 4.5, f.mentorRating(t), 0.001)

	reviews, err := f.svc.BySession(ctx, f.session.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, err = f.svc.ByUser(ctx, f.mentorUser.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestCreate_MentorReviewsParticipant(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.mentorUser, f.request(f.participant.ID.String(), 4))
	require.NoError(t, err)
	assert.Zero(t, f.mentorRating(t))
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	outsider := testutil.CreateUser(t, f.db, "x@example.com", entity.RoleUser, entity.UserTypeAprendiz)

	_, err := f.svc.Create(ctx, f.participant, f.request(f.mentorUser.ID.String(), 5))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.participant, f.request(f.mentorUser.ID.String(), 3))
	assert.Equal(t, "Você já avaliou esta sessão", apperror.Message(err))

	_, err = f.svc.Create(ctx, outsider, f.request(f.mentorUser.ID.String(), 3))
	assert.Equal(t, http.StatusForbidden, apperror.MapErrorToStatus(err))

	_, err = f.svc.Create(ctx, f.mentorUser, f.request(outsider.ID.String(), 3))
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	_, err = f.svc.Create(ctx, f.mentorUser, f.request(f.mentorUser.ID.String(), 3))
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	require.NoError(t, f.db.Model(f.session).Update("status", entity.SessionStatusLive).Error)
	_, err = f.svc.Create(ctx, f.mentorUser, f.request(f.participant.ID.String(), 3))
	assert.Equal(t, "Apenas sessões concluídas podem ser avaliadas", apperror.Message(err))

	assert.InDelta(t, 5.0, f.mentorRating(t), 0.001)
}

func TestCreate_BoundMenteeMayReview(t *testing.T) {
	f := setup(t)
	user := testutil.CreateUser(t, f.db, "m@example.com", entity.RoleUser, entity.UserTypeAprendiz)
	mentee := &entity.Mentee{UserID: user.ID, Name: user.Name}
	require.NoError(t, f.db.Omit("Goals", "Interests").Create(mentee).Error)
	require.NoError(t, f.db.Model(f.session).Update("mentee_id", mentee.ID).Error)

	_, err := f.svc.Create(context.Background(), user, f.request(f.mentorUser.ID.String(), 3))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, f.mentorRating(t), 0.001)
}
