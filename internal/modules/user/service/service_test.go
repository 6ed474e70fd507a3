package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/user/dto"
	"anoa.com/mentoria/internal/modules/user/repository"
	"anoa.com/mentoria/internal/testutil"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*authService, *gorm.DB, *token.Manager) {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := token.NewManager("test-secret", 7*24*time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), tokens).(*authService)
	svc.cost = bcrypt.MinCost
	return svc, db, tokens
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.RegisterRequest
		wantRole   string
		wantMentor bool
		wantMentee bool
	}{
		{
			name:       "mentor gets mentor role and profile",
			req:        dto.RegisterRequest{Name: "ana maria souza", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeMentor},
			wantRole:   entity.RoleMentor,
			wantMentor: true,
		},
		{
			name:       "aprendiz gets user role and mentee profile",
			req:        dto.RegisterRequest{Name: "Bruno", Email: "bruno@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz},
			wantRole:   entity.RoleUser,
			wantMentee: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db, tokens := newTestService(t)

			res, err := svc.Register(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRole, res.User.Role)
			assert.Equal(t, tt.wantMentor, res.User.MentorID != nil)
			assert.Equal(t, tt.wantMentee, res.User.MenteeID != nil)

			claims, err := tokens.Parse(res.Token)
			require.NoError(t, err)
			assert.Equal(t, res.User.ID, claims.UserID())
			assert.Equal(t, tt.req.Email, claims.Email)
			assert.Equal(t, tt.wantRole, claims.Role)
			assert.Equal(t, tt.req.UserType, claims.UserType)

			if tt.wantMentor {
				var langs []entity.MentorLanguage
				require.NoError(t, db.Where("mentor_id = ?", *res.User.MentorID).Find(&langs).Error)
				require.Len(t, langs, 1)
				assert.Equal(t, DefaultMentorLanguage, langs[0].Name)
				assert.Equal(t, "AM", res.User.Avatar)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeMentor})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Other", Email: "ana@example.com", Password: "different", UserType: entity.UserTypeAprendiz})
	require.Error(t, err)
	assert.Equal(t, "Email já cadastrado", apperror.Message(err))
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	// exact match only
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Upper", Email: "ANA@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz})
	assert.NoError(t, err)
}

// staleEmailCheck lets a write reach the unique index, as a concurrent
// request does when both pass EmailExists before either commits.
type staleEmailCheck struct {
	repository.UserRepository
}

func (staleEmailCheck) EmailExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestEmailUniqueIndexMapsToConflict(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(staleEmailCheck{repository.NewUserRepository(db)}, token.NewManager("test-secret", time.Hour)).(*authService)
	svc.cost = bcrypt.MinCost
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeMentor})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Ana Two", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz})
	assert.Equal(t, "Email já cadastrado", apperror.Message(err))
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	var users int64
	require.NoError(t, db.Model(&entity.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)

	bruno, err := svc.Register(ctx, dto.RegisterRequest{Name: "Bruno", Email: "bruno@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz})
	require.NoError(t, err)

	taken := "ana@example.com"
	_, err = svc.UpdateProfile(ctx, bruno.User.ID, dto.UpdateProfileRequest{Email: &taken})
	assert.Equal(t, "Email já cadastrado", apperror.Message(err))
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nope"})
	_, unknownEmail := svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "secret1"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperror.Message(wrongPassword), apperror.Message(unknownEmail))
	assert.Equal(t, "Credenciais inválidas", apperror.Message(unknownEmail))
	assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(wrongPassword))

	res, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, res.User.MenteeID)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	ana, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Bia", Email: "bia@example.com", Password: "secret1", UserType: entity.UserTypeAprendiz})
	require.NoError(t, err)

	taken := "bia@example.com"
	_, err = svc.UpdateProfile(ctx, ana.User.ID, dto.UpdateProfileRequest{Email: &taken})
	assert.Equal(t, "Email já cadastrado", apperror.Message(err))

	same := "ana@example.com"
	name := "Ana Clara"
	updated, err := svc.UpdateProfile(ctx, ana.User.ID, dto.UpdateProfileRequest{Email: &same, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana Clara", updated.Name)
	assert.Equal(t, "AC", updated.Avatar)
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestDeleteAccount_MentorWithActiveSessions(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1", UserType: entity.UserTypeMentor})
	require.NoError(t, err)

	mentor := &entity.Mentor{ID: *res.User.MentorID}
	session := testutil.CreateSession(t, db, mentor, nil, entity.SessionStatusUpcoming)

	err = svc.DeleteAccount(ctx, res.User.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.MapErrorToStatus(err))

	require.NoError(t, db.Model(session).Update("status", entity.SessionStatusCompleted).Error)
	require.NoError(t, svc.DeleteAccount(ctx, res.User.ID))

	var count int64
	require.NoError(t, db.Model(&entity.Mentor{}).Where("id = ?", mentor.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entity.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err = svc.Me(ctx, res.User.ID)
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}
