package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/mentoria/internal/entity"
	userRepo "anoa.com/mentoria/internal/modules/user/repository"
	"anoa.com/mentoria/internal/testutil"
	"anoa.com/mentoria/pkg/response"
	"anoa.com/mentoria/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router *gin.Engine
	tokens *token.Manager
	mentor *entity.User
	member *entity.User
	admin  *entity.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	tokens := token.NewManager("test-secret", time.Hour)
	m := NewAuthMiddleware(userRepo.NewUserRepository(db), tokens)

	f := &fixture{
		tokens: tokens,
		mentor: testutil.CreateUser(t, db, "mentor@example.com", entity.RoleMentor, entity.UserTypeMentor),
		member: testutil.CreateUser(t, db, "member@example.com", entity.RoleUser, entity.UserTypeAprendiz),
		admin:  testutil.CreateUser(t, db, "admin@example.com", entity.RoleAdmin, entity.UserTypeAprendiz),
	}

	whoami := func(c *gin.Context) {
		user, ok := response.GetUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Email)
	}

	r := gin.New()
	r.GET("/private", m.RequireAuth(), whoami)
	r.GET("/public", m.OptionalAuth(), whoami)
	r.GET("/admin", m.RequireAuth(), m.RequireRoles(entity.RoleAdmin), whoami)
	r.GET("/mentor", m.RequireAuth(), m.RequireMentorType(), whoami)
	f.router = r
	return f
}

func (f *fixture) tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	s, err := f.tokens.Issue(token.Subject{ID: u.ID, Email: u.Email, Role: u.Role, UserType: u.UserType})
	require.NoError(t, err)
	return s
}

func (f *fixture) do(path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	f := setup(t)
	ghost, err := f.tokens.Issue(token.Subject{ID: uuid.New()})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing token", "", http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
		{"unknown user", "Bearer " + ghost, http.StatusUnauthorized, ""},
		{"valid", "Bearer " + f.tokenFor(t, f.member), http.StatusOK, "member@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do("/private", tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_QueryFallback(t *testing.T) {
	f := setup(t)

	w := f.do("/private?token="+f.tokenFor(t, f.mentor), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mentor@example.com", w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	f := setup(t)

	assert.Equal(t, "anonymous", f.do("/public", "").Body.String())
	assert.Equal(t, "anonymous", f.do("/public", "Bearer broken").Body.String())
	assert.Equal(t, "member@example.com", f.do("/public", "Bearer "+f.tokenFor(t, f.member)).Body.String())
}

func TestRequireRoles(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusForbidden, f.do("/admin", "Bearer "+f.tokenFor(t, f.member)).Code)
	assert.Equal(t, http.StatusOK, f.do("/admin", "Bearer "+f.tokenFor(t, f.admin)).Code)
}

func TestRequireMentorType(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name       string
		user       *entity.User
		wantStatus int
	}{
		{"mentor", f.mentor, http.StatusOK},
		{"aprendiz", f.member, http.StatusForbidden},
		{"admin bypass", f.admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, f.do("/mentor", "Bearer "+f.tokenFor(t, tt.user)).Code)
		})
	}
}
