package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/mentoria/internal/config"
	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/testutil"
	"anoa.com/mentoria/pkg/response"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type client struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		AppEnv:              "test",
		AllowedOrigins:      []string{"http://localhost:3000"},
		JWTSecret:           "test-secret",
		JWTTTL:              time.Hour,
		UploadFolder:        "documents",
		CounterSyncInterval: time.Minute,
	}
	db := testutil.NewDB(t)
	srv := NewServer(cfg, db, rdb, nil, nil)
	return &client{t: t, db: db, handler: srv.Handler()}
}

// do sends body as JSON and decodes the envelope's data into out when non-nil.
func (c *client) do(method, path, token string, body any, out any) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	if out != nil {
		env := response.Envelope{Data: out}
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID       string  `json:"id"`
		MentorID *string `json:"mentorId"`
	} `json:"user"`
}

func (c *client) register(name, email, userType string) authData {
	c.t.Helper()
	var out authData
	code := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123", "userType": userType,
	}, &out)
	require.Equal(c.t, http.StatusCreated, code)
	return out
}

type sessionData struct {
	ID                  string `json:"id"`
	CurrentParticipants int    `json:"currentParticipants"`
	IsEnrolled          *bool  `json:"isEnrolled"`
}

func TestHealth(t *testing.T) {
	c := newClient(t)

	var out map[string]string
	code := c.do(http.MethodGet, "/health", "", nil, &out)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", out["database"])
	assert.Equal(t, "ok", out["redis"])
}

func TestEnrollmentFlow(t *testing.T) {
	c := newClient(t)

	mentor := c.register("Maria Mentora", "maria@example.com", "mentor")
	require.NotNil(t, mentor.User.MentorID)
	a := c.register("Ana Aprendiz", "ana@example.com", "aprendiz")
	b := c.register("Bruno Aprendiz", "bruno@example.com", "aprendiz")

	code := c.do(http.MethodPost, "/api/sessions", a.Token, map[string]any{
		"mentorId": *mentor.User.MentorID, "title": "x", "scheduledAt": time.Now().Add(time.Hour),
	}, nil)
	assert.Equal(t, http.StatusForbidden, code, "mentees cannot create sessions")

	var session sessionData
	code = c.do(http.MethodPost, "/api/sessions", mentor.Token, map[string]any{
		"mentorId":        *mentor.User.MentorID,
		"title":           "Go na prática",
		"scheduledAt":     time.Now().Add(24 * time.Hour).UTC(),
		"type":            "group",
		"maxParticipants": 1,
	}, &session)
	require.Equal(t, http.StatusCreated, code)

	var joined sessionData
	code = c.do(http.MethodPost, "/api/sessions/"+session.ID+"/join", a.Token, nil, &joined)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, joined.CurrentParticipants)

	code = c.do(http.MethodPost, "/api/sessions/"+session.ID+"/join", b.Token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var viewed sessionData
	c.do(http.MethodGet, "/api/sessions/"+session.ID, a.Token, nil, &viewed)
	require.NotNil(t, viewed.IsEnrolled)
	assert.True(t, *viewed.IsEnrolled)

	var anonymous sessionData
	c.do(http.MethodGet, "/api/sessions/"+session.ID, "", nil, &anonymous)
	assert.Nil(t, anonymous.IsEnrolled)

	var enrolled []sessionData
	code = c.do(http.MethodGet, "/api/sessions/my/enrolled", a.Token, nil, &enrolled)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, enrolled, 1)
	assert.Equal(t, session.ID, enrolled[0].ID)

	code = c.do(http.MethodPost, "/api/sessions/"+session.ID+"/leave", a.Token, nil, nil)
	require.Equal(t, http.StatusOK, code)
	code = c.do(http.MethodPost, "/api/sessions/"+session.ID+"/join", b.Token, nil, nil)
	assert.Equal(t, http.StatusOK, code)

	code = c.do(http.MethodGet, "/api/sessions/"+session.ID+"/participants", a.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)
	var participants []map[string]any
	code = c.do(http.MethodGet, "/api/sessions/"+session.ID+"/participants", mentor.Token, nil, &participants)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, participants, 1)
}

func TestAuthGate(t *testing.T) {
	c := newClient(t)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/auth/me", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/goals", "garbage", nil, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/sessions", "garbage", nil, nil))

	user := c.register("Ana", "ana@example.com", "aprendiz")
	var goal map[string]any
	code := c.do(http.MethodPost, "/api/goals", user.Token, map[string]any{"title": "Go", "category": "technical"}, &goal)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "medium", goal["priority"])
	assert.Equal(t, "not-started", goal["status"])

	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, "/api/documents/upload", user.Token, nil, nil))
}

func TestAdminAndStats(t *testing.T) {
	c := newClient(t)

	root := c.register("Root", "root@example.com", "mentor")
	learner := c.register("Ana Aprendiz", "ana@example.com", "aprendiz")

	code := c.do(http.MethodGet, "/api/admin/users", learner.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)

	require.NoError(t, c.db.Model(&entity.User{}).Where("email = ?", "root@example.com").
		Update("role", entity.RoleAdmin).Error)

	var users struct {
		Items []struct {
			Email string `json:"email"`
		} `json:"items"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	code = c.do(http.MethodGet, "/api/admin/users?userType=aprendiz", root.Token, nil, &users)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, users.Meta.Total)

	code = c.do(http.MethodPut, "/api/admin/users/"+learner.User.ID+"/role", root.Token,
		map[string]string{"role": "superuser"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var updated struct {
		Role string `json:"role"`
	}
	code = c.do(http.MethodPut, "/api/admin/users/"+learner.User.ID+"/role", root.Token,
		map[string]string{"role": "mentor"}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "mentor", updated.Role)

	var stats map[string]int64
	code = c.do(http.MethodGet, "/api/stats", "", nil, &stats)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, stats["totalUsers"])
	assert.EqualValues(t, 1, stats["totalMentors"])
	assert.EqualValues(t, 1, stats["totalMentees"])

	code = c.do(http.MethodDelete, "/api/admin/users/"+learner.User.ID, root.Token, nil, nil)
	assert.Equal(t, http.StatusOK, code)
	code = c.do(http.MethodGet, "/api/auth/me", learner.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
