package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/internal/modules/user/dto"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func setupRouter(h *AuthHandler, caller *entity.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if caller != nil {
		r.Use(func(c *gin.Context) {
			c.Set(response.UserKey, caller)
			c.Next()
		})
	}
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.Me)
	r.DELETE("/auth/account", h.DeleteAccount)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *MockAuthService)
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing fields",
			body:       `{"email":"ana@example.com"}`,
			setup:      func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid user type",
			body:       `{"name":"Ana","email":"ana@example.com","password":"secret1","userType":"admin"}`,
			setup:      func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: `{"name":"Ana","email":"ana@example.com","password":"secret1","userType":"mentor"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, apperror.Conflict("Email já cadastrado"))
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email já cadastrado",
		},
		{
			name: "created",
			body: `{"name":"Ana","email":"ana@example.com","password":"secret1","userType":"mentor"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, dto.RegisterRequest{
					Name: "Ana", Email: "ana@example.com", Password: "secret1", UserType: "mentor",
				}).Return(&dto.AuthResponse{User: &dto.UserResponse{Name: "Ana"}, Token: "tok"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setup(svc)
			r := setupRouter(NewAuthHandler(svc), nil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.Equal(t, tt.wantStatus == http.StatusCreated, env.Success)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Message)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, apperror.Unauthorized("Credenciais inválidas"))
	r := setupRouter(NewAuthHandler(svc), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@b.com","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Credenciais inválidas", decode(t, w).Message)
}

func TestAuthHandler_MeRequiresCaller(t *testing.T) {
	svc := new(MockAuthService)
	r := setupRouter(NewAuthHandler(svc), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
}

func TestAuthHandler_Me(t *testing.T) {
	caller := &entity.User{ID: uuid.New()}
	svc := new(MockAuthService)
	svc.On("Me", mock.Anything, caller.ID).Return(&dto.UserResponse{ID: caller.ID, Name: "Ana"}, nil)
	r := setupRouter(NewAuthHandler(svc), caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Ana", env.Data.(map[string]any)["name"])
}

func TestAuthHandler_DeleteAccountBlocked(t *testing.T) {
	caller := &entity.User{ID: uuid.New()}
	svc := new(MockAuthService)
	svc.On("DeleteAccount", mock.Anything, caller.ID).Return(apperror.Conflict("Não é possível excluir a conta com sessões ativas"))
	r := setupRouter(NewAuthHandler(svc), caller)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/auth/account", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)
}
