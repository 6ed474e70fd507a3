package middleware

import (
	"strings"

	"anoa.com/mentoria/internal/entity"
	userRepo "anoa.com/mentoria/internal/modules/user/repository"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/response"
	"anoa.com/mentoria/pkg/token"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	tokens   *token.Manager
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RequireAuth rejects the request unless it carries a valid token for an
// existing user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.ResponseError(c, apperror.Unauthorized("Token de acesso necessário"))
			return
		}

		user, err := m.authenticate(c, tokenString)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if user, err := m.authenticate(c, tokenString); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := response.GetUser(c)
		if !ok {
			response.ResponseError(c, apperror.Unauthorized("Usuário não autenticado"))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.ResponseError(c, apperror.Forbidden("Permissão insuficiente"))
	}
}

// RequireMentorType admits mentor-type users and admins.
func (m *AuthMiddleware) RequireMentorType() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := response.GetUser(c)
		if !ok {
			response.ResponseError(c, apperror.Unauthorized("Usuário não autenticado"))
			return
		}

		if user.UserType != entity.UserTypeMentor && !user.IsAdmin() {
			response.ResponseError(c, apperror.Forbidden("Acesso restrito a mentores"))
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, tokenString string) (*entity.User, error) {
	claims, err := m.tokens.Parse(tokenString)
	if err != nil {
		return nil, apperror.Unauthorized("Token inválido ou expirado")
	}

	user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID())
	if err != nil {
		return nil, apperror.Unauthorized("Usuário não encontrado")
	}

	// Only the minimal identity travels with the request.
	return &entity.User{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		UserType: user.UserType,
	}, nil
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Fallback to query parameter "token" (download links)
	return c.Query("token")
}

func setUser(c *gin.Context, user *entity.User) {
	c.Set(response.UserKey, user)
	c.Set(response.UserIDKey, user.ID)
}
