package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/validator"
	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys shared by the auth middleware and the handlers.
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// Envelope is the shape of every JSON body returned by the API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

var (
	logger = zap.NewNop()
	debug  bool
)

// Configure sets the logger used for internal errors and whether their
// details are exposed to clients.
func Configure(l *zap.Logger, exposeDetails bool) {
	if l != nil {
		logger = l
	}
	debug = exposeDetails
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func WithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// ResponseError writes err using the status derived from the apperror taxonomy.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		logger.Error("internal error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		body := Envelope{Success: false, Message: apperror.ErrInternal.Error()}
		if debug {
			body.Error = err.Error()
		}
		c.AbortWithStatusJSON(code, body)
		return
	}

	c.AbortWithStatusJSON(code, Envelope{Success: false, Message: apperror.Message(err)})
}

// BindError reports a failed ShouldBind* call as a validation error.
func BindError(c *gin.Context, err error) {
	var verrs playground.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	msg := apperror.ErrValidation.Error()
	switch {
	case errors.As(err, &verrs):
		msg = validator.FormatValidationError(verrs)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		msg = "JSON inválido"
	}

	body := Envelope{Success: false, Message: msg}
	if debug {
		body.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// GetUser returns the caller attached by the auth middleware, if any.
func GetUser(c *gin.Context) (*entity.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

// CurrentUser is GetUser for routes behind RequireAuth.
func CurrentUser(c *gin.Context) (*entity.User, error) {
	user, ok := GetUser(c)
	if !ok {
		return nil, apperror.Unauthorized("Token de acesso necessário")
	}
	return user, nil
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	user, err := CurrentUser(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// ParamUUID parses a path parameter as UUID.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("ID inválido")
	}
	return id, nil
}
