package handler

import (
	"anoa.com/mentoria/internal/modules/session/dto"
	"anoa.com/mentoria/internal/modules/session/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) GetAll(c *gin.Context) {
	var filter dto.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	caller, _ := response.GetUser(c)
	sessions, err := h.service.GetAll(c.Request.Context(), caller, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, sessions)
}

func (h *SessionHandler) GetByID(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	caller, _ := response.GetUser(c)
	session, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, session)
}

func (h *SessionHandler) MyEnrolled(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sessions, err := h.service.MyEnrolled(c.Request.Context(), caller)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, sessions)
}

func (h *SessionHandler) Create(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	session, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Created(c, "Sessão criada com sucesso", session)
}

func (h *SessionHandler) Update(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	session, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Sessão atualizada com sucesso", session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, "Sessão excluída com sucesso")
}

func (h *SessionHandler) Join(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	session, err := h.service.Join(c.Request.Context(), caller, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Inscrição realizada com sucesso", session)
}

func (h *SessionHandler) Leave(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	session, err := h.service.Leave(c.Request.Context(), caller, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Inscrição cancelada com sucesso", session)
}

func (h *SessionHandler) Participants(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	participants, err := h.service.Participants(c.Request.Context(), caller, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, participants)
}
