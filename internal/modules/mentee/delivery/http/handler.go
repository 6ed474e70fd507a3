package handler

import (
	"anoa.com/mentoria/internal/modules/mentee/dto"
	"anoa.com/mentoria/internal/modules/mentee/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type MenteeHandler struct {
	service service.MenteeService
}

func NewMenteeHandler(service service.MenteeService) *MenteeHandler {
	return &MenteeHandler{service: service}
}

func (h *MenteeHandler) GetMe(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mentee, err := h.service.GetMe(c.Request.Context(), caller)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, mentee)
}

func (h *MenteeHandler) GetByID(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mentee, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, mentee)
}

func (h *MenteeHandler) Update(c *gin.Context) {
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

	var req dto.UpdateMenteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	mentee, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Perfil atualizado com sucesso", mentee)
}

func (h *MenteeHandler) Delete(c *gin.Context) {
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

	response.Message(c, "Perfil excluído com sucesso")
}
