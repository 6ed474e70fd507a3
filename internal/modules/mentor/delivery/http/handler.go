package handler

import (
	"anoa.com/mentoria/internal/modules/mentor/dto"
	"anoa.com/mentoria/internal/modules/mentor/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type MentorHandler struct {
	service service.MentorService
}

func NewMentorHandler(service service.MentorService) *MentorHandler {
	return &MentorHandler{service: service}
}

func (h *MentorHandler) GetAll(c *gin.Context) {
	var filter dto.MentorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	mentors, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, mentors)
}

func (h *MentorHandler) GetByID(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mentor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, mentor)
}

func (h *MentorHandler) Specialties(c *gin.Context) {
	names, err := h.service.Specialties(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, names)
}

func (h *MentorHandler) Create(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	mentor, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Created(c, "Perfil de mentor criado com sucesso", mentor)
}

func (h *MentorHandler) Update(c *gin.Context) {
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

	var req dto.UpdateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	mentor, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Mentor atualizado com sucesso", mentor)
}

func (h *MentorHandler) ReplaceAvailability(c *gin.Context) {
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

	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	mentor, err := h.service.ReplaceAvailability(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Disponibilidade atualizada com sucesso", mentor)
}

func (h *MentorHandler) Delete(c *gin.Context) {
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

	response.Message(c, "Mentor excluído com sucesso")
}
