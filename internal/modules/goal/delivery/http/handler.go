package handler

import (
	"anoa.com/mentoria/internal/modules/goal/dto"
	"anoa.com/mentoria/internal/modules/goal/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	service service.GoalService
}

func NewGoalHandler(service service.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) GetAll(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.GoalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	goals, err := h.service.GetAll(c.Request.Context(), caller, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, goals)
}

func (h *GoalHandler) GetByID(c *gin.Context) {
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

	goal, err := h.service.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, goal)
}

func (h *GoalHandler) Create(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	goal, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Created(c, "Meta criada com sucesso", goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
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

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	goal, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Meta atualizada com sucesso", goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
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

	response.Message(c, "Meta excluída com sucesso")
}
