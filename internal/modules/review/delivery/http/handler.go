package handler

import (
	"anoa.com/mentoria/internal/modules/review/dto"
	"anoa.com/mentoria/internal/modules/review/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	review, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Created(c, "Avaliação registrada com sucesso", review)
}

// BySession serves GET /sessions/:id/reviews.
func (h *ReviewHandler) BySession(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reviews, err := h.service.BySession(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, reviews)
}

// ByUser serves GET /users/:id/reviews.
func (h *ReviewHandler) ByUser(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	reviews, err := h.service.ByUser(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, reviews)
}
