package handler

import (
	statService "anoa.com/mentoria/internal/modules/stat/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.statService.GetPlatformStats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, stats)
}
