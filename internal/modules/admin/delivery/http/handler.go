package handler

import (
	"anoa.com/mentoria/internal/modules/admin/dto"
	adminService "anoa.com/mentoria/internal/modules/admin/service"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService adminService.AdminService
}

func NewAdminHandler(adminService adminService.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	var filter dto.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.adminService.GetAllUsers(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, res)
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
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

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.adminService.UpdateRole(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Papel atualizado com sucesso", res)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
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

	if err := h.adminService.DeleteUser(c.Request.Context(), caller, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, "Usuário excluído com sucesso")
}
