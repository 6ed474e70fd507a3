package handler

import (
	"anoa.com/mentoria/internal/modules/document/dto"
	"anoa.com/mentoria/internal/modules/document/service"
	"anoa.com/mentoria/pkg/apperror"
	"anoa.com/mentoria/pkg/response"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service service.DocumentService
}

func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

func (h *DocumentHandler) GetAll(c *gin.Context) {
	var filter dto.DocumentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	caller, _ := response.GetUser(c)
	docs, err := h.service.GetAll(c.Request.Context(), caller, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, docs)
}

func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	caller, _ := response.GetUser(c)
	viewer := c.ClientIP()
	if caller != nil {
		viewer = caller.ID.String()
	}

	doc, err := h.service.GetByID(c.Request.Context(), caller, id, viewer)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, doc)
}

func (h *DocumentHandler) Create(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	doc, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Created(c, "Documento criado com sucesso", doc)
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	caller, err := response.CurrentUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.Validation("Arquivo é obrigatório"))
		return
	}

	res, err := h.service.Upload(c.Request.Context(), caller, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Created(c, "Arquivo enviado com sucesso", res)
}

func (h *DocumentHandler) Update(c *gin.Context) {
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

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	doc, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.WithMessage(c, "Documento atualizado com sucesso", doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
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

	response.Message(c, "Documento excluído com sucesso")
}

func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := response.ParamUUID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	caller, _ := response.GetUser(c)
	res, err := h.service.Download(c.Request.Context(), caller, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.OK(c, res)
}
