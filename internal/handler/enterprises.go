package handler

import (
	"net/http"

	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type EnterprisesHandler struct{ svc service.EnterpriseService }

func NewEnterprisesHandler(svc service.EnterpriseService) *EnterprisesHandler {
	return &EnterprisesHandler{svc: svc}
}

func (h *EnterprisesHandler) Create(c *gin.Context) {
	var req dto.CreateEnterpriseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EnterprisesHandler) List(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EnterprisesHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EnterprisesHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Enterprise deleted successfully"})
}
