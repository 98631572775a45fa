package handler

import (
	"fmt"
	"net/http"

	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

func (h *InvoicesHandler) List(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), actor(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoicesHandler) ByDateRange(c *gin.Context) {
	var q dto.DateRangeQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListByDateRange(c.Request.Context(), actor(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoicesHandler) Sales(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), actor(c), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF godoc
// @Summary      Download the invoice receipt
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path     string true "Invoice UUID"
// @Success      200  {file}   binary
// @Failure      404  {object} apierror.APIError
// @Router       /api/v1/invoices/{id}/pdf [get]
func (h *InvoicesHandler) PDF(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.svc.PDF(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="invoice-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *InvoicesHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Invoice deleted successfully"})
}
