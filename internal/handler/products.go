package handler

import (
	"net/http"

	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// List godoc
// @Summary      List products of the caller's enterprise
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        name         query string false "Name contains (case-insensitive)"
// @Param        status       query string false "active | inactive | out_of_stock"
// @Param        supplier_id  query string false "Supplier UUID"
// @Param        skip         query int    false "Offset"
// @Param        limit        query int    false "Page size"
// @Success      200  {array}  dto.ProductResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /api/v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body     dto.CreateProductRequest true "Product"
// @Success      201  {object} dto.ProductResponse
// @Failure      409  {object} apierror.APIError
// @Router       /api/v1/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
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

func (h *ProductsHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := paramUUID(c, "category_id")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListByCategory(c.Request.Context(), actor(c), categoryID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "Product UUID"
// @Success      200  {object} dto.ProductResponse
// @Failure      403  {object} apierror.APIError "Product belongs to another enterprise"
// @Failure      404  {object} apierror.APIError
// @Router       /api/v1/products/{id} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
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

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted successfully"})
}

// AdjustStock godoc
// @Summary      Apply a manual stock adjustment
// @Description  Adds delta (negative to remove) under a row lock and records a stock movement.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string                 true "Product UUID"
// @Param        body body     dto.AdjustStockRequest true "Delta and reason"
// @Success      200  {object} dto.ProductResponse
// @Failure      409  {object} apierror.APIError "Insufficient stock"
// @Router       /api/v1/products/{id}/stock [patch]
func (h *ProductsHandler) AdjustStock(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Movements(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.Movements(c.Request.Context(), actor(c), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
