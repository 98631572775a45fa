package handler

import (
	"net/http"

	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type EmployeesHandler struct{ svc service.EmployeeService }

func NewEmployeesHandler(svc service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

func (h *EmployeesHandler) List(c *gin.Context) {
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

func (h *EmployeesHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
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

// Me returns the identity resolved for this request.
func (h *EmployeesHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, actor(c))
}

func (h *EmployeesHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateMeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateMe(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) Get(c *gin.Context) {
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

func (h *EmployeesHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEmployeeRequest
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

func (h *EmployeesHandler) Activate(c *gin.Context)   { h.setActive(c, true) }
func (h *EmployeesHandler) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *EmployeesHandler) setActive(c *gin.Context, active bool) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), actor(c), id, active); err != nil {
		respondError(c, err)
		return
	}
	msg := "Employee deactivated successfully"
	if active {
		msg = "Employee activated successfully"
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func (h *EmployeesHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Employee deleted successfully"})
}
