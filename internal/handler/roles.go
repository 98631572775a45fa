package handler

import (
	"net/http"

	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type RolesHandler struct {
	roles service.RoleService
	perms service.PermissionService
}

func NewRolesHandler(roles service.RoleService, perms service.PermissionService) *RolesHandler {
	return &RolesHandler{roles: roles, perms: perms}
}

func (h *RolesHandler) ListRoles(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.roles.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RolesHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.roles.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RolesHandler) GetRole(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.roles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RolesHandler) RolePermissions(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.roles.Permissions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Permissions ──────────────────────────────────────────────────────────────

func (h *RolesHandler) ListPermissions(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.perms.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RolesHandler) CreatePermission(c *gin.Context) {
	var req dto.CreatePermissionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.perms.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RolesHandler) GetPermission(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.perms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
