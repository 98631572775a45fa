package handler

import (
	"net/http"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Employee login
// @Description Accepts an OAuth2 password form or a JSON body with username (email) and password.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindWith(c, &req, c.ShouldBind) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TestToken godoc
// @Summary Validate the bearer token and return the current employee
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} authz.Identity
// @Failure 401 {object} apierror.APIError
// @Router /api/v1/auth/login/test-token [post]
func (h *AuthHandler) TestToken(c *gin.Context) {
	c.JSON(http.StatusOK, actor(c))
}

// RecoverPassword godoc
// @Summary Send a 4-digit reset code to the employee's email
// @Tags auth
// @Produce json
// @Param email path string true "Employee email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/v1/auth/password-recovery/{email} [post]
func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	email := c.Param("email")
	if err := validate.Var(email, "required,email"); err != nil {
		respondError(c, apierror.InvalidInput("Invalid email"))
		return
	}
	if err := h.svc.RecoverPassword(c.Request.Context(), email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password recovery email sent"})
}

// ResetPassword godoc
// @Summary Set a new password with a reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Code and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
