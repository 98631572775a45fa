package handler

import (
	"net/http"
	"strconv"

	"github.com/MartinOstios/backend-posco/internal/apierror"
	"github.com/MartinOstios/backend-posco/internal/dto"
	"github.com/MartinOstios/backend-posco/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationsHandler struct{ svc service.NotificationService }

func NewNotificationsHandler(svc service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

func (h *NotificationsHandler) Register(c *gin.Context) {
	var req dto.RegisterTokenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) MyTokens(c *gin.Context) {
	activeOnly := true
	if v := c.Query("active_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, apierror.InvalidInput("Invalid active_only"))
			return
		}
		activeOnly = b
	}
	resp, err := h.svc.ListMine(c.Request.Context(), actor(c), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTokenRequest
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

func (h *NotificationsHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Token deleted successfully"})
}

func (h *NotificationsHandler) SendTest(c *gin.Context) {
	resp, err := h.svc.SendTest(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) SendToUser(c *gin.Context) {
	userID, ok := paramUUID(c, "user_id")
	if !ok {
		return
	}
	var req dto.SendNotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SendToUser(c.Request.Context(), actor(c), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
