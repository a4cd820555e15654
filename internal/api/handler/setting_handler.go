package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/response"
)

// SettingHandler preferences endpoints
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler creates a SettingHandler
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// Get GET /api/v1/settings
func (h *SettingHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	setting, err := h.settingSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, setting)
}

// Update PUT /api/v1/settings
func (h *SettingHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	setting, err := h.settingSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, setting)
}

func (h *SettingHandler) handleSettingError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSettingNotFound) {
		response.NotFound(c, 15001, "settings not found")
		return
	}
	response.InternalError(c)
}
