package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/response"
)

// ProgressHandler subscription / progress endpoints
type ProgressHandler struct {
	progressSvc service.ProgressService
}

// NewProgressHandler creates a ProgressHandler
func NewProgressHandler(progressSvc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// Subscribe adds the session to the caller's list
// POST /api/v1/sessions/:id/subscribe
func (h *ProgressHandler) Subscribe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	p, err := h.progressSvc.Subscribe(c.Request.Context(), userID, id)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.Created(c, p)
}

// Unsubscribe removes the session from the caller's list
// DELETE /api/v1/sessions/:id/unsubscribe
func (h *ProgressHandler) Unsubscribe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.progressSvc.Unsubscribe(c.Request.Context(), userID, id); err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OKMessage(c, "unsubscribed")
}

// UpdateProgress sets progress and/or favorite
// PUT /api/v1/sessions/:id/progress
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.progressSvc.UpdateProgress(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, p)
}

// ToggleFavorite sets or flips the favorite flag; an empty body flips
// POST /api/v1/sessions/:id/favorite
func (h *ProgressHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req dto.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	p, err := h.progressSvc.ToggleFavorite(c.Request.Context(), userID, id, req.Favorite)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, p)
}

// ResetAll deletes all of the caller's progress rows
// POST /api/v1/sessions/reset-progress
func (h *ProgressHandler) ResetAll(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	n, err := h.progressSvc.ResetAll(c.Request.Context(), userID)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, dto.ResetProgressResponse{Deleted: n})
}

func (h *ProgressHandler) handleProgressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "session not found")
	case errors.Is(err, service.ErrNotSubscribed):
		response.NotFound(c, 14001, "not subscribed to this session")
	case errors.Is(err, service.ErrProgressOutOfRange):
		response.BadRequest(c, 14002, "progress must be between 0 and 100")
	default:
		response.InternalError(c)
	}
}
