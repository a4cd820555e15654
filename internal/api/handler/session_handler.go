package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/response"
)

// SessionHandler catalog endpoints
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler creates a SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListPrebuilt system catalog
// GET /api/v1/sessions/prebuilt?title=&type=&difficulty=
func (h *SessionHandler) ListPrebuilt(c *gin.Context) {
	var q dto.SessionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.sessionSvc.ListPrebuilt(c.Request.Context(), &q)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListMine the caller's subscribed sessions with progress
// GET /api/v1/sessions/mylist?title=&type=&difficulty=&favorite=
func (h *SessionHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.MyListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.sessionSvc.ListForUser(c.Request.Context(), userID, &q)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Get any session by id
// GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// Create custom session owned by the caller
// POST /api/v1/sessions (JSON or multipart with "image")
func (h *SessionHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	image, closeFile, err := formFile(c, "image")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeFile()

	session, err := h.sessionSvc.Create(c.Request.Context(), userID, &req, image)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// Update owner-only partial update
// PUT /api/v1/sessions/:id
func (h *SessionHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	image, closeFile, err := formFile(c, "image")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeFile()

	session, err := h.sessionSvc.Update(c.Request.Context(), userID, id, &req, image)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// Delete owner-only delete, cascading to progress rows
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OKMessage(c, "session deleted")
}

func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	if handleUploadError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "session not found")
	case errors.Is(err, service.ErrSessionForbidden):
		response.Forbidden(c, 13002, "not the owner of this session")
	case errors.Is(err, service.ErrInvalidSessionFields):
		response.BadRequest(c, 13003, "invalid session fields")
	default:
		response.InternalError(c)
	}
}
