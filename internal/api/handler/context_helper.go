package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/response"
)

// Context keys set by middleware.JWTAuth
const (
	CtxUserID   = "user_id"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetUserID extracts the authenticated user id.
// Writes a 401 and returns false when the auth middleware did not run;
// callers return immediately on false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// tokenInfo returns the jti and expiry of the access token in use
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString(CtxTokenJTI)
	exp, _ := c.Get(CtxTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}

// parseSessionID reads the :id path parameter.
// Writes a 400 and returns false when it is not a positive integer.
func parseSessionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "invalid session id")
		return 0, false
	}
	return uint(id), true
}

// badRequest answers a failed bind, distinguishing an oversized body
func badRequest(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
}

// formFile opens the optional multipart file field. The returned close func is never nil.
func formFile(c *gin.Context, field string) (*service.FileUpload, func(), error) {
	noop := func() {}
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &service.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

// handleUploadError maps upload failures shared by session and profile endpoints.
// Reports false when err is not an upload error.
func handleUploadError(c *gin.Context, err error) bool {
	if errors.Is(err, service.ErrUnsupportedUpload) {
		response.BadRequest(c, 17001, "unsupported upload")
		return true
	}
	return false
}
