package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/service"
	"hooplog/backend/pkg/response"
)

// UserHandler profile endpoints
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// UpdateProfile updates name / phone and optionally the avatar
// PUT /api/v1/user/profile (JSON or multipart with "avatar")
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	avatar, closeFile, err := formFile(c, "avatar")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeFile()

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req, avatar)
	if err != nil {
		if handleUploadError(c, err) {
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
