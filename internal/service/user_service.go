package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/model"
	"hooplog/backend/internal/repository"
	"hooplog/backend/pkg/storage"
)

// UserService profile management
type UserService interface {
	// UpdateProfile merges the given fields; avatar may be nil
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest, avatar *FileUpload) (*dto.UserResponse, error)
}

type userService struct {
	repo     *repository.Repository
	uploader storage.Uploader
	logger   *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, uploader storage.Uploader, logger *zap.Logger) UserService {
	return &userService{repo: repo, uploader: uploader, logger: logger}
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest, avatar *FileUpload) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to look up user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if avatar != nil {
		url, err := uploadImage(ctx, s.uploader, storage.CategoryAvatar, avatar, s.logger)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = url
	}

	if err := s.repo.User.UpdateProfile(ctx, user); err != nil {
		s.logger.Error("failed to update user", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

// toUserResponse converts model.User to dto.UserResponse
func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.UserID,
		FullName:  user.FullName,
		Email:     user.Email,
		Phone:     user.Phone,
		AvatarURL: user.AvatarURL,
		CreatedAt: formatTime(user.CreatedAt),
	}
}
