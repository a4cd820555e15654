package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hooplog/backend/internal/dto"
	"hooplog/backend/internal/model"
	"hooplog/backend/internal/repository"
)

// ErrSettingNotFound settings row missing; created at signup, so this is a data fault
var ErrSettingNotFound = errors.New("settings not found")

// SettingService per-user preferences
type SettingService interface {
	Get(ctx context.Context, userID string) (*dto.SettingResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService creates a SettingService
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

func (s *settingService) Get(ctx context.Context, userID string) (*dto.SettingResponse, error) {
	setting, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingService) Update(ctx context.Context, userID string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	setting, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.MotivationalQuotes != nil {
		setting.MotivationalQuotes = *req.MotivationalQuotes
	}
	if req.VibrationEffects != nil {
		setting.VibrationEffects = *req.VibrationEffects
	}

	if err := s.repo.Setting.Update(ctx, setting); err != nil {
		s.logger.Error("failed to update settings", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSettingResponse(setting), nil
}

func (s *settingService) load(ctx context.Context, userID string) (*model.Setting, error) {
	setting, err := s.repo.Setting.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("settings row missing", zap.String("user_id", userID))
			return nil, ErrSettingNotFound
		}
		s.logger.Error("failed to load settings", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return setting, nil
}

func toSettingResponse(setting *model.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		MotivationalQuotes: setting.MotivationalQuotes,
		VibrationEffects:   setting.VibrationEffects,
		UpdatedAt:          formatTime(setting.UpdatedAt),
	}
}
