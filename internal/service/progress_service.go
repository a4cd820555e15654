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

// ── progress errors ──

var (
	ErrNotSubscribed      = errors.New("not subscribed to this session")
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
)

// ProgressService per-user subscription state
//
//   - Subscribe is idempotent and never resets an existing row
//   - Unsubscribe fails with ErrNotSubscribed when there is nothing to remove
//   - UpdateProgress and ToggleFavorite create the row when it is missing
type ProgressService interface {
	Subscribe(ctx context.Context, userID string, sessionID uint) (*dto.ProgressResponse, error)
	Unsubscribe(ctx context.Context, userID string, sessionID uint) error
	UpdateProgress(ctx context.Context, userID string, sessionID uint, req *dto.UpdateProgressRequest) (*dto.ProgressResponse, error)
	// ToggleFavorite sets favorite to the given value, or flips it when nil.
	// A new row starts as favorite unless false is given.
	ToggleFavorite(ctx context.Context, userID string, sessionID uint, favorite *bool) (*dto.ProgressResponse, error)
	// ResetAll deletes every progress row of the user and returns how many went
	ResetAll(ctx context.Context, userID string) (int64, error)
}

type progressService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgressService creates a ProgressService
func NewProgressService(repo *repository.Repository, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, logger: logger}
}

// ────────────────────── Subscribe ──────────────────────

func (s *progressService) Subscribe(ctx context.Context, userID string, sessionID uint) (*dto.ProgressResponse, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	p, created, err := s.repo.Progress.GetOrCreate(ctx, userID, sessionID, model.SessionProgress{})
	if err != nil {
		s.logger.Error("failed to subscribe",
			zap.String("user_id", userID), zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if created {
		s.logger.Debug("subscribed", zap.String("user_id", userID), zap.Uint("session_id", sessionID))
	}
	return toProgressResponse(p), nil
}

// ────────────────────── Unsubscribe ──────────────────────

func (s *progressService) Unsubscribe(ctx context.Context, userID string, sessionID uint) error {
	if err := s.repo.Progress.Delete(ctx, userID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSubscribed
		}
		s.logger.Error("failed to unsubscribe",
			zap.String("user_id", userID), zap.Uint("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── UpdateProgress ──────────────────────

func (s *progressService) UpdateProgress(ctx context.Context, userID string, sessionID uint, req *dto.UpdateProgressRequest) (*dto.ProgressResponse, error) {
	if req.Progress != nil && (*req.Progress < model.MinProgress || *req.Progress > model.MaxProgress) {
		return nil, ErrProgressOutOfRange
	}
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	defaults := model.SessionProgress{}
	if req.Progress != nil {
		defaults.Progress = *req.Progress
	}
	if req.Favorite != nil {
		defaults.Favorite = *req.Favorite
	}

	p, created, err := s.repo.Progress.GetOrCreate(ctx, userID, sessionID, defaults)
	if err != nil {
		s.logger.Error("failed to load progress",
			zap.String("user_id", userID), zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if created {
		return toProgressResponse(p), nil
	}

	if req.Progress != nil {
		p.Progress = *req.Progress
	}
	if req.Favorite != nil {
		p.Favorite = *req.Favorite
	}
	if err := s.repo.Progress.Update(ctx, p); err != nil {
		s.logger.Error("failed to update progress",
			zap.String("user_id", userID), zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return toProgressResponse(p), nil
}

// ────────────────────── ToggleFavorite ──────────────────────

func (s *progressService) ToggleFavorite(ctx context.Context, userID string, sessionID uint, favorite *bool) (*dto.ProgressResponse, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	defaults := model.SessionProgress{Favorite: true}
	if favorite != nil {
		defaults.Favorite = *favorite
	}

	p, created, err := s.repo.Progress.GetOrCreate(ctx, userID, sessionID, defaults)
	if err != nil {
		s.logger.Error("failed to load progress",
			zap.String("user_id", userID), zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if created {
		return toProgressResponse(p), nil
	}

	if favorite != nil {
		p.Favorite = *favorite
	} else {
		p.Favorite = !p.Favorite
	}
	if err := s.repo.Progress.Update(ctx, p); err != nil {
		s.logger.Error("failed to toggle favorite",
			zap.String("user_id", userID), zap.Uint("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return toProgressResponse(p), nil
}

// ────────────────────── ResetAll ──────────────────────

func (s *progressService) ResetAll(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.Progress.DeleteByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to reset progress", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	s.logger.Info("progress reset", zap.String("user_id", userID), zap.Int64("deleted", n))
	return n, nil
}

// ── helpers ──

func (s *progressService) requireSession(ctx context.Context, sessionID uint) error {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("failed to look up session", zap.Uint("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func toProgressResponse(p *model.SessionProgress) *dto.ProgressResponse {
	return &dto.ProgressResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		SessionID: p.SessionID,
		Progress:  p.Progress,
		Favorite:  p.Favorite,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}
