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

// ── session catalog errors ──

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionForbidden     = errors.New("not the owner of this session")
	ErrInvalidSessionFields = errors.New("invalid session fields")
)

// SessionService catalog reads and owner-only writes
//
// Prebuilt sessions (system owner) are read-only. Custom sessions may only be
// changed or deleted by the user who created them; anyone may read any session.
type SessionService interface {
	ListPrebuilt(ctx context.Context, q *dto.SessionListQuery) ([]dto.SessionResponse, error)
	// ListForUser returns the caller's progress rows joined with their session,
	// newest subscription first
	ListForUser(ctx context.Context, userID string, q *dto.MyListQuery) ([]dto.MySessionResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SessionResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateSessionRequest, image *FileUpload) (*dto.SessionResponse, error)
	Update(ctx context.Context, userID string, id uint, req *dto.UpdateSessionRequest, image *FileUpload) (*dto.SessionResponse, error)
	// Delete removes the session and every progress row referencing it
	Delete(ctx context.Context, userID string, id uint) error
}

type sessionService struct {
	repo     *repository.Repository
	uploader storage.Uploader
	logger   *zap.Logger
}

// NewSessionService creates a SessionService
func NewSessionService(repo *repository.Repository, uploader storage.Uploader, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, uploader: uploader, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *sessionService) ListPrebuilt(ctx context.Context, q *dto.SessionListQuery) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListPrebuilt(ctx, toSessionFilter(q))
	if err != nil {
		s.logger.Error("failed to list prebuilt sessions", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

func (s *sessionService) ListForUser(ctx context.Context, userID string, q *dto.MyListQuery) ([]dto.MySessionResponse, error) {
	if q == nil {
		q = &dto.MyListQuery{}
	}
	rows, err := s.repo.Progress.ListByUser(ctx, userID, repository.ProgressFilter{
		SessionFilter: toSessionFilter(&q.SessionListQuery),
		Favorite:      q.Favorite,
	})
	if err != nil {
		s.logger.Error("failed to list user sessions", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MySessionResponse, 0, len(rows))
	for i := range rows {
		if rows[i].Session == nil {
			continue
		}
		result = append(result, dto.MySessionResponse{
			Session:  *toSessionResponse(rows[i].Session),
			Progress: *toProgressResponse(&rows[i]),
		})
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id uint) (*dto.SessionResponse, error) {
	session, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, userID string, req *dto.CreateSessionRequest, image *FileUpload) (*dto.SessionResponse, error) {
	session := &model.Session{
		Title:       strings.TrimSpace(req.Title),
		Type:        model.SessionType(req.Type),
		Difficulty:  model.Difficulty(req.Difficulty),
		Duration:    req.Duration,
		Intensity:   req.Intensity,
		Description: req.Description,
	}
	session.SetOwner(model.UserOwner(userID))

	if err := validateSession(session); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := uploadImage(ctx, s.uploader, storage.CategorySession, image, s.logger)
		if err != nil {
			return nil, err
		}
		session.ImageURL = &url
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Update ──────────────────────

func (s *sessionService) Update(ctx context.Context, userID string, id uint, req *dto.UpdateSessionRequest, image *FileUpload) (*dto.SessionResponse, error) {
	session, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		session.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		session.Type = model.SessionType(*req.Type)
	}
	if req.Difficulty != nil {
		session.Difficulty = model.Difficulty(*req.Difficulty)
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}
	if req.Intensity != nil {
		session.Intensity = *req.Intensity
	}
	if req.Description != nil {
		session.Description = *req.Description
	}

	if err := validateSession(session); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := uploadImage(ctx, s.uploader, storage.CategorySession, image, s.logger)
		if err != nil {
			return nil, err
		}
		session.ImageURL = &url
	}

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("failed to update session", zap.Uint("session_id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(ctx context.Context, userID string, id uint) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Session.DeleteWithProgress(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("failed to delete session", zap.Uint("session_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("session deleted", zap.Uint("session_id", id), zap.String("user_id", userID))
	return nil
}

// ── helpers ──

func (s *sessionService) get(ctx context.Context, id uint) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to look up session", zap.Uint("session_id", id), zap.Error(err))
		return nil, err
	}
	return session, nil
}

// getOwned loads the session and checks userID owns it.
// System-owned sessions are never owned by a user.
func (s *sessionService) getOwned(ctx context.Context, userID string, id uint) (*model.Session, error) {
	session, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Owner().Is(userID) {
		return nil, ErrSessionForbidden
	}
	return session, nil
}

func validateSession(session *model.Session) error {
	switch {
	case session.Title == "":
		return ErrInvalidSessionFields
	case !session.Type.Valid(), !session.Difficulty.Valid():
		return ErrInvalidSessionFields
	case session.Duration < 1:
		return ErrInvalidSessionFields
	case session.Intensity < model.MinIntensity || session.Intensity > model.MaxIntensity:
		return ErrInvalidSessionFields
	}
	return nil
}

func toSessionFilter(q *dto.SessionListQuery) repository.SessionFilter {
	if q == nil {
		return repository.SessionFilter{}
	}
	return repository.SessionFilter{
		Title:      q.Title,
		Type:       model.SessionType(q.Type),
		Difficulty: model.Difficulty(q.Difficulty),
	}
}

func toSessionResponse(session *model.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:          session.SessionID,
		Title:       session.Title,
		Type:        string(session.Type),
		Difficulty:  string(session.Difficulty),
		Duration:    session.Duration,
		Intensity:   session.Intensity,
		Description: session.Description,
		ImageURL:    session.ImageURL,
		OwnerID:     session.OwnerID,
		IsCustom:    !session.Owner().IsSystem(),
		CreatedAt:   formatTime(session.CreatedAt),
		UpdatedAt:   formatTime(session.UpdatedAt),
	}
}
