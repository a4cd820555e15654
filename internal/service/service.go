package service

import (
	"time"

	"go.uber.org/zap"

	"hooplog/backend/config"
	"hooplog/backend/internal/repository"
	"hooplog/backend/pkg/jwt"
	"hooplog/backend/pkg/redis"
	"hooplog/backend/pkg/storage"
)

// Service aggregates every business service
type Service struct {
	Auth     AuthService
	User     UserService
	Session  SessionService
	Progress ProgressService
	Setting  SettingService
	Quote    QuoteService
	Export   ExportService
}

// NewService wires the services. rdb may be nil when Redis is not configured.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	uploader storage.Uploader,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, uploader, logger),
		Session:  NewSessionService(repo, uploader, logger),
		Progress: NewProgressService(repo, logger),
		Setting:  NewSettingService(repo, logger),
		Quote:    NewQuoteService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}

// formatTime renders timestamps in responses
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
