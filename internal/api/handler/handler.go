package handler

import "hooplog/backend/internal/service"

// Handler aggregates every HTTP handler
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Session  *SessionHandler
	Progress *ProgressHandler
	Setting  *SettingHandler
	Quote    *QuoteHandler
	Export   *ExportHandler
}

// NewHandler builds the handlers on top of svc
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Session:  NewSessionHandler(svc.Session),
		Progress: NewProgressHandler(svc.Progress),
		Setting:  NewSettingHandler(svc.Setting),
		Quote:    NewQuoteHandler(svc.Quote),
		Export:   NewExportHandler(svc.Export),
	}
}
