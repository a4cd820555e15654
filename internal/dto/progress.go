package dto

// ── Progress ──

// UpdateProgressRequest fields left nil are not changed
type UpdateProgressRequest struct {
	Progress *int  `json:"progress"`
	Favorite *bool `json:"favorite"`
}

// ToggleFavoriteRequest nil Favorite flips the current value
type ToggleFavoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

// ProgressResponse user_session_progress row
type ProgressResponse struct {
	ID        uint   `json:"id"`
	UserID    string `json:"user_id"`
	SessionID uint   `json:"session_id"`
	Progress  int    `json:"progress"`
	Favorite  bool   `json:"favorite"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ResetProgressResponse POST /sessions/reset-progress
type ResetProgressResponse struct {
	Deleted int64 `json:"deleted"`
}
