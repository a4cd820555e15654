package dto

// ── Session catalog ──

// CreateSessionRequest new custom session. Bound from JSON or multipart form;
// a non-numeric duration or intensity fails binding.
type CreateSessionRequest struct {
	Title       string `json:"title"       form:"title"       binding:"required,max=100"`
	Type        string `json:"type"        form:"type"        binding:"required"`
	Difficulty  string `json:"difficulty"  form:"difficulty"  binding:"required"`
	Duration    int    `json:"duration"    form:"duration"    binding:"required"`
	Intensity   int    `json:"intensity"   form:"intensity"   binding:"required"`
	Description string `json:"description" form:"description" binding:"max=2000"`
}

// UpdateSessionRequest partial session update
type UpdateSessionRequest struct {
	Title       *string `json:"title"       form:"title"       binding:"omitempty,max=100"`
	Type        *string `json:"type"        form:"type"`
	Difficulty  *string `json:"difficulty"  form:"difficulty"`
	Duration    *int    `json:"duration"    form:"duration"`
	Intensity   *int    `json:"intensity"   form:"intensity"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=2000"`
}

// SessionListQuery GET /sessions/prebuilt
type SessionListQuery struct {
	Title      string `form:"title"`
	Type       string `form:"type"`
	Difficulty string `form:"difficulty"`
}

// MyListQuery GET /sessions/mylist
type MyListQuery struct {
	SessionListQuery
	Favorite *bool `form:"favorite"`
}

// SessionResponse catalog entry
type SessionResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Difficulty  string  `json:"difficulty"`
	Duration    int     `json:"duration"`
	Intensity   int     `json:"intensity"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	OwnerID     *string `json:"owner_id"`
	IsCustom    bool    `json:"is_custom"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// MySessionResponse a catalog entry joined with the caller's progress row
type MySessionResponse struct {
	Session  SessionResponse  `json:"session"`
	Progress ProgressResponse `json:"progress"`
}
