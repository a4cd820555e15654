package dto

// ── Auth responses ──

// TokenResponse token pair plus the authenticated user
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime in seconds
	User         UserResponse `json:"user"`
}

// ── User responses ──

// UserResponse public user fields
type UserResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt string `json:"created_at"`
}

// UpdateProfileRequest partial profile update. Bound from JSON or multipart form.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" form:"full_name" binding:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone"     form:"phone"     binding:"omitempty,max=30"`
}
