package model

const (
	MinProgress = 0
	MaxProgress = 100
)

// SessionProgress a user's subscription to a session (table user_session_progress)
// At most one row per (user_id, session_id).
type SessionProgress struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"                                json:"id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:unique_user_session"       json:"user_id"`
	SessionID uint   `gorm:"not null;uniqueIndex:unique_user_session;index"           json:"session_id"`
	Progress  int    `gorm:"not null;default:0"                                      json:"progress"`
	Favorite  bool   `gorm:"not null;default:false"                                  json:"favorite"`
	BaseModel

	Session *Session `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:RESTRICT" json:"session,omitempty"`
}

// TableName table name
func (SessionProgress) TableName() string { return "user_session_progress" }
