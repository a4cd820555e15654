package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User account (table users)
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey"              json:"user_id"`
	FullName     string `gorm:"type:varchar(100);not null"        json:"full_name"`
	Email        string `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"        json:"-"`
	Phone        string `gorm:"type:varchar(30);not null;default:''" json:"phone"`
	AvatarURL    string `gorm:"type:text;not null;default:''"     json:"avatar_url"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// BeforeCreate assigns the UUID in application code so SQLite works too
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}
