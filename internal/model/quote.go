package model

import "time"

// Quote motivational quote (table quotes)
type Quote struct {
	QuoteID   uint      `gorm:"primaryKey;autoIncrement"              json:"id"`
	Text      string    `gorm:"type:text;not null"                    json:"text"`
	Author    string    `gorm:"type:varchar(100);not null;default:''" json:"author"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

// TableName table name
func (Quote) TableName() string { return "quotes" }
