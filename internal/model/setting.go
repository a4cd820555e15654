package model

// Setting per-user preferences (table settings)
type Setting struct {
	UserID             string `gorm:"type:uuid;primaryKey"   json:"user_id"`
	MotivationalQuotes bool   `gorm:"not null;default:false" json:"motivational_quotes"`
	VibrationEffects   bool   `gorm:"not null;default:false" json:"vibration_effects"`
	BaseModel
}

// TableName table name
func (Setting) TableName() string { return "settings" }
