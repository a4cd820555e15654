package dto

// ── Settings ──

// UpdateSettingRequest fields left nil are not changed
type UpdateSettingRequest struct {
	MotivationalQuotes *bool `json:"motivational_quotes"`
	VibrationEffects   *bool `json:"vibration_effects"`
}

// SettingResponse per-user preferences
type SettingResponse struct {
	MotivationalQuotes bool   `json:"motivational_quotes"`
	VibrationEffects   bool   `json:"vibration_effects"`
	UpdatedAt          string `json:"updated_at"`
}

// ── Quotes ──

// QuoteResponse motivational quote
type QuoteResponse struct {
	ID     uint   `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}
