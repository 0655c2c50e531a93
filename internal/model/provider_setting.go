package model

import "time"

// ProviderSetting is a user's persisted LLM provider override. The settings
// service falls back to the built-in default when no row exists.
type ProviderSetting struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex" json:"user_id"`
	Provider  string    `gorm:"not null" json:"provider"` // openai, groq, gemini
	Model     string    `gorm:"not null" json:"model"`
	APIKey    string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
