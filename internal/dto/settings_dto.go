package dto

import "time"

type ProviderSettingSaveDTO struct {
	Provider string `json:"provider" binding:"required,oneof=openai groq gemini"`
	Model    string `json:"model" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}

// ProviderSettingResponseDTO never echoes the stored key.
type ProviderSettingResponseDTO struct {
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	IsDefault bool      `json:"is_default"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
