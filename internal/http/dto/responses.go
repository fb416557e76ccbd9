package dto

import "github.com/lead-insights/backend/internal/models"

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// StateResponse wraps the full document, which every mutating endpoint
// returns so clients never need a follow-up read.
type StateResponse struct {
	State   *models.Document    `json:"state"`
	Message string              `json:"message,omitempty"`
	Run     *models.AdInputRun  `json:"run,omitempty"`
	Jobs    []models.PublishJob `json:"jobs,omitempty"`
}

type HealthResponse struct {
	OK                    bool   `json:"ok"`
	Service               string `json:"service"`
	OpenAIConfigured      bool   `json:"openAiConfigured"`
	OpenAIFallbackEnabled bool   `json:"openAiFallbackEnabled"`
	Model                 string `json:"model"`
}
