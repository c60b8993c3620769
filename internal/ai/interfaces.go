package ai

import (
	"context"

	"skillmatch/internal/proficiency"
)

// Provider is the backend behind the classification oracle. All methods
// return token usage information; callers can ignore it if not needed.
type Provider interface {
	Classify(ctx context.Context, req proficiency.ClassifyRequest) (proficiency.Judgment, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// TokenUsage represents token usage information from oracle responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo represents information about the oracle model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
