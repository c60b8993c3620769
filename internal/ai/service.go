package ai

import (
	"context"
	"fmt"

	"skillmatch/internal/config"
	"skillmatch/internal/errors"
	"skillmatch/internal/proficiency"
	"skillmatch/internal/types"
)

// Service is the classification oracle used by the proficiency analyzer. It
// selects a provider from configuration and adapts it to the single-method
// Oracle capability.
type Service struct {
	Provider Provider // Exported for access from the server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// Service satisfies the oracle capability the classifier consumes
var _ proficiency.Oracle = (*Service)(nil)

// NewService creates the oracle service for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	logger.Debug("Initializing oracle service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"max_retries", *cfg.MaxRetries)

	var provider Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	case "rules":
		provider = rulesProvider{}
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported oracle provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create oracle provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Classify implements proficiency.Oracle, logging token usage as it passes
// through
func (s *Service) Classify(ctx context.Context, req proficiency.ClassifyRequest) (proficiency.Judgment, error) {
	judgment, usage, err := s.Provider.Classify(ctx, req)
	if err != nil {
		return proficiency.Judgment{}, err
	}

	if usage != nil {
		s.logger.Debug("Oracle classification completed",
			"skill", req.Skill,
			"tier", judgment.Tier,
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens)
	}
	return judgment, nil
}

// GetModelInfo returns information about the oracle model for health checks
func (s *Service) GetModelInfo(ctx context.Context) *ModelInfo {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases the provider
func (s *Service) Close() error {
	return s.Provider.Close()
}

// rulesProvider is the offline provider backed by the deterministic year
// thresholds. It never errors and consumes no tokens.
type rulesProvider struct{}

var _ Provider = rulesProvider{}

func (rulesProvider) Classify(ctx context.Context, req proficiency.ClassifyRequest) (proficiency.Judgment, *TokenUsage, error) {
	judgment, err := proficiency.RuleOracle{Source: types.YearsFromTimeline}.Classify(ctx, req)
	return judgment, nil, err
}

func (rulesProvider) GetModelInfo(context.Context) *ModelInfo {
	return &ModelInfo{Name: "rules", DisplayName: "Deterministic rules", Available: true}
}

func (rulesProvider) Close() error { return nil }
