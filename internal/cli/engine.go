package cli

import (
	"fmt"

	"skillmatch/internal/ai"
	"skillmatch/internal/config"
	"skillmatch/internal/errors"
	"skillmatch/internal/evaluation"
	"skillmatch/internal/proficiency"
)

// newAnalyzerFromConfig wires the configured proficiency oracle into a skill
// analyzer
func newAnalyzerFromConfig(cfg *config.Config, logger *errors.Logger) (*proficiency.Analyzer, error) {
	classifyCfg := cfg.GetClassifyConfig()
	oracleService, err := ai.NewService(&classifyCfg, "classify", logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create oracle service: %w", err)
	}
	return proficiency.NewAnalyzer(oracleService, logger), nil
}

// resolvePolicy picks the evaluation policy for a run. An explicit policy id
// wins, then the division lookup; both fall back to the built-in defaults
// when no policy file is configured.
func resolvePolicy(cfg *config.Config, logger *errors.Logger, policyID, division string) (evaluation.EvaluationConfig, error) {
	if division == "" {
		division = cfg.Evaluation.DefaultDivision
	}

	if cfg.Evaluation.ConfigFile == "" {
		return evaluation.DefaultConfig(division), nil
	}

	store, err := config.NewPolicyStore(cfg.Evaluation, logger)
	if err != nil {
		return evaluation.EvaluationConfig{}, fmt.Errorf("failed to load evaluation policies: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Failed to close policy store", "error", cerr)
		}
	}()

	if policyID != "" {
		return store.Get(policyID), nil
	}
	return store.GetForDivision(division), nil
}
