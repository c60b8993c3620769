// Package proficiency classifies skill proficiency from timeline evidence,
// delegating to an external classification oracle when one is available and
// degrading to deterministic rules when it is not.
package proficiency

import (
	"context"
	"fmt"

	"skillmatch/internal/types"
)

// ClassifyRequest is the evidence handed to the classification oracle
type ClassifyRequest struct {
	Skill        string
	Years        float64
	UsageContext string
}

// Judgment is the oracle's verdict. Confidence arrives as the oracle produced
// it: a label ("high", "medium", "low") or a bare number; the classifier
// normalizes it.
type Judgment struct {
	Tier       string `json:"proficiencyLevel"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

// Oracle is the single-method capability that maps skill usage evidence to a
// proficiency judgment. The production implementation is LLM-backed; RuleOracle
// is the deterministic alternative. Callers must treat any error as a signal
// to fall back, never as fatal.
type Oracle interface {
	Classify(ctx context.Context, req ClassifyRequest) (Judgment, error)
}

// RuleOracle classifies purely from year thresholds. It never errors, which
// makes it usable both as the offline provider and in tests.
type RuleOracle struct {
	// Source selects which threshold table applies; career-derived years
	// use the wider brackets.
	Source types.YearsSource
}

// Classify implements Oracle with the fixed year thresholds
func (r RuleOracle) Classify(_ context.Context, req ClassifyRequest) (Judgment, error) {
	tier := tierForYears(req.Years, r.Source)
	return Judgment{
		Tier:       string(tier),
		Confidence: fmt.Sprintf("%.1f", fallbackConfidence),
		Reasoning:  fmt.Sprintf("Based on %.1f years of experience", req.Years),
	}, nil
}

// tierForYears applies the deterministic threshold tables. Timeline-derived
// years use the tighter brackets; career-derived years, being weaker evidence
// of any single skill, use the wider ones.
func tierForYears(years float64, source types.YearsSource) types.ProficiencyTier {
	if source == types.YearsFromCareer {
		switch {
		case years < 2:
			return types.TierBeginner
		case years < 5:
			return types.TierIntermediate
		case years < 10:
			return types.TierAdvanced
		default:
			return types.TierExpert
		}
	}

	switch {
	case years < 1:
		return types.TierBeginner
	case years < 3:
		return types.TierIntermediate
	case years < 5:
		return types.TierAdvanced
	default:
		return types.TierExpert
	}
}
