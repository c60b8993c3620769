package proficiency

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"skillmatch/internal/errors"
	"skillmatch/internal/types"
)

// confidenceByLabel is the fixed label-to-float mapping for oracle confidence
// verdicts. The bucket values are a tunable design choice; change them here,
// not in control flow.
var confidenceByLabel = map[string]float64{
	"high":   0.9,
	"medium": 0.7,
	"low":    0.5,
}

const (
	// fallbackConfidence applies whenever the deterministic rules decided
	// the tier instead of the oracle
	fallbackConfidence = 0.6
	// unknownConfidence applies when a skill has no usable evidence at all
	unknownConfidence = 0.5
	// careerConfidenceCap bounds oracle confidence for career-derived
	// classifications, which rest on weaker evidence than timeline ones
	careerConfidenceCap = 0.75
)

// Classifier produces a proficiency tier for one skill. The oracle is
// optional; with a nil oracle every classification takes the deterministic
// path.
type Classifier struct {
	oracle Oracle
	logger *errors.Logger
}

// NewClassifier creates a classifier backed by the given oracle
func NewClassifier(oracle Oracle, logger *errors.Logger) *Classifier {
	return &Classifier{oracle: oracle, logger: logger}
}

// Classify returns tier, confidence and reasoning for a skill given its years
// of use and a usage-context description. An oracle failure of any kind
// degrades to the deterministic rules; this method never returns an error.
func (c *Classifier) Classify(ctx context.Context, skill string, years float64, source types.YearsSource, usageContext string) (types.ProficiencyTier, float64, string) {
	if c.oracle == nil {
		return c.fallback(skill, years, source)
	}

	judgment, err := c.oracle.Classify(ctx, ClassifyRequest{
		Skill:        skill,
		Years:        years,
		UsageContext: usageContext,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Classification oracle failed, using rule-based fallback",
				"skill", skill, "error", err.Error())
		}
		return c.fallback(skill, years, source)
	}

	tier, ok := parseTier(judgment.Tier)
	if !ok {
		if c.logger != nil {
			c.logger.Warn("Classification oracle returned unknown tier, using rule-based fallback",
				"skill", skill, "tier", judgment.Tier)
		}
		return c.fallback(skill, years, source)
	}

	confidence := c.mapConfidence(judgment.Confidence, source)
	if source == types.YearsFromCareer && confidence > careerConfidenceCap {
		confidence = careerConfidenceCap
	}

	reasoning := judgment.Reasoning
	if reasoning == "" {
		reasoning = fmt.Sprintf("Based on %.1f years of experience", years)
	}
	return tier, confidence, reasoning
}

// fallback applies the fixed year thresholds with the fixed fallback
// confidence
func (c *Classifier) fallback(skill string, years float64, source types.YearsSource) (types.ProficiencyTier, float64, string) {
	tier := tierForYears(years, source)
	reasoning := fmt.Sprintf("Based on %.1f years of experience", years)
	if source == types.YearsFromCareer {
		reasoning = fmt.Sprintf("Estimated from %.1f years total experience", years)
	}
	return tier, fallbackConfidence, reasoning
}

// mapConfidence normalizes the oracle's confidence output: a recognized label
// maps through the bucket table, a numeric string is taken as-is (clamped to
// [0,1]), anything else falls back to a source-dependent default.
func (c *Classifier) mapConfidence(raw string, source types.YearsSource) float64 {
	label := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := confidenceByLabel[label]; ok {
		return v
	}

	if v, err := strconv.ParseFloat(label, 64); err == nil {
		switch {
		case v < 0:
			return 0
		case v > 1:
			return 1
		default:
			return v
		}
	}

	if source == types.YearsFromCareer {
		return fallbackConfidence
	}
	return confidenceByLabel["medium"]
}

func parseTier(raw string) (types.ProficiencyTier, bool) {
	switch types.ProficiencyTier(strings.ToLower(strings.TrimSpace(raw))) {
	case types.TierBeginner:
		return types.TierBeginner, true
	case types.TierIntermediate:
		return types.TierIntermediate, true
	case types.TierAdvanced:
		return types.TierAdvanced, true
	case types.TierExpert:
		return types.TierExpert, true
	default:
		return "", false
	}
}
