// Package evaluation scores candidates against requisitions using weighted,
// evidence-backed criteria.
package evaluation

import (
	"fmt"

	"skillmatch/internal/errors"
	"skillmatch/internal/types"
)

// Criterion weights must sum to 1.0 within this tolerance band. A violation
// is a broken evaluation policy, not noisy input, so it fails at config load.
const (
	weightSumMin = 0.95
	weightSumMax = 1.05
)

// CriterionConfig configures one evaluation criterion
type CriterionConfig struct {
	Name         string              `json:"name" mapstructure:"name"`
	Type         types.CriterionType `json:"type" mapstructure:"type"`
	Weight       float64             `json:"weight" mapstructure:"weight"`
	IsRequired   bool                `json:"isRequired" mapstructure:"isRequired"`
	MinimumScore float64             `json:"minimumScore" mapstructure:"minimumScore"`
	Description  string              `json:"description,omitempty" mapstructure:"description"`
}

// EvaluationConfig is the complete scoring policy for a role or division
type EvaluationConfig struct {
	ID                   string            `json:"id" mapstructure:"id"`
	Name                 string            `json:"name" mapstructure:"name"`
	Division             string            `json:"division,omitempty" mapstructure:"division"`
	Criteria             []CriterionConfig `json:"criteria" mapstructure:"criteria"`
	OverallPassThreshold float64           `json:"overallPassThreshold" mapstructure:"overallPassThreshold"`
	StrictMode           bool              `json:"strictMode" mapstructure:"strictMode"`
}

// Validate checks the policy at configuration time. This is the one error
// class the engine raises to the caller; evaluation itself assumes a valid
// config.
func (c EvaluationConfig) Validate() error {
	if len(c.Criteria) == 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidCriteria,
			fmt.Sprintf("Evaluation config %q has no criteria", c.ID), nil)
	}

	var weightSum float64
	for _, criterion := range c.Criteria {
		if criterion.Name == "" {
			return errors.NewConfigError(errors.ErrCodeInvalidCriteria,
				fmt.Sprintf("Evaluation config %q has a criterion without a name", c.ID), nil)
		}
		if criterion.Weight < 0 || criterion.Weight > 1 {
			return errors.NewConfigError(errors.ErrCodeInvalidCriteria,
				fmt.Sprintf("Criterion %q weight %.2f outside [0,1]", criterion.Name, criterion.Weight), nil)
		}
		if criterion.MinimumScore < 0 || criterion.MinimumScore > 100 {
			return errors.NewConfigError(errors.ErrCodeInvalidCriteria,
				fmt.Sprintf("Criterion %q minimum score %.1f outside [0,100]", criterion.Name, criterion.MinimumScore), nil)
		}
		weightSum += criterion.Weight
	}

	if weightSum < weightSumMin || weightSum > weightSumMax {
		return errors.NewConfigError(errors.ErrCodeInvalidCriteria,
			fmt.Sprintf("Criterion weights must sum to ~1.0, got %.2f", weightSum), nil)
	}

	if c.OverallPassThreshold < 0 || c.OverallPassThreshold > 100 {
		return errors.NewConfigError(errors.ErrCodeInvalidCriteria,
			fmt.Sprintf("Overall pass threshold %.1f outside [0,100]", c.OverallPassThreshold), nil)
	}

	return nil
}

// RequiredCriteria returns only the disqualifying criteria
func (c EvaluationConfig) RequiredCriteria() []CriterionConfig {
	var out []CriterionConfig
	for _, criterion := range c.Criteria {
		if criterion.IsRequired {
			out = append(out, criterion)
		}
	}
	return out
}

// CriteriaByType returns the criteria of one type
func (c EvaluationConfig) CriteriaByType(t types.CriterionType) []CriterionConfig {
	var out []CriterionConfig
	for _, criterion := range c.Criteria {
		if criterion.Type == t {
			out = append(out, criterion)
		}
	}
	return out
}

// DefaultConfig returns the built-in scoring policy used when no config is
// supplied
func DefaultConfig(division string) EvaluationConfig {
	if division == "" {
		division = "general"
	}
	return EvaluationConfig{
		ID:       "default_" + division,
		Name:     "Default Configuration - " + division,
		Division: division,
		Criteria: []CriterionConfig{
			{
				Name:         "Technical Skills",
				Type:         types.CriterionSkills,
				Weight:       0.30,
				IsRequired:   true,
				MinimumScore: 60,
				Description:  "Match on required technical skills",
			},
			{
				Name:         "Experience",
				Type:         types.CriterionExperience,
				Weight:       0.30,
				IsRequired:   true,
				MinimumScore: 50,
				Description:  "Relevant work experience",
			},
			{
				Name:         "Education",
				Type:         types.CriterionEducation,
				Weight:       0.20,
				MinimumScore: 40,
				Description:  "Educational background",
			},
			{
				Name:        "Certifications",
				Type:        types.CriterionCertifications,
				Weight:      0.20,
				Description: "Professional certifications",
			},
		},
		OverallPassThreshold: 60,
	}
}
