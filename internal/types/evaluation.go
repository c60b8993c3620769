package types

import (
	"fmt"
	"sort"
	"strings"
)

// CriterionType identifies what dimension of the match a criterion scores
type CriterionType string

const (
	CriterionSkills         CriterionType = "skills"
	CriterionExperience     CriterionType = "experience"
	CriterionEducation      CriterionType = "education"
	CriterionCertifications CriterionType = "certifications"
	CriterionSoftSkills     CriterionType = "soft_skills"
	CriterionCultureFit     CriterionType = "culture_fit"
	CriterionLocation       CriterionType = "location"
	CriterionSalary         CriterionType = "salary"
	CriterionCustom         CriterionType = "custom"
)

// MatchLevel is the ordinal bucket derived from a 0-100 score
type MatchLevel string

const (
	MatchExcellent MatchLevel = "excellent" // 90-100
	MatchGood      MatchLevel = "good"      // 75-89
	MatchModerate  MatchLevel = "moderate"  // 60-74
	MatchWeak      MatchLevel = "weak"      // 40-59
	MatchPoor      MatchLevel = "poor"      // 0-39
)

// Recommendation is the final hiring recommendation tier
type Recommendation string

const (
	RecommendStrongYes Recommendation = "strong_yes"
	RecommendYes       Recommendation = "yes"
	RecommendMaybe     Recommendation = "maybe"
	RecommendNo        Recommendation = "no"
	RecommendStrongNo  Recommendation = "strong_no"
)

// MatchImpact categorizes how a piece of evidence moves the score
type MatchImpact string

const (
	ImpactPositive MatchImpact = "positive"
	ImpactNeutral  MatchImpact = "neutral"
	ImpactNegative MatchImpact = "negative"
)

// MatchEvidence ties a CV-side span to a JD-side span so every score is
// auditable
type MatchEvidence struct {
	CVSpan         string      `json:"cvSpan,omitempty"`
	JDSpan         string      `json:"jdSpan,omitempty"`
	MatchType      string      `json:"matchType"`
	Confidence     float64     `json:"confidence"`
	Reason         string      `json:"reason,omitempty"`
	Impact         float64     `json:"impact"` // -1 to 1, negative = penalty
	ImpactCategory MatchImpact `json:"impactCategory"`
}

// CriterionEvaluation is the immutable result of scoring one criterion
type CriterionEvaluation struct {
	CriterionName string          `json:"criterionName"`
	CriterionType CriterionType   `json:"criterionType"`
	Score         float64         `json:"score"`
	Weight        float64         `json:"weight"`
	WeightedScore float64         `json:"weightedScore"`
	Passed        bool            `json:"passed"`
	IsRequired    bool            `json:"isRequired"`
	MatchLevel    MatchLevel      `json:"matchLevel"`
	Matches       []MatchEvidence `json:"matches,omitempty"`
	Gaps          []string        `json:"gaps,omitempty"`
	Strengths     []string        `json:"strengths,omitempty"`
	Explanation   string          `json:"explanation,omitempty"`
}

// PositiveMatches returns the evidence with positive impact
func (c CriterionEvaluation) PositiveMatches() []MatchEvidence {
	var out []MatchEvidence
	for _, m := range c.Matches {
		if m.Impact > 0 {
			out = append(out, m)
		}
	}
	return out
}

// NegativeMatches returns the evidence with negative impact
func (c CriterionEvaluation) NegativeMatches() []MatchEvidence {
	var out []MatchEvidence
	for _, m := range c.Matches {
		if m.Impact < 0 {
			out = append(out, m)
		}
	}
	return out
}

// CVJDEvaluation is the complete match result for one (candidate,
// requisition, config) triple. It is never mutated after creation; all
// derived views below are pure reads.
type CVJDEvaluation struct {
	CandidateName          string                `json:"candidateName,omitempty"`
	RequisitionTitle       string                `json:"requisitionTitle,omitempty"`
	ConfigID               string                `json:"configId,omitempty"`
	OverallScore           float64               `json:"overallScore"`
	MatchLevel             MatchLevel            `json:"matchLevel"`
	Passed                 bool                  `json:"passed"`
	Criteria               []CriterionEvaluation `json:"criteria"`
	IsDisqualified         bool                  `json:"isDisqualified"`
	DisqualificationReason []string              `json:"disqualificationReasons,omitempty"`
	Recommendation         Recommendation        `json:"recommendation"`
	RecommendationReason   string                `json:"recommendationReason,omitempty"`
	ConfidenceScore        float64               `json:"confidenceScore"`
	EvaluatedAt            string                `json:"evaluatedAt,omitempty"`
}

// FailedRequiredCriteria returns required criteria that missed their minimum
func (e CVJDEvaluation) FailedRequiredCriteria() []CriterionEvaluation {
	var out []CriterionEvaluation
	for _, c := range e.Criteria {
		if c.IsRequired && !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

// TopCriteria returns the n highest scoring criteria
func (e CVJDEvaluation) TopCriteria(n int) []CriterionEvaluation {
	return e.sortedByScore(n, true)
}

// LowestCriteria returns the n lowest scoring criteria
func (e CVJDEvaluation) LowestCriteria(n int) []CriterionEvaluation {
	return e.sortedByScore(n, false)
}

func (e CVJDEvaluation) sortedByScore(n int, descending bool) []CriterionEvaluation {
	out := make([]CriterionEvaluation, len(e.Criteria))
	copy(out, e.Criteria)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Score > out[j].Score
		}
		return out[i].Score < out[j].Score
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// CriteriaByType returns the evaluations for one criterion type
func (e CVJDEvaluation) CriteriaByType(t CriterionType) []CriterionEvaluation {
	var out []CriterionEvaluation
	for _, c := range e.Criteria {
		if c.CriterionType == t {
			out = append(out, c)
		}
	}
	return out
}

// ComponentScores returns the average score per criterion type
func (e CVJDEvaluation) ComponentScores() map[CriterionType]float64 {
	sums := make(map[CriterionType]float64)
	counts := make(map[CriterionType]int)
	for _, c := range e.Criteria {
		sums[c.CriterionType] += c.Score
		counts[c.CriterionType]++
	}

	out := make(map[CriterionType]float64, len(sums))
	for t, sum := range sums {
		out[t] = sum / float64(counts[t])
	}
	return out
}

// AllGaps collects the gaps across every criterion
func (e CVJDEvaluation) AllGaps() []string {
	var out []string
	for _, c := range e.Criteria {
		out = append(out, c.Gaps...)
	}
	return out
}

// AllStrengths collects the strengths across every criterion
func (e CVJDEvaluation) AllStrengths() []string {
	var out []string
	for _, c := range e.Criteria {
		out = append(out, c.Strengths...)
	}
	return out
}

// Summary renders a one-line overview of the evaluation, e.g.
// "Overall: good (78.5%) | Passed: 4/5 criteria | Recommendation: yes"
func (e CVJDEvaluation) Summary() string {
	passed := 0
	for _, c := range e.Criteria {
		if c.Passed {
			passed++
		}
	}

	parts := []string{
		fmt.Sprintf("Overall: %s (%.1f%%)", e.MatchLevel, e.OverallScore),
		fmt.Sprintf("Passed: %d/%d criteria", passed, len(e.Criteria)),
		fmt.Sprintf("Recommendation: %s", e.Recommendation),
	}
	if e.IsDisqualified {
		parts = append(parts, "DISQUALIFIED")
	}
	return strings.Join(parts, " | ")
}

// MatchOutput is the result of the match operation, pairing the evaluation
// with the proficiency-enriched skill set it was computed from
type MatchOutput struct {
	Evaluation CVJDEvaluation    `json:"evaluation"`
	Profile    []SkillAssessment `json:"profile,omitempty"`
}

// BatchEvaluation holds the evaluations of multiple candidates against one
// requisition, for ranking
type BatchEvaluation struct {
	RequisitionTitle string           `json:"requisitionTitle,omitempty"`
	ConfigID         string           `json:"configId,omitempty"`
	Evaluations      []CVJDEvaluation `json:"evaluations"`
}

// Ranked returns the evaluations ordered by overall score, best first
func (b BatchEvaluation) Ranked() []CVJDEvaluation {
	out := make([]CVJDEvaluation, len(b.Evaluations))
	copy(out, b.Evaluations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	return out
}

// Qualified returns only candidates that passed and were not disqualified
func (b BatchEvaluation) Qualified() []CVJDEvaluation {
	var out []CVJDEvaluation
	for _, e := range b.Evaluations {
		if e.Passed && !e.IsDisqualified {
			out = append(out, e)
		}
	}
	return out
}

// StrongYes returns candidates with a strong_yes recommendation
func (b BatchEvaluation) StrongYes() []CVJDEvaluation {
	var out []CVJDEvaluation
	for _, e := range b.Evaluations {
		if e.Recommendation == RecommendStrongYes {
			out = append(out, e)
		}
	}
	return out
}

// TopN returns the n best candidates by overall score
func (b BatchEvaluation) TopN(n int) []CVJDEvaluation {
	ranked := b.Ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
