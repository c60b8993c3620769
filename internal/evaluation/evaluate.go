package evaluation

import (
	"fmt"
	"strings"
	"time"

	"skillmatch/internal/types"
)

// Evaluate scores the candidate against the requisition under the given
// config. The config must already be validated; Evaluate itself never
// errors on candidate or requisition content.
func (e *Evaluator) Evaluate(candidate types.CandidateProfile, req types.Requisition, cfg EvaluationConfig) types.CVJDEvaluation {
	evaluations := make([]types.CriterionEvaluation, 0, len(cfg.Criteria))

	// Weights are validated to sum to ~1.0 at config load; the overall score
	// is the plain sum of weighted contributions, not re-normalized
	var overall float64
	for _, criterion := range cfg.Criteria {
		result := e.EvaluateCriterion(criterion, candidate, req)
		evaluations = append(evaluations, result)
		overall += result.WeightedScore
	}

	var reasons []string
	failedRequired := 0
	for _, result := range evaluations {
		if result.IsRequired && !result.Passed {
			failedRequired++
			reasons = append(reasons, fmt.Sprintf("Required criterion %q scored %.1f, below minimum %.1f",
				result.CriterionName, result.Score, minimumFor(cfg, result.CriterionName)))
		}
	}
	disqualified := failedRequired > 0

	recommendation := Recommend(overall, failedRequired, disqualified)
	evaluation := types.CVJDEvaluation{
		CandidateName:          candidate.Name,
		RequisitionTitle:       req.Title,
		ConfigID:               cfg.ID,
		OverallScore:           overall,
		MatchLevel:             MatchLevelForScore(overall),
		Passed:                 overall >= cfg.OverallPassThreshold && !disqualified,
		Criteria:               evaluations,
		IsDisqualified:         disqualified,
		DisqualificationReason: reasons,
		Recommendation:         recommendation,
		RecommendationReason:   recommendationReason(recommendation, overall, reasons),
		ConfidenceScore:        confidenceScore(evaluations),
		EvaluatedAt:            time.Now().UTC().Format(time.RFC3339),
	}

	if e.logger != nil {
		e.logger.Info("evaluation completed",
			"candidate", candidate.Name,
			"requisition", req.Title,
			"config", cfg.ID,
			"score", overall,
			"recommendation", string(recommendation),
			"disqualified", disqualified,
		)
	}
	return evaluation
}

// EvaluateBatch scores multiple candidates against one requisition
func (e *Evaluator) EvaluateBatch(candidates []types.CandidateProfile, req types.Requisition, cfg EvaluationConfig) types.BatchEvaluation {
	batch := types.BatchEvaluation{
		RequisitionTitle: req.Title,
		ConfigID:         cfg.ID,
		Evaluations:      make([]types.CVJDEvaluation, 0, len(candidates)),
	}
	for _, candidate := range candidates {
		batch.Evaluations = append(batch.Evaluations, e.Evaluate(candidate, req, cfg))
	}
	return batch
}

// confidenceScore averages the confidence across all recorded evidence.
// No evidence at all means we know nothing either way.
func confidenceScore(evaluations []types.CriterionEvaluation) float64 {
	var sum float64
	count := 0
	for _, evaluation := range evaluations {
		for _, match := range evaluation.Matches {
			sum += match.Confidence
			count++
		}
	}
	if count == 0 {
		return 0.5
	}
	return sum / float64(count)
}

func minimumFor(cfg EvaluationConfig, name string) float64 {
	for _, criterion := range cfg.Criteria {
		if criterion.Name == name {
			return criterion.MinimumScore
		}
	}
	return 0
}

func recommendationReason(rec types.Recommendation, overall float64, disqualifications []string) string {
	if len(disqualifications) > 0 {
		return "Disqualified: " + strings.Join(disqualifications, "; ")
	}
	return fmt.Sprintf("Overall score %.1f maps to %s", overall, rec)
}

// Summarize renders a one-line human summary of an evaluation
func Summarize(e types.CVJDEvaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s: %.1f/100 (%s), recommendation %s",
		orPlaceholder(e.CandidateName, "candidate"),
		orPlaceholder(e.RequisitionTitle, "requisition"),
		e.OverallScore, e.MatchLevel, e.Recommendation)
	if e.IsDisqualified {
		fmt.Fprintf(&b, " [disqualified: %s]", strings.Join(e.DisqualificationReason, "; "))
	}
	return b.String()
}

func orPlaceholder(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
