package evaluation

import "skillmatch/internal/types"

// MatchLevelForScore buckets a 0-100 score into its ordinal match level
func MatchLevelForScore(score float64) types.MatchLevel {
	switch {
	case score >= 90:
		return types.MatchExcellent
	case score >= 75:
		return types.MatchGood
	case score >= 60:
		return types.MatchModerate
	case score >= 40:
		return types.MatchWeak
	default:
		return types.MatchPoor
	}
}

// Recommend derives the hiring recommendation. Disqualification and failed
// required criteria are checked strictly before the score thresholds: a
// perfect overall score never overrides a failed required criterion.
func Recommend(overallScore float64, failedRequired int, isDisqualified bool) types.Recommendation {
	if isDisqualified || failedRequired > 0 {
		return types.RecommendStrongNo
	}

	switch {
	case overallScore >= 90:
		return types.RecommendStrongYes
	case overallScore >= 75:
		return types.RecommendYes
	case overallScore >= 60:
		return types.RecommendMaybe
	case overallScore >= 40:
		return types.RecommendNo
	default:
		return types.RecommendStrongNo
	}
}
