package proficiency

import (
	"context"
	"fmt"
	"strings"

	"skillmatch/internal/errors"
	"skillmatch/internal/timeline"
	"skillmatch/internal/types"
)

// Analyzer drives timeline aggregation and proficiency classification across
// all skills of a candidate
type Analyzer struct {
	aggregator *timeline.Aggregator
	classifier *Classifier
	logger     *errors.Logger
}

// NewAnalyzer creates an analyzer. Pass a nil oracle for rule-only operation.
func NewAnalyzer(oracle Oracle, logger *errors.Logger, opts ...timeline.Option) *Analyzer {
	return &Analyzer{
		aggregator: timeline.NewAggregator(logger, opts...),
		classifier: NewClassifier(oracle, logger),
		logger:     logger,
	}
}

// AnalyzeSkills assesses every skill name against the employment history.
// Input records are never mutated. A failing oracle call for one skill does
// not abort the rest; no skill is ever omitted from the result.
func (a *Analyzer) AnalyzeSkills(ctx context.Context, skills []string, records []types.EmploymentRecord, totalCareerYears float64) []types.SkillAssessment {
	assessments := make([]types.SkillAssessment, 0, len(skills))

	for _, skill := range skills {
		tl := a.aggregator.ForSkill(skill, records)

		assessment := types.SkillAssessment{
			Skill:        skill,
			FirstUsed:    tl.FirstUsed,
			LastUsed:     tl.LastUsed,
			Employers:    tl.Employers,
			MentionCount: tl.MentionCount,
		}

		switch {
		case tl.Years == 0 && totalCareerYears > 0:
			// Common with resumes that carry a global skills section:
			// the skill is listed but never tied to a position. Total
			// career length is the proxy, flagged as weaker evidence.
			usageContext := fmt.Sprintf("Listed in skills section | Total experience: %.1f years", totalCareerYears)
			tier, confidence, reasoning := a.classifier.Classify(ctx, skill, totalCareerYears, types.YearsFromCareer, usageContext)

			assessment.YearsExperience = totalCareerYears
			assessment.Source = types.YearsFromCareer
			assessment.Proficiency = tier
			assessment.Confidence = confidence
			assessment.Reasoning = reasoning

		case tl.Years == 0:
			assessment.Source = types.YearsUnknown
			assessment.Proficiency = types.TierBeginner
			assessment.Confidence = unknownConfidence
			assessment.Reasoning = fmt.Sprintf("%s is mentioned in the profile but experience unclear", skill)

		default:
			usageContext := fmt.Sprintf("Used at: %s | Duration: %.1f years",
				strings.Join(firstN(tl.Employers, 3), ", "), tl.Years)
			tier, confidence, reasoning := a.classifier.Classify(ctx, skill, tl.Years, types.YearsFromTimeline, usageContext)

			assessment.YearsExperience = tl.Years
			assessment.Source = types.YearsFromTimeline
			assessment.Proficiency = tier
			assessment.Confidence = confidence
			assessment.Reasoning = reasoning
		}

		assessments = append(assessments, assessment)
	}

	return assessments
}

// AnalyzeProfile assesses every skill of the candidate and returns the
// report together with the enriched skill entities
func (a *Analyzer) AnalyzeProfile(ctx context.Context, candidate types.CandidateProfile) types.ProfileOutput {
	names := make([]string, 0, len(candidate.Skills))
	for _, s := range candidate.Skills {
		names = append(names, s.Name)
	}

	assessments := a.AnalyzeSkills(ctx, names, candidate.Employment, candidate.TotalYearsExperience)

	return types.ProfileOutput{
		Candidate:   candidate.Name,
		Assessments: assessments,
		Skills:      MergeAssessments(candidate.Skills, assessments),
	}
}

// MergeAssessments copies proficiency results into skill entities, matching
// by exact skill name. The input slice is left untouched.
func MergeAssessments(skills []types.Skill, assessments []types.SkillAssessment) []types.Skill {
	byName := make(map[string]types.SkillAssessment, len(assessments))
	for _, a := range assessments {
		byName[a.Skill] = a
	}

	merged := make([]types.Skill, len(skills))
	copy(merged, skills)
	for i := range merged {
		assessment, ok := byName[merged[i].Name]
		if !ok {
			continue
		}
		merged[i].Proficiency = assessment.Proficiency
		merged[i].YearsExperience = assessment.YearsExperience
		merged[i].Confidence = assessment.Confidence
		merged[i].LastUsed = assessment.LastUsed
	}
	return merged
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}
