package evaluation

import (
	"fmt"
	"math"
	"strings"

	"skillmatch/internal/errors"
	"skillmatch/internal/types"
)

// Evaluator scores criteria and aggregates them into a full evaluation
type Evaluator struct {
	logger *errors.Logger
}

// NewEvaluator creates an evaluator
func NewEvaluator(logger *errors.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// EvaluateCriterion scores one criterion from the comparison data its type
// requires. Always returns a complete evaluation; data the candidate or
// requisition is missing shows up as lower scores or neutral passes, never
// as an error.
func (e *Evaluator) EvaluateCriterion(cfg CriterionConfig, candidate types.CandidateProfile, req types.Requisition) types.CriterionEvaluation {
	var outcome criterionOutcome

	switch cfg.Type {
	case types.CriterionSkills:
		outcome = scoreSkills(candidate, req)
	case types.CriterionExperience:
		outcome = scoreExperience(candidate, req)
	case types.CriterionEducation:
		outcome = scoreEducation(candidate, req)
	case types.CriterionCertifications:
		outcome = scoreCertifications(candidate, req)
	case types.CriterionLocation:
		outcome = scoreLocation(candidate, req)
	case types.CriterionSalary:
		outcome = scoreSalary(candidate, req)
	default:
		// soft_skills, culture_fit and custom criteria score against the
		// requisition's configured expectations for this criterion
		outcome = scoreExpectations(cfg.Name, candidate, req)
	}

	score := clampScore(outcome.score)
	return types.CriterionEvaluation{
		CriterionName: cfg.Name,
		CriterionType: cfg.Type,
		Score:         score,
		Weight:        cfg.Weight,
		WeightedScore: score * cfg.Weight,
		Passed:        score >= cfg.MinimumScore,
		IsRequired:    cfg.IsRequired,
		MatchLevel:    MatchLevelForScore(score),
		Matches:       outcome.matches,
		Gaps:          outcome.gaps,
		Strengths:     outcome.strengths,
		Explanation:   outcome.explanation,
	}
}

type criterionOutcome struct {
	score       float64
	matches     []types.MatchEvidence
	gaps        []string
	strengths   []string
	explanation string
}

// scoreSkills weighs required-skill coverage at 70% and preferred-skill
// coverage at 30%
func scoreSkills(candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome

	requiredHits := 0
	for _, wanted := range req.RequiredSkills {
		skill, ok := findSkill(candidate.Skills, wanted)
		if !ok {
			out.gaps = append(out.gaps, fmt.Sprintf("Required skill not found: %s", wanted))
			out.matches = append(out.matches, types.MatchEvidence{
				JDSpan:         wanted,
				MatchType:      "missing",
				Confidence:     0.9,
				Reason:         "No matching skill in candidate profile",
				Impact:         -1.0,
				ImpactCategory: types.ImpactNegative,
			})
			continue
		}
		requiredHits++
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         describeSkill(skill),
			JDSpan:         wanted,
			MatchType:      "exact",
			Confidence:     skillConfidence(skill),
			Reason:         "Required skill present",
			Impact:         1.0,
			ImpactCategory: types.ImpactPositive,
		})
		if skill.Proficiency == types.TierExpert || skill.Proficiency == types.TierAdvanced {
			out.strengths = append(out.strengths, fmt.Sprintf("%s proficiency in %s", titleCase(string(skill.Proficiency)), skill.Name))
		}
	}

	preferredHits := 0
	for _, wanted := range req.PreferredSkills {
		skill, ok := findSkill(candidate.Skills, wanted)
		if !ok {
			continue
		}
		preferredHits++
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         describeSkill(skill),
			JDSpan:         wanted,
			MatchType:      "exact",
			Confidence:     skillConfidence(skill),
			Reason:         "Preferred skill present",
			Impact:         0.5,
			ImpactCategory: types.ImpactPositive,
		})
		out.strengths = append(out.strengths, fmt.Sprintf("Brings preferred skill %s", skill.Name))
	}

	requiredScore := 100.0
	if len(req.RequiredSkills) > 0 {
		requiredScore = 100 * float64(requiredHits) / float64(len(req.RequiredSkills))
	}
	preferredScore := requiredScore
	if len(req.PreferredSkills) > 0 {
		preferredScore = 100 * float64(preferredHits) / float64(len(req.PreferredSkills))
	}

	out.score = 0.7*requiredScore + 0.3*preferredScore
	out.explanation = fmt.Sprintf("Matched %d/%d required and %d/%d preferred skills",
		requiredHits, len(req.RequiredSkills), preferredHits, len(req.PreferredSkills))
	return out
}

func scoreExperience(candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome
	years := candidate.TotalYearsExperience

	if req.MinYearsExperience <= 0 {
		out.score = 100
		out.explanation = "No minimum experience specified"
		return out
	}

	ratio := years / req.MinYearsExperience
	out.score = math.Min(100, ratio*100)

	switch {
	case years >= req.MinYearsExperience*1.5:
		out.strengths = append(out.strengths,
			fmt.Sprintf("%.1f years of experience, well above the %.1f required", years, req.MinYearsExperience))
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         fmt.Sprintf("%.1f years total experience", years),
			JDSpan:         fmt.Sprintf("%.1f years required", req.MinYearsExperience),
			MatchType:      "exceeds",
			Confidence:     0.9,
			Impact:         1.0,
			ImpactCategory: types.ImpactPositive,
		})
	case years >= req.MinYearsExperience:
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         fmt.Sprintf("%.1f years total experience", years),
			JDSpan:         fmt.Sprintf("%.1f years required", req.MinYearsExperience),
			MatchType:      "meets",
			Confidence:     0.9,
			Impact:         0.8,
			ImpactCategory: types.ImpactPositive,
		})
	default:
		out.gaps = append(out.gaps,
			fmt.Sprintf("%.1f years required, candidate has %.1f", req.MinYearsExperience, years))
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         fmt.Sprintf("%.1f years total experience", years),
			JDSpan:         fmt.Sprintf("%.1f years required", req.MinYearsExperience),
			MatchType:      "below",
			Confidence:     0.9,
			Impact:         -0.6,
			ImpactCategory: types.ImpactNegative,
		})
	}

	out.explanation = fmt.Sprintf("Candidate has %.1f of %.1f required years", years, req.MinYearsExperience)
	return out
}

// educationRank orders degree levels for comparison. Unknown levels rank 0.
var educationRank = map[string]int{
	"high_school":  1,
	"certificate":  2,
	"associate":    2,
	"bachelor":     3,
	"master":       4,
	"professional": 4,
	"doctorate":    5,
}

func scoreEducation(candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome

	reqRank := educationRank[strings.ToLower(req.EducationLevel)]
	if reqRank == 0 {
		out.score = 100
		out.explanation = "No education requirement specified"
		return out
	}

	candRank := educationRank[strings.ToLower(candidate.EducationLevel)]
	if candRank == 0 {
		out.score = 20
		out.gaps = append(out.gaps, fmt.Sprintf("Education level unknown; %s required", req.EducationLevel))
		out.explanation = "Candidate education level could not be determined"
		return out
	}

	if candRank >= reqRank {
		out.score = 100
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         candidate.EducationLevel,
			JDSpan:         req.EducationLevel,
			MatchType:      "meets",
			Confidence:     0.9,
			Impact:         0.8,
			ImpactCategory: types.ImpactPositive,
		})
		if candRank > reqRank {
			out.strengths = append(out.strengths,
				fmt.Sprintf("Holds %s, above the required %s", candidate.EducationLevel, req.EducationLevel))
		}
		out.explanation = fmt.Sprintf("%s satisfies the %s requirement", candidate.EducationLevel, req.EducationLevel)
		return out
	}

	deficit := reqRank - candRank
	out.score = math.Max(10, 100-float64(deficit)*35)
	out.gaps = append(out.gaps, fmt.Sprintf("%s required, candidate holds %s", req.EducationLevel, candidate.EducationLevel))
	out.matches = append(out.matches, types.MatchEvidence{
		CVSpan:         candidate.EducationLevel,
		JDSpan:         req.EducationLevel,
		MatchType:      "below",
		Confidence:     0.9,
		Impact:         -0.5,
		ImpactCategory: types.ImpactNegative,
	})
	out.explanation = fmt.Sprintf("%s is below the required %s", candidate.EducationLevel, req.EducationLevel)
	return out
}

func scoreCertifications(candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome

	if len(req.RequiredCertifications) == 0 {
		out.score = 100
		out.explanation = "No certifications required"
		if len(candidate.Certifications) > 0 {
			out.strengths = append(out.strengths,
				fmt.Sprintf("Holds %d certification(s) beyond requirements", len(candidate.Certifications)))
		}
		return out
	}

	held := 0
	for _, wanted := range req.RequiredCertifications {
		if matchEntry(candidate.Certifications, wanted) {
			held++
			out.matches = append(out.matches, types.MatchEvidence{
				CVSpan:         wanted,
				JDSpan:         wanted,
				MatchType:      "exact",
				Confidence:     0.9,
				Reason:         "Required certification held",
				Impact:         1.0,
				ImpactCategory: types.ImpactPositive,
			})
		} else {
			out.gaps = append(out.gaps, fmt.Sprintf("Missing certification: %s", wanted))
			out.matches = append(out.matches, types.MatchEvidence{
				JDSpan:         wanted,
				MatchType:      "missing",
				Confidence:     0.9,
				Impact:         -0.8,
				ImpactCategory: types.ImpactNegative,
			})
		}
	}

	out.score = 100 * float64(held) / float64(len(req.RequiredCertifications))
	out.explanation = fmt.Sprintf("Holds %d/%d required certifications", held, len(req.RequiredCertifications))
	return out
}

func scoreLocation(candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome

	if req.Location == "" || req.RemoteAllowed {
		out.score = 100
		out.explanation = "Role has no location constraint"
		return out
	}

	if foldMatch(candidate.Location, req.Location) {
		out.score = 100
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         candidate.Location,
			JDSpan:         req.Location,
			MatchType:      "exact",
			Confidence:     0.9,
			Impact:         0.8,
			ImpactCategory: types.ImpactPositive,
		})
		out.explanation = "Candidate is in the role's location"
		return out
	}

	if candidate.WillingToRelocate {
		out.score = 70
		out.strengths = append(out.strengths, "Willing to relocate")
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         "willing to relocate",
			JDSpan:         req.Location,
			MatchType:      "inferred",
			Confidence:     0.7,
			Impact:         0.3,
			ImpactCategory: types.ImpactPositive,
		})
		out.explanation = "Not local but willing to relocate"
		return out
	}

	out.score = 30
	out.gaps = append(out.gaps, fmt.Sprintf("Role is in %s; candidate is in %s", req.Location, orUnknown(candidate.Location)))
	out.explanation = "Location mismatch without relocation"
	return out
}

func scoreSalary(candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome

	if req.SalaryMax <= 0 || candidate.ExpectedSalary <= 0 {
		out.score = 100
		out.explanation = "Salary expectations unknown, treated as neutral"
		return out
	}

	if candidate.ExpectedSalary <= req.SalaryMax {
		out.score = 100
		out.matches = append(out.matches, types.MatchEvidence{
			CVSpan:         fmt.Sprintf("expects %.0f", candidate.ExpectedSalary),
			JDSpan:         fmt.Sprintf("budget up to %.0f", req.SalaryMax),
			MatchType:      "within",
			Confidence:     0.8,
			Impact:         0.5,
			ImpactCategory: types.ImpactPositive,
		})
		out.explanation = "Expected salary is within budget"
		return out
	}

	over := (candidate.ExpectedSalary - req.SalaryMax) / req.SalaryMax
	out.score = math.Max(0, 100-over*200)
	out.gaps = append(out.gaps,
		fmt.Sprintf("Expected salary %.0f exceeds budget %.0f", candidate.ExpectedSalary, req.SalaryMax))
	out.matches = append(out.matches, types.MatchEvidence{
		CVSpan:         fmt.Sprintf("expects %.0f", candidate.ExpectedSalary),
		JDSpan:         fmt.Sprintf("budget up to %.0f", req.SalaryMax),
		MatchType:      "above",
		Confidence:     0.8,
		Impact:         -0.5,
		ImpactCategory: types.ImpactNegative,
	})
	out.explanation = "Expected salary exceeds the budgeted range"
	return out
}

// scoreExpectations matches the requisition's configured expectations for a
// named criterion against the candidate's free-text evidence
func scoreExpectations(criterionName string, candidate types.CandidateProfile, req types.Requisition) criterionOutcome {
	var out criterionOutcome

	expectations := req.Expectations[criterionName]
	if len(expectations) == 0 {
		out.score = 100
		out.explanation = fmt.Sprintf("No expectations configured for %q", criterionName)
		return out
	}

	corpus := candidateCorpus(candidate)
	hits := 0
	for _, expectation := range expectations {
		if strings.Contains(corpus, strings.ToLower(expectation)) {
			hits++
			out.matches = append(out.matches, types.MatchEvidence{
				CVSpan:         expectation,
				JDSpan:         expectation,
				MatchType:      "keyword",
				Confidence:     0.7,
				Impact:         0.6,
				ImpactCategory: types.ImpactPositive,
			})
		} else {
			out.gaps = append(out.gaps, fmt.Sprintf("No evidence of: %s", expectation))
		}
	}

	out.score = 100 * float64(hits) / float64(len(expectations))
	out.explanation = fmt.Sprintf("Found evidence for %d/%d expectations", hits, len(expectations))
	return out
}

// candidateCorpus flattens the candidate's free text for keyword scoring
func candidateCorpus(candidate types.CandidateProfile) string {
	var b strings.Builder
	b.WriteString(candidate.Summary)
	for _, s := range candidate.Skills {
		b.WriteString(" ")
		b.WriteString(s.Name)
	}
	for _, rec := range candidate.Employment {
		for _, r := range rec.Responsibilities {
			b.WriteString(" ")
			b.WriteString(r)
		}
	}
	for _, c := range candidate.Certifications {
		b.WriteString(" ")
		b.WriteString(c)
	}
	return strings.ToLower(b.String())
}

// findSkill matches a wanted skill name against the candidate's skills,
// case-insensitively, accepting substring containment in either direction
func findSkill(skills []types.Skill, wanted string) (types.Skill, bool) {
	for _, s := range skills {
		if foldMatch(s.Name, wanted) {
			return s, true
		}
	}
	return types.Skill{}, false
}

func matchEntry(entries types.FlexStrings, wanted string) bool {
	for _, entry := range entries {
		if foldMatch(entry, wanted) {
			return true
		}
	}
	return false
}

func foldMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func skillConfidence(s types.Skill) float64 {
	if s.Confidence > 0 {
		return s.Confidence
	}
	return 1.0
}

func describeSkill(s types.Skill) string {
	if s.YearsExperience > 0 {
		return fmt.Sprintf("%s (%.1f years)", s.Name, s.YearsExperience)
	}
	return s.Name
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
