package evaluation

import (
	"context"
	"math"
	"strings"
	"testing"

	"skillmatch/internal/proficiency"
	"skillmatch/internal/types"
)

func TestRecommendDisqualificationWins(t *testing.T) {
	tests := []struct {
		name           string
		score          float64
		failedRequired int
		disqualified   bool
		want           types.Recommendation
	}{
		{name: "perfect score but disqualified", score: 100, disqualified: true, want: types.RecommendStrongNo},
		{name: "perfect score but failed required", score: 100, failedRequired: 1, want: types.RecommendStrongNo},
		{name: "strong yes", score: 92, want: types.RecommendStrongYes},
		{name: "yes at boundary", score: 75, want: types.RecommendYes},
		{name: "maybe", score: 65, want: types.RecommendMaybe},
		{name: "no", score: 45, want: types.RecommendNo},
		{name: "strong no on score alone", score: 20, want: types.RecommendStrongNo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.score, tt.failedRequired, tt.disqualified)
			if got != tt.want {
				t.Errorf("Recommend(%v, %d, %v) = %s, want %s",
					tt.score, tt.failedRequired, tt.disqualified, got, tt.want)
			}
		})
	}
}

func TestEvaluateHappyPath(t *testing.T) {
	e := NewEvaluator(nil)

	got := e.Evaluate(testCandidate(), testRequisition(), DefaultConfig("engineering"))

	if got.IsDisqualified {
		t.Fatalf("unexpected disqualification: %v", got.DisqualificationReason)
	}
	if !got.Passed {
		t.Errorf("passed = false at score %v", got.OverallScore)
	}
	if got.OverallScore <= 0 || got.OverallScore > 100 {
		t.Errorf("overall score %v outside (0,100]", got.OverallScore)
	}
	if len(got.Criteria) != 4 {
		t.Errorf("criteria = %d, want 4 from the default config", len(got.Criteria))
	}
	if got.ConfidenceScore <= 0 || got.ConfidenceScore > 1 {
		t.Errorf("confidence score %v outside (0,1]", got.ConfidenceScore)
	}
	if got.EvaluatedAt == "" {
		t.Error("evaluatedAt should be stamped")
	}
}

func TestEvaluateFailedRequiredCriterionDisqualifies(t *testing.T) {
	// A candidate whose skills coverage misses the required minimum must end
	// up strong_no even when the remaining criteria push the weighted score
	// over the pass threshold.
	e := NewEvaluator(nil)

	candidate := testCandidate()
	candidate.Skills = []types.Skill{{Name: "Go"}}

	cfg := EvaluationConfig{
		ID: "strict-skills",
		Criteria: []CriterionConfig{
			{Name: "Skills", Type: types.CriterionSkills, Weight: 0.2, IsRequired: true, MinimumScore: 60},
			{Name: "Experience", Type: types.CriterionExperience, Weight: 0.4},
			{Name: "Education", Type: types.CriterionEducation, Weight: 0.4},
		},
		OverallPassThreshold: 60,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should be valid: %v", err)
	}

	got := e.Evaluate(candidate, testRequisition(), cfg)

	if !got.IsDisqualified {
		t.Fatal("want disqualification from the failed required Skills criterion")
	}
	if got.Recommendation != types.RecommendStrongNo {
		t.Errorf("recommendation = %s, want strong_no regardless of overall %v",
			got.Recommendation, got.OverallScore)
	}
	if got.Passed {
		t.Error("passed must be false when disqualified")
	}
	if len(got.FailedRequiredCriteria()) != 1 {
		t.Errorf("failed required = %d, want 1", len(got.FailedRequiredCriteria()))
	}
	if len(got.DisqualificationReason) == 0 || !strings.Contains(got.DisqualificationReason[0], "Skills") {
		t.Errorf("disqualification reasons = %v, want the Skills criterion named", got.DisqualificationReason)
	}
	// The high-scoring criteria still push the overall score past the
	// threshold; only the disqualification keeps the candidate out.
	if got.OverallScore < cfg.OverallPassThreshold {
		t.Errorf("overall = %v, expected above threshold %v for this scenario",
			got.OverallScore, cfg.OverallPassThreshold)
	}
}

func TestEvaluateBatchRanking(t *testing.T) {
	e := NewEvaluator(nil)

	strong := testCandidate()
	weak := testCandidate()
	weak.Name = "Sam Weak"
	weak.Skills = nil
	weak.TotalYearsExperience = 1

	batch := e.EvaluateBatch([]types.CandidateProfile{weak, strong}, testRequisition(), DefaultConfig(""))

	if len(batch.Evaluations) != 2 {
		t.Fatalf("evaluations = %d, want 2", len(batch.Evaluations))
	}
	ranked := batch.Ranked()
	if ranked[0].CandidateName != "Jordan Doe" {
		t.Errorf("ranked[0] = %s, want the strong candidate first", ranked[0].CandidateName)
	}
	if top := batch.TopN(1); len(top) != 1 || top[0].CandidateName != "Jordan Doe" {
		t.Errorf("TopN(1) = %+v, want the strong candidate", top)
	}
	for _, q := range batch.Qualified() {
		if q.IsDisqualified || !q.Passed {
			t.Errorf("Qualified() returned %s with passed=%v disqualified=%v",
				q.CandidateName, q.Passed, q.IsDisqualified)
		}
	}
}

func TestEvaluateOverallScoreIsPlainWeightedSum(t *testing.T) {
	e := NewEvaluator(nil)

	// Weights within tolerance but below 1.0: both criteria score 100 on
	// empty inputs, so the overall must land at 95, not get re-normalized
	// back up to 100.
	cfg := EvaluationConfig{
		ID: "sub-unit-weights",
		Criteria: []CriterionConfig{
			{Name: "Salary", Type: types.CriterionSalary, Weight: 0.45},
			{Name: "Culture", Type: types.CriterionCultureFit, Weight: 0.50},
		},
		OverallPassThreshold: 60,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should be valid: %v", err)
	}

	got := e.Evaluate(types.CandidateProfile{}, types.Requisition{}, cfg)

	if math.Abs(got.OverallScore-95) > 1e-9 {
		t.Errorf("overall = %v, want 95 as the plain sum of weighted contributions", got.OverallScore)
	}
}

func TestEvaluateEnrichedSkillConfidenceFlowsIntoEvidence(t *testing.T) {
	// A skill listed without employment evidence classifies from career
	// length at the fallback confidence. Evaluating against the enriched
	// skill entities must carry that confidence into the skills evidence
	// instead of treating the raw entry as fully confident.
	analyzer := proficiency.NewAnalyzer(nil, nil)
	candidate := types.CandidateProfile{
		Name:                 "Jordan Doe",
		Skills:               []types.Skill{{Name: "Terraform"}},
		TotalYearsExperience: 8,
	}
	profile := analyzer.AnalyzeProfile(context.Background(), candidate)
	candidate.Skills = profile.Skills

	e := NewEvaluator(nil)
	result := e.EvaluateCriterion(
		CriterionConfig{Name: "Skills", Type: types.CriterionSkills, Weight: 1},
		candidate,
		types.Requisition{RequiredSkills: types.FlexStrings{"Terraform"}},
	)

	if len(result.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(result.Matches))
	}
	if got := result.Matches[0].Confidence; got != 0.6 {
		t.Errorf("evidence confidence = %v, want the 0.6 career-derived assessment confidence", got)
	}
}

func TestEvaluateConfidenceDefaultsWithoutEvidence(t *testing.T) {
	e := NewEvaluator(nil)

	// Salary and culture criteria on empty inputs produce no evidence spans
	cfg := EvaluationConfig{
		ID: "no-evidence",
		Criteria: []CriterionConfig{
			{Name: "Salary", Type: types.CriterionSalary, Weight: 0.5},
			{Name: "Culture", Type: types.CriterionCultureFit, Weight: 0.5},
		},
		OverallPassThreshold: 60,
	}

	got := e.Evaluate(types.CandidateProfile{}, types.Requisition{}, cfg)

	if got.ConfidenceScore != 0.5 {
		t.Errorf("confidence = %v, want the 0.5 default with no evidence", got.ConfidenceScore)
	}
}

func TestSummarize(t *testing.T) {
	e := NewEvaluator(nil)
	evaluation := e.Evaluate(testCandidate(), testRequisition(), DefaultConfig(""))

	summary := Summarize(evaluation)
	for _, want := range []string{"Jordan Doe", "Senior Backend Engineer", string(evaluation.Recommendation)} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary %q missing %q", summary, want)
		}
	}
}

func TestComponentScoresAndViews(t *testing.T) {
	e := NewEvaluator(nil)
	evaluation := e.Evaluate(testCandidate(), testRequisition(), DefaultConfig(""))

	components := evaluation.ComponentScores()
	if _, ok := components[types.CriterionSkills]; !ok {
		t.Error("ComponentScores missing skills")
	}
	if top := evaluation.TopCriteria(2); len(top) != 2 || top[0].Score < top[1].Score {
		t.Errorf("TopCriteria not ordered: %+v", top)
	}
	if low := evaluation.LowestCriteria(1); len(low) != 1 {
		t.Errorf("LowestCriteria = %+v", low)
	}
}
