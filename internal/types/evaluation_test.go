package types

import (
	"strings"
	"testing"
)

func sampleEvaluation() CVJDEvaluation {
	return CVJDEvaluation{
		CandidateName:  "Jordan Doe",
		OverallScore:   78.5,
		MatchLevel:     MatchGood,
		Passed:         true,
		Recommendation: RecommendYes,
		Criteria: []CriterionEvaluation{
			{CriterionName: "Technical Skills", CriterionType: CriterionSkills, Score: 85, Passed: true, IsRequired: true, Strengths: []string{"strong Python"}},
			{CriterionName: "Experience", CriterionType: CriterionExperience, Score: 70, Passed: true, IsRequired: true},
			{CriterionName: "Education", CriterionType: CriterionEducation, Score: 55, Passed: true, Gaps: []string{"no master degree"}},
			{CriterionName: "Certifications", CriterionType: CriterionCertifications, Score: 30, Passed: false, IsRequired: false, Gaps: []string{"no cloud certification"}},
		},
	}
}

func TestFailedRequiredCriteria(t *testing.T) {
	e := sampleEvaluation()
	if got := e.FailedRequiredCriteria(); len(got) != 0 {
		t.Errorf("FailedRequiredCriteria() = %d, want 0 (failed criterion is optional)", len(got))
	}

	e.Criteria[1].Passed = false
	got := e.FailedRequiredCriteria()
	if len(got) != 1 || got[0].CriterionName != "Experience" {
		t.Errorf("FailedRequiredCriteria() = %v, want [Experience]", got)
	}
}

func TestTopAndLowestCriteria(t *testing.T) {
	e := sampleEvaluation()

	top := e.TopCriteria(2)
	if len(top) != 2 || top[0].CriterionName != "Technical Skills" || top[1].CriterionName != "Experience" {
		t.Errorf("TopCriteria(2) order wrong: %v", top)
	}

	low := e.LowestCriteria(1)
	if len(low) != 1 || low[0].CriterionName != "Certifications" {
		t.Errorf("LowestCriteria(1) = %v, want [Certifications]", low)
	}

	// Requesting more than available clamps, never panics
	if got := e.TopCriteria(10); len(got) != 4 {
		t.Errorf("TopCriteria(10) = %d entries, want 4", len(got))
	}

	// The views must not mutate the underlying criteria order
	if e.Criteria[0].CriterionName != "Technical Skills" || e.Criteria[3].CriterionName != "Certifications" {
		t.Error("criteria order mutated by sorted views")
	}
}

func TestComponentScores(t *testing.T) {
	e := sampleEvaluation()
	e.Criteria = append(e.Criteria, CriterionEvaluation{CriterionType: CriterionSkills, Score: 75})

	scores := e.ComponentScores()
	if scores[CriterionSkills] != 80 {
		t.Errorf("skills average = %v, want 80", scores[CriterionSkills])
	}
	if scores[CriterionEducation] != 55 {
		t.Errorf("education average = %v, want 55", scores[CriterionEducation])
	}
}

func TestGapsAndStrengths(t *testing.T) {
	e := sampleEvaluation()

	gaps := e.AllGaps()
	if len(gaps) != 2 {
		t.Errorf("AllGaps() = %v, want 2 entries", gaps)
	}
	strengths := e.AllStrengths()
	if len(strengths) != 1 || strengths[0] != "strong Python" {
		t.Errorf("AllStrengths() = %v", strengths)
	}
}

func TestSummary(t *testing.T) {
	e := sampleEvaluation()
	got := e.Summary()
	want := "Overall: good (78.5%) | Passed: 3/4 criteria | Recommendation: yes"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	e.IsDisqualified = true
	if !strings.HasSuffix(e.Summary(), "DISQUALIFIED") {
		t.Errorf("Summary() for disqualified candidate = %q", e.Summary())
	}
}

func TestBatchEvaluationViews(t *testing.T) {
	batch := BatchEvaluation{
		Evaluations: []CVJDEvaluation{
			{CandidateName: "A", OverallScore: 62, Passed: true, Recommendation: RecommendMaybe},
			{CandidateName: "B", OverallScore: 91, Passed: true, Recommendation: RecommendStrongYes},
			{CandidateName: "C", OverallScore: 85, Passed: true, IsDisqualified: true, Recommendation: RecommendStrongNo},
			{CandidateName: "D", OverallScore: 35, Passed: false, Recommendation: RecommendStrongNo},
		},
	}

	ranked := batch.Ranked()
	if ranked[0].CandidateName != "B" || ranked[3].CandidateName != "D" {
		t.Errorf("Ranked() order wrong: %v, %v", ranked[0].CandidateName, ranked[3].CandidateName)
	}

	qualified := batch.Qualified()
	if len(qualified) != 2 {
		t.Errorf("Qualified() = %d candidates, want 2 (disqualified and failed excluded)", len(qualified))
	}

	strong := batch.StrongYes()
	if len(strong) != 1 || strong[0].CandidateName != "B" {
		t.Errorf("StrongYes() = %v", strong)
	}

	top := batch.TopN(2)
	if len(top) != 2 || top[0].CandidateName != "B" || top[1].CandidateName != "C" {
		t.Errorf("TopN(2) = %v", top)
	}
}
