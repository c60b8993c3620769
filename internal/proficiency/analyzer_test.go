package proficiency

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillmatch/internal/timeline"
	"skillmatch/internal/types"
)

var testToday = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func testClock() timeline.Option {
	return timeline.WithNow(func() time.Time { return testToday })
}

func testRecords() []types.EmploymentRecord {
	return []types.EmploymentRecord{
		{
			EmployerName: "Acme Corp",
			JobTitle:     "Backend Engineer",
			StartDate:    "2018-01",
			EndDate:      "2020-06",
			Technologies: types.FlexStrings{"Python", "PostgreSQL"},
		},
		{
			EmployerName:     "Globex",
			JobTitle:         "Senior Engineer",
			StartDate:        "2021-01",
			EndDate:          "present",
			Responsibilities: types.FlexStrings{"Built Python data pipelines"},
		},
	}
}

func TestAnalyzeSkillsTimelineDerived(t *testing.T) {
	a := NewAnalyzer(nil, nil, testClock())

	got := a.AnalyzeSkills(context.Background(), []string{"Python"}, testRecords(), 8.0)

	if len(got) != 1 {
		t.Fatalf("assessments = %d, want 1", len(got))
	}
	assessment := got[0]
	if assessment.Source != types.YearsFromTimeline {
		t.Errorf("source = %s, want timeline", assessment.Source)
	}
	if assessment.YearsExperience != 5.4 {
		t.Errorf("years = %v, want 5.4", assessment.YearsExperience)
	}
	if assessment.Proficiency != types.TierExpert {
		t.Errorf("tier = %s, want expert", assessment.Proficiency)
	}
	if assessment.FirstUsed == nil || assessment.FirstUsed.Year() != 2018 {
		t.Errorf("firstUsed = %v, want 2018", assessment.FirstUsed)
	}
	if assessment.LastUsed == nil || !assessment.LastUsed.Equal(testToday) {
		t.Errorf("lastUsed = %v, want today", assessment.LastUsed)
	}
}

func TestAnalyzeSkillsCareerDerived(t *testing.T) {
	// Kubernetes appears nowhere in the history; total career length is the proxy
	a := NewAnalyzer(nil, nil, testClock())

	got := a.AnalyzeSkills(context.Background(), []string{"Kubernetes"}, testRecords(), 8.0)

	assessment := got[0]
	if assessment.Source != types.YearsFromCareer {
		t.Errorf("source = %s, want career", assessment.Source)
	}
	if assessment.YearsExperience != 8.0 {
		t.Errorf("years = %v, want 8.0", assessment.YearsExperience)
	}
	if assessment.Proficiency != types.TierAdvanced {
		t.Errorf("tier = %s, want advanced (career bracket [5,10))", assessment.Proficiency)
	}
	if assessment.Confidence > fallbackConfidence {
		t.Errorf("confidence = %v, want at most %v", assessment.Confidence, fallbackConfidence)
	}
}

func TestAnalyzeSkillsNoEvidenceAtAll(t *testing.T) {
	a := NewAnalyzer(nil, nil, testClock())

	got := a.AnalyzeSkills(context.Background(), []string{"Rust"}, nil, 0)

	assessment := got[0]
	if assessment.Proficiency != types.TierBeginner {
		t.Errorf("tier = %s, want beginner", assessment.Proficiency)
	}
	if assessment.Source != types.YearsUnknown {
		t.Errorf("source = %s, want unknown", assessment.Source)
	}
	if assessment.Confidence != unknownConfidence {
		t.Errorf("confidence = %v, want %v", assessment.Confidence, unknownConfidence)
	}
	if assessment.Reasoning == "" {
		t.Error("reasoning should explain the unclear experience")
	}
}

// failNthOracle fails for one specific skill and succeeds for the rest
type failNthOracle struct {
	failSkill string
}

func (f *failNthOracle) Classify(_ context.Context, req ClassifyRequest) (Judgment, error) {
	if req.Skill == f.failSkill {
		return Judgment{}, errors.New("oracle unavailable")
	}
	return Judgment{Tier: "advanced", Confidence: "high", Reasoning: "observed sustained use"}, nil
}

func TestAnalyzeSkillsOracleFailureDoesNotAbortBatch(t *testing.T) {
	a := NewAnalyzer(&failNthOracle{failSkill: "Python"}, nil, testClock())

	records := testRecords()
	records = append(records, types.EmploymentRecord{
		EmployerName: "Initech",
		StartDate:    "2019-01",
		EndDate:      "2023-01",
		Technologies: types.FlexStrings{"Go"},
	})

	got := a.AnalyzeSkills(context.Background(), []string{"Python", "Go"}, records, 8.0)

	if len(got) != 2 {
		t.Fatalf("assessments = %d, want 2 despite oracle failure", len(got))
	}
	// Python degraded to the rules, Go came from the oracle
	if got[0].Confidence != fallbackConfidence {
		t.Errorf("failed skill confidence = %v, want fallback %v", got[0].Confidence, fallbackConfidence)
	}
	if got[1].Proficiency != types.TierAdvanced || got[1].Confidence != 0.9 {
		t.Errorf("healthy skill = (%s, %v), want (advanced, 0.9)", got[1].Proficiency, got[1].Confidence)
	}
}

func TestAnalyzeSkillsEmptyInputs(t *testing.T) {
	a := NewAnalyzer(nil, nil, testClock())

	if got := a.AnalyzeSkills(context.Background(), nil, nil, 0); len(got) != 0 {
		t.Errorf("assessments = %v, want empty", got)
	}
}

func TestMergeAssessments(t *testing.T) {
	skills := []types.Skill{
		{Name: "Python", Category: "technical"},
		{Name: "Go", Category: "technical"},
	}
	assessments := []types.SkillAssessment{
		{Skill: "Python", Proficiency: types.TierExpert, YearsExperience: 5.4, Confidence: 0.9},
	}

	merged := MergeAssessments(skills, assessments)

	if merged[0].Proficiency != types.TierExpert || merged[0].YearsExperience != 5.4 {
		t.Errorf("merged[0] = %+v, want expert/5.4", merged[0])
	}
	if merged[1].Proficiency != "" {
		t.Errorf("merged[1].Proficiency = %s, want untouched", merged[1].Proficiency)
	}
	// Original slice must stay untouched
	if skills[0].Proficiency != "" {
		t.Error("MergeAssessments mutated its input")
	}
}

func TestAnalyzeProfile(t *testing.T) {
	a := NewAnalyzer(nil, nil, testClock())

	out := a.AnalyzeProfile(context.Background(), types.CandidateProfile{
		Name:                 "Jordan Doe",
		Skills:               []types.Skill{{Name: "Python"}, {Name: "Kubernetes"}},
		Employment:           testRecords(),
		TotalYearsExperience: 8.0,
	})

	if out.Candidate != "Jordan Doe" {
		t.Errorf("candidate = %s, want Jordan Doe", out.Candidate)
	}
	if len(out.Assessments) != 2 || len(out.Skills) != 2 {
		t.Fatalf("assessments/skills = %d/%d, want 2/2", len(out.Assessments), len(out.Skills))
	}
	if out.Skills[0].Proficiency == "" {
		t.Error("skill entities should be enriched with proficiency")
	}
}
