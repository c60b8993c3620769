package formatters

import (
	"strings"
	"testing"

	"skillmatch/internal/types"
)

func sampleProfileOutput() types.ProfileOutput {
	return types.ProfileOutput{
		Candidate: "Jordan Doe",
		Assessments: []types.SkillAssessment{
			{
				Skill:           "Python",
				YearsExperience: 5.4,
				Proficiency:     types.TierExpert,
				Confidence:      0.9,
				Reasoning:       "Extensive production usage across multiple employers",
				Source:          types.YearsFromTimeline,
				Employers:       []string{"Acme Corp", "Globex"},
			},
			{
				Skill:           "Terraform",
				YearsExperience: 8.0,
				Proficiency:     types.TierIntermediate,
				Confidence:      0.6,
				Reasoning:       "Not found in employment history, estimated from career length",
				Source:          types.YearsFromCareer,
			},
		},
	}
}

func sampleMatchOutput() types.MatchOutput {
	return types.MatchOutput{
		Evaluation: types.CVJDEvaluation{
			CandidateName:    "Jordan Doe",
			RequisitionTitle: "Senior Backend Engineer",
			OverallScore:     78.5,
			MatchLevel:       types.MatchGood,
			Passed:           true,
			Recommendation:   types.RecommendYes,
			Criteria: []types.CriterionEvaluation{
				{
					CriterionName: "Technical Skills",
					CriterionType: types.CriterionSkills,
					Score:         85,
					Weight:        0.4,
					WeightedScore: 34,
					Passed:        true,
					IsRequired:    true,
					MatchLevel:    types.MatchExcellent,
					Strengths:     []string{"Expert-level Python"},
				},
				{
					CriterionName: "Education",
					CriterionType: types.CriterionEducation,
					Score:         65,
					Weight:        0.6,
					WeightedScore: 39,
					Passed:        true,
					MatchLevel:    types.MatchModerate,
					Gaps:          []string{"Requires master degree, candidate holds bachelor"},
				},
			},
		},
	}
}

func TestFormatProfileOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:     "text format",
			format:   "text",
			contains: []string{"SKILL PROFICIENCY PROFILE", "Jordan Doe", "Python", "expert", "source: timeline"},
		},
		{
			name:     "markdown format",
			format:   "markdown",
			contains: []string{"# Skill Proficiency Profile", "| Skill |", "| Python |", "## Reasoning"},
		},
		{
			name:     "json format",
			format:   "json",
			contains: []string{`"candidate": "Jordan Doe"`, `"proficiency": "expert"`},
		},
	}

	registry := NewFormatterRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := registry.Format(sampleProfileOutput(), tt.format)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestFormatMatchOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		contains []string
	}{
		{
			name:   "text format",
			format: "text",
			contains: []string{
				"CANDIDATE MATCH EVALUATION",
				"Senior Backend Engineer",
				"Overall Score: 78.5/100",
				"Recommendation: yes",
				"Technical Skills [required]",
				"Gap: Requires master degree",
				"Overall: good (78.5%) | Passed: 2/2 criteria | Recommendation: yes",
			},
		},
		{
			name:   "markdown format",
			format: "markdown",
			contains: []string{
				"# Candidate Match Evaluation",
				"| Technical Skills * |",
				"## Gaps",
				"## Strengths",
				"Expert-level Python",
			},
		},
	}

	registry := NewFormatterRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := registry.Format(sampleMatchOutput(), tt.format)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestFormatUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleProfileOutput(), "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONFormatHandlesAnyType(t *testing.T) {
	registry := NewFormatterRegistry()
	output, err := registry.Format(struct{ A int }{A: 1}, "json")
	if err != nil {
		t.Fatalf("json format should handle any type: %v", err)
	}
	if !strings.Contains(output, `"A": 1`) {
		t.Errorf("unexpected json output: %s", output)
	}
}
