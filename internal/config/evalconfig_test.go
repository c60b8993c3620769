package config

import (
	"os"
	"path/filepath"
	"testing"

	"skillmatch/internal/types"
)

const policyYAML = `configs:
  - id: eng_senior
    name: Senior Engineering
    division: engineering
    overallPassThreshold: 65
    criteria:
      - name: Technical Skills
        type: skills
        weight: 0.5
        isRequired: true
        minimumScore: 60
      - name: Experience
        type: experience
        weight: 0.5
        minimumScore: 50
`

const brokenPolicyYAML = `configs:
  - id: broken
    name: Broken Policy
    overallPassThreshold: 60
    criteria:
      - name: Skills
        type: skills
        weight: 0.3
`

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policies.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing policy file: %v", err)
	}
	return path
}

func TestPolicyStoreLoadsConfigs(t *testing.T) {
	path := writePolicyFile(t, policyYAML)

	store, err := NewPolicyStore(EvaluationSettings{ConfigFile: path, DefaultDivision: "general"}, nil)
	if err != nil {
		t.Fatalf("NewPolicyStore: %v", err)
	}
	defer store.Close()

	cfg := store.Get("eng_senior")
	if cfg.Name != "Senior Engineering" || len(cfg.Criteria) != 2 {
		t.Errorf("Get(eng_senior) = %+v, want the loaded policy", cfg)
	}
	if cfg.OverallPassThreshold != 65 {
		t.Errorf("threshold = %v, want 65", cfg.OverallPassThreshold)
	}
	if cfg.Criteria[0].Type != types.CriterionSkills || !cfg.Criteria[0].IsRequired {
		t.Errorf("criteria[0] = %+v, want required skills", cfg.Criteria[0])
	}
}

func TestPolicyStoreRejectsInvalidWeights(t *testing.T) {
	path := writePolicyFile(t, brokenPolicyYAML)

	if _, err := NewPolicyStore(EvaluationSettings{ConfigFile: path}, nil); err == nil {
		t.Fatal("want error for weight sum 0.3, got nil")
	}
}

func TestPolicyStoreFallsBackToDefault(t *testing.T) {
	store, err := NewPolicyStore(EvaluationSettings{DefaultDivision: "sales"}, nil)
	if err != nil {
		t.Fatalf("NewPolicyStore: %v", err)
	}
	defer store.Close()

	cfg := store.Get("nonexistent")
	if cfg.Division != "sales" {
		t.Errorf("fallback division = %s, want sales", cfg.Division)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback policy must validate: %v", err)
	}
}

func TestPolicyStoreGetForDivision(t *testing.T) {
	path := writePolicyFile(t, policyYAML)

	store, err := NewPolicyStore(EvaluationSettings{ConfigFile: path, DefaultDivision: "general"}, nil)
	if err != nil {
		t.Fatalf("NewPolicyStore: %v", err)
	}
	defer store.Close()

	if cfg := store.GetForDivision("Engineering"); cfg.ID != "eng_senior" {
		t.Errorf("GetForDivision(Engineering) = %s, want eng_senior", cfg.ID)
	}
	if cfg := store.GetForDivision("marketing"); cfg.ID != "default_marketing" {
		t.Errorf("GetForDivision(marketing) = %s, want built-in default", cfg.ID)
	}
}
