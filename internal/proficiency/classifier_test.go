package proficiency

import (
	"context"
	"errors"
	"testing"

	"skillmatch/internal/types"
)

// stubOracle returns a canned judgment or error
type stubOracle struct {
	judgment Judgment
	err      error
	calls    int
}

func (s *stubOracle) Classify(_ context.Context, _ ClassifyRequest) (Judgment, error) {
	s.calls++
	return s.judgment, s.err
}

func TestClassifyFallbackThresholds(t *testing.T) {
	tests := []struct {
		name     string
		years    float64
		source   types.YearsSource
		wantTier types.ProficiencyTier
	}{
		{name: "timeline under a year", years: 0.5, source: types.YearsFromTimeline, wantTier: types.TierBeginner},
		{name: "timeline two years", years: 2.0, source: types.YearsFromTimeline, wantTier: types.TierIntermediate},
		{name: "timeline four years", years: 4.0, source: types.YearsFromTimeline, wantTier: types.TierAdvanced},
		{name: "timeline seven years", years: 7.0, source: types.YearsFromTimeline, wantTier: types.TierExpert},
		{name: "career one year", years: 1.0, source: types.YearsFromCareer, wantTier: types.TierBeginner},
		{name: "career four years", years: 4.0, source: types.YearsFromCareer, wantTier: types.TierIntermediate},
		{name: "career eight years", years: 8.0, source: types.YearsFromCareer, wantTier: types.TierAdvanced},
		{name: "career twelve years", years: 12.0, source: types.YearsFromCareer, wantTier: types.TierExpert},
		{name: "boundary three years timeline is advanced", years: 3.0, source: types.YearsFromTimeline, wantTier: types.TierAdvanced},
		{name: "boundary five years timeline is expert", years: 5.0, source: types.YearsFromTimeline, wantTier: types.TierExpert},
		{name: "boundary five years career is advanced", years: 5.0, source: types.YearsFromCareer, wantTier: types.TierAdvanced},
	}

	c := NewClassifier(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, confidence, reasoning := c.Classify(context.Background(), "Go", tt.years, tt.source, "")
			if tier != tt.wantTier {
				t.Errorf("tier = %s, want %s", tier, tt.wantTier)
			}
			if confidence != fallbackConfidence {
				t.Errorf("confidence = %v, want %v", confidence, fallbackConfidence)
			}
			if reasoning == "" {
				t.Error("reasoning should not be empty")
			}
		})
	}
}

func TestClassifyFallbackIsDeterministic(t *testing.T) {
	c := NewClassifier(nil, nil)

	tier1, conf1, _ := c.Classify(context.Background(), "Go", 4.2, types.YearsFromTimeline, "ctx")
	tier2, conf2, _ := c.Classify(context.Background(), "Go", 4.2, types.YearsFromTimeline, "ctx")

	if tier1 != tier2 || conf1 != conf2 {
		t.Errorf("repeat classification differs: (%s, %v) vs (%s, %v)", tier1, conf1, tier2, conf2)
	}
}

func TestClassifyOracleFailureFallsBack(t *testing.T) {
	oracle := &stubOracle{err: errors.New("deadline exceeded")}
	c := NewClassifier(oracle, nil)

	tier, confidence, _ := c.Classify(context.Background(), "Python", 6.0, types.YearsFromTimeline, "ctx")

	if tier != types.TierExpert {
		t.Errorf("tier = %s, want expert from fallback", tier)
	}
	if confidence != fallbackConfidence {
		t.Errorf("confidence = %v, want fallback %v", confidence, fallbackConfidence)
	}
	if oracle.calls != 1 {
		t.Errorf("oracle calls = %d, want 1", oracle.calls)
	}
}

func TestClassifyOracleUnknownTierFallsBack(t *testing.T) {
	oracle := &stubOracle{judgment: Judgment{Tier: "wizard", Confidence: "high"}}
	c := NewClassifier(oracle, nil)

	tier, confidence, _ := c.Classify(context.Background(), "Python", 2.0, types.YearsFromTimeline, "ctx")

	if tier != types.TierIntermediate {
		t.Errorf("tier = %s, want intermediate from fallback", tier)
	}
	if confidence != fallbackConfidence {
		t.Errorf("confidence = %v, want fallback %v", confidence, fallbackConfidence)
	}
}

func TestClassifyConfidenceMapping(t *testing.T) {
	tests := []struct {
		name       string
		confidence string
		source     types.YearsSource
		want       float64
	}{
		{name: "high label", confidence: "high", source: types.YearsFromTimeline, want: 0.9},
		{name: "medium label", confidence: "medium", source: types.YearsFromTimeline, want: 0.7},
		{name: "low label", confidence: "low", source: types.YearsFromTimeline, want: 0.5},
		{name: "label case-insensitive", confidence: "High", source: types.YearsFromTimeline, want: 0.9},
		{name: "raw numeric accepted", confidence: "0.85", source: types.YearsFromTimeline, want: 0.85},
		{name: "numeric clamped above one", confidence: "1.7", source: types.YearsFromTimeline, want: 1.0},
		{name: "unknown defaults medium for timeline", confidence: "probably", source: types.YearsFromTimeline, want: 0.7},
		{name: "unknown defaults lower for career", confidence: "probably", source: types.YearsFromCareer, want: 0.6},
		{name: "career high is capped", confidence: "high", source: types.YearsFromCareer, want: careerConfidenceCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &stubOracle{judgment: Judgment{Tier: "advanced", Confidence: tt.confidence, Reasoning: "solid usage"}}
			c := NewClassifier(oracle, nil)

			_, confidence, _ := c.Classify(context.Background(), "Go", 4.0, tt.source, "ctx")
			if confidence != tt.want {
				t.Errorf("confidence = %v, want %v", confidence, tt.want)
			}
		})
	}
}

func TestRuleOracleMatchesFallbackTable(t *testing.T) {
	oracle := RuleOracle{Source: types.YearsFromTimeline}

	judgment, err := oracle.Classify(context.Background(), ClassifyRequest{Skill: "Go", Years: 4.0})
	if err != nil {
		t.Fatalf("RuleOracle.Classify error: %v", err)
	}
	if judgment.Tier != string(types.TierAdvanced) {
		t.Errorf("tier = %s, want advanced", judgment.Tier)
	}
}
