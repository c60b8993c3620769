package timeline

import (
	"testing"
	"time"

	"skillmatch/internal/types"
)

// fixedToday pins "today" so ongoing positions have a stable duration
var fixedToday = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestAggregator() *Aggregator {
	return NewAggregator(nil, WithNow(func() time.Time { return fixedToday }))
}

func TestForSkillAcrossEmployers(t *testing.T) {
	records := []types.EmploymentRecord{
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
		{
			EmployerName: "Initech",
			JobTitle:     "Frontend Engineer",
			StartDate:    "2016-03",
			EndDate:      "2017-12",
			Technologies: types.FlexStrings{"JavaScript", "React"},
		},
	}

	got := newTestAggregator().ForSkill("Python", records)

	// 29 months at Acme plus 36 months at Globex (through fixed today)
	if got.TotalMonths != 65 {
		t.Errorf("TotalMonths = %d, want 65", got.TotalMonths)
	}
	if got.Years != 5.4 {
		t.Errorf("Years = %v, want 5.4", got.Years)
	}
	if got.MentionCount != 2 {
		t.Errorf("MentionCount = %d, want 2", got.MentionCount)
	}
	if got.FirstUsed == nil || !got.FirstUsed.Equal(time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FirstUsed = %v, want 2018-01-01", got.FirstUsed)
	}
	if got.LastUsed == nil || !got.LastUsed.Equal(fixedToday) {
		t.Errorf("LastUsed = %v, want fixed today", got.LastUsed)
	}
	if len(got.Employers) != 2 || got.Employers[0] != "Acme Corp" || got.Employers[1] != "Globex" {
		t.Errorf("Employers = %v, want [Acme Corp Globex]", got.Employers)
	}
}

func TestForSkillEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		skill       string
		records     []types.EmploymentRecord
		wantMonths  int
		wantYears   float64
		wantMention int
	}{
		{
			name:  "skill not mentioned anywhere",
			skill: "Kubernetes",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", StartDate: "2018-01", EndDate: "2020-01",
					Technologies: types.FlexStrings{"Python"}},
			},
			wantMonths:  0,
			wantYears:   0,
			wantMention: 0,
		},
		{
			name:        "no records at all",
			skill:       "Go",
			records:     nil,
			wantMonths:  0,
			wantYears:   0,
			wantMention: 0,
		},
		{
			name:  "missing start date contributes nothing",
			skill: "Go",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", EndDate: "2020-01",
					Technologies: types.FlexStrings{"Go"}},
			},
			wantMonths:  0,
			wantYears:   0,
			wantMention: 0,
		},
		{
			name:  "start equals end is zero months",
			skill: "Go",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", StartDate: "2020-03", EndDate: "2020-03",
					Technologies: types.FlexStrings{"Go"}},
			},
			wantMonths:  0,
			wantYears:   0,
			wantMention: 1,
		},
		{
			name:  "end before start clamps to zero",
			skill: "Go",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", StartDate: "2021-06", EndDate: "2020-01",
					Technologies: types.FlexStrings{"Go"}},
			},
			wantMonths:  0,
			wantYears:   0,
			wantMention: 1,
		},
		{
			name:  "overlapping jobs double-count",
			skill: "Go",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", StartDate: "2020-01", EndDate: "2021-01",
					Technologies: types.FlexStrings{"Go"}},
				{EmployerName: "Globex", StartDate: "2020-01", EndDate: "2021-01",
					Technologies: types.FlexStrings{"Go"}},
			},
			wantMonths:  24,
			wantYears:   2.0,
			wantMention: 2,
		},
		{
			name:  "case-insensitive substring match in responsibilities",
			skill: "terraform",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", StartDate: "2020-01", EndDate: "2021-01",
					Responsibilities: types.FlexStrings{"Provisioned infra with Terraform modules"}},
			},
			wantMonths:  12,
			wantYears:   1.0,
			wantMention: 1,
		},
		{
			name:  "season dates in bounds",
			skill: "Go",
			records: []types.EmploymentRecord{
				{EmployerName: "Acme", StartDate: "2020-Summer", EndDate: "2020-Winter",
					Technologies: types.FlexStrings{"Go"}},
			},
			wantMonths:  6,
			wantYears:   0.5,
			wantMention: 1,
		},
	}

	agg := newTestAggregator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.ForSkill(tt.skill, tt.records)
			if got.TotalMonths != tt.wantMonths {
				t.Errorf("TotalMonths = %d, want %d", got.TotalMonths, tt.wantMonths)
			}
			if got.Years != tt.wantYears {
				t.Errorf("Years = %v, want %v", got.Years, tt.wantYears)
			}
			if got.MentionCount != tt.wantMention {
				t.Errorf("MentionCount = %d, want %d", got.MentionCount, tt.wantMention)
			}
		})
	}
}

func TestForSkillDoesNotMutateRecords(t *testing.T) {
	records := []types.EmploymentRecord{
		{EmployerName: "Acme", StartDate: "2020-01", EndDate: "2021-01",
			Technologies: types.FlexStrings{"Go", "Python"}},
	}
	before := records[0]

	newTestAggregator().ForSkill("Go", records)

	after := records[0]
	if before.EmployerName != after.EmployerName || before.StartDate != after.StartDate ||
		len(before.Technologies) != len(after.Technologies) {
		t.Error("ForSkill mutated its input records")
	}
}

func TestForSkillDeduplicatesEmployers(t *testing.T) {
	records := []types.EmploymentRecord{
		{EmployerName: "Acme", JobTitle: "Engineer", StartDate: "2018-01", EndDate: "2019-01",
			Technologies: types.FlexStrings{"Go"}},
		{EmployerName: "Acme", JobTitle: "Senior Engineer", StartDate: "2019-01", EndDate: "2020-01",
			Technologies: types.FlexStrings{"Go"}},
	}

	got := newTestAggregator().ForSkill("Go", records)
	if len(got.Employers) != 1 {
		t.Errorf("Employers = %v, want single deduplicated entry", got.Employers)
	}
	if got.MentionCount != 2 {
		t.Errorf("MentionCount = %d, want 2", got.MentionCount)
	}
}
