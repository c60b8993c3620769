package timeline

import (
	"math"
	"strings"
	"time"

	"skillmatch/internal/errors"
	"skillmatch/internal/types"
)

// Aggregator computes skill timelines from employment history. The clock is
// injectable so ongoing positions evaluate against a fixed "today" in tests.
type Aggregator struct {
	logger *errors.Logger
	now    func() time.Time
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithNow overrides the clock used for ongoing positions
func WithNow(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates a timeline aggregator
func NewAggregator(logger *errors.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ForSkill reconstructs the usage timeline of one skill across the given
// employment records. A record counts when the skill name appears as a
// case-insensitive substring of any technology entry or, failing that, any
// responsibility entry. Months from overlapping positions are summed without
// deduplication; concurrent jobs double-count.
func (a *Aggregator) ForSkill(skill string, records []types.EmploymentRecord) types.SkillTimeline {
	result := types.SkillTimeline{Skill: skill}

	seen := make(map[string]bool)
	var firstUsed, lastUsed time.Time

	for _, record := range records {
		if !mentionsSkill(skill, record) {
			continue
		}

		start, ok := ParseFlexibleDate(record.StartDate, a.logger)
		if !ok {
			// No start date means no measurable duration; the mention
			// still happened, so it is skipped silently, not raised.
			continue
		}
		end, ok := ParseFlexibleDate(record.EndDate, a.logger)
		if !ok {
			end = a.now().UTC()
		}

		months := MonthsBetween(start, end)
		if months < 0 {
			months = 0
		}
		result.TotalMonths += months
		result.MentionCount++

		if record.EmployerName != "" && !seen[record.EmployerName] {
			seen[record.EmployerName] = true
			result.Employers = append(result.Employers, record.EmployerName)
		}

		if firstUsed.IsZero() || start.Before(firstUsed) {
			firstUsed = start
		}
		if lastUsed.IsZero() || end.After(lastUsed) {
			lastUsed = end
		}
	}

	if !firstUsed.IsZero() {
		result.FirstUsed = &firstUsed
	}
	if !lastUsed.IsZero() {
		result.LastUsed = &lastUsed
	}
	if result.TotalMonths > 0 {
		result.Years = math.Round(float64(result.TotalMonths)/12.0*10) / 10
	}

	return result
}

// mentionsSkill checks the technology entries first, then responsibilities
func mentionsSkill(skill string, record types.EmploymentRecord) bool {
	needle := strings.ToLower(skill)
	for _, tech := range record.Technologies {
		if strings.Contains(strings.ToLower(tech), needle) {
			return true
		}
	}
	for _, resp := range record.Responsibilities {
		if strings.Contains(strings.ToLower(resp), needle) {
			return true
		}
	}
	return false
}
