// Package timeline reconstructs per-skill usage periods from a candidate's
// employment history.
package timeline

import (
	"strconv"
	"strings"
	"time"

	"skillmatch/internal/errors"
)

// seasonMonths maps season names in YYYY-Season dates to a representative month
var seasonMonths = map[string]time.Month{
	"spring": time.March,
	"summer": time.June,
	"fall":   time.September,
	"autumn": time.September,
	"winter": time.December,
}

// openEndedTokens are date strings that mean "no fixed date". A missing end
// date means the position is ongoing; a missing start date means unknown.
var openEndedTokens = map[string]bool{
	"":          true,
	"none":      true,
	"present":   true,
	"current":   true,
	"not_found": true,
}

// ParseFlexibleDate parses the heterogeneous date shapes extraction output
// produces: YYYY-MM-DD, YYYY-MM, YYYY-Season, bare YYYY, and the open-ended
// sentinels. The second return is false when the input carries no fixed date.
// Malformed input is recoverable: it normalizes to absence with a warning,
// never an error, because upstream LLM output is unreliable by nature.
func ParseFlexibleDate(raw string, logger *errors.Logger) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if openEndedTokens[strings.ToLower(s)] {
		return time.Time{}, false
	}

	parts := strings.Split(s, "-")
	switch len(parts) {
	case 3: // YYYY-MM-DD
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		day, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || !validMonth(month) || day < 1 || day > 31 {
			return warnUnparseable(raw, logger)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	case 2: // YYYY-MM or YYYY-Season
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return warnUnparseable(raw, logger)
		}
		month := parseMonthToken(parts[1])
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	case 1: // bare YYYY
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return warnUnparseable(raw, logger)
		}
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	default:
		return warnUnparseable(raw, logger)
	}
}

// parseMonthToken resolves the month part of a YYYY-MM or YYYY-Season date.
// Tokens that are neither an integer 1-12 nor a season name default to
// January rather than failing.
func parseMonthToken(token string) time.Month {
	if n, err := strconv.Atoi(token); err == nil && validMonth(n) {
		return time.Month(n)
	}
	if m, ok := seasonMonths[strings.ToLower(strings.TrimSpace(token))]; ok {
		return m
	}
	return time.January
}

func validMonth(n int) bool {
	return n >= 1 && n <= 12
}

func warnUnparseable(raw string, logger *errors.Logger) (time.Time, bool) {
	if logger != nil {
		logger.Warn("Failed to parse date, treating as absent", "date", raw)
	}
	return time.Time{}, false
}

// MonthsBetween returns the calendar-month difference between two dates,
// ignoring day-of-month
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
}
