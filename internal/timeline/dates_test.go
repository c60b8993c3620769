package timeline

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			name:      "full ISO date",
			input:     "2023-04-15",
			wantOK:    true,
			wantYear:  2023,
			wantMonth: time.April,
			wantDay:   15,
		},
		{
			name:      "year and month",
			input:     "2020-06",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.June,
			wantDay:   1,
		},
		{
			name:      "bare year",
			input:     "2019",
			wantOK:    true,
			wantYear:  2019,
			wantMonth: time.January,
			wantDay:   1,
		},
		{
			name:      "summer season",
			input:     "2020-Summer",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.June,
			wantDay:   1,
		},
		{
			name:      "fall season",
			input:     "2020-Fall",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.September,
			wantDay:   1,
		},
		{
			name:      "autumn same as fall",
			input:     "2020-Autumn",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.September,
			wantDay:   1,
		},
		{
			name:      "winter season",
			input:     "2020-Winter",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.December,
			wantDay:   1,
		},
		{
			name:      "spring season",
			input:     "2020-Spring",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.March,
			wantDay:   1,
		},
		{
			name:      "unknown month token defaults to January",
			input:     "2020-Q3",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.January,
			wantDay:   1,
		},
		{
			name:      "month out of range defaults to January",
			input:     "2020-13",
			wantOK:    true,
			wantYear:  2020,
			wantMonth: time.January,
			wantDay:   1,
		},
		{
			name:   "present is open-ended",
			input:  "present",
			wantOK: false,
		},
		{
			name:   "current is open-ended",
			input:  "Current",
			wantOK: false,
		},
		{
			name:   "none is open-ended",
			input:  "none",
			wantOK: false,
		},
		{
			name:   "not_found is open-ended",
			input:  "not_found",
			wantOK: false,
		},
		{
			name:   "empty string is open-ended",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage is absent not an error",
			input:  "sometime in the 90s",
			wantOK: false,
		},
		{
			name:   "non-numeric year is absent",
			input:  "abcd-05",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.input, nil)
			if ok != tt.wantOK {
				t.Fatalf("ParseFlexibleDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseFlexibleDate(%q) = %v, want %d-%02d-%02d",
					tt.input, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "same month", start: "2020-01-01", end: "2020-01-20", want: 0},
		{name: "one month", start: "2020-01-01", end: "2020-02-01", want: 1},
		{name: "across years", start: "2018-01-01", end: "2020-06-01", want: 29},
		{name: "reversed is negative", start: "2020-06-01", end: "2020-01-01", want: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := time.Parse("2006-01-02", tt.start)
			end, _ := time.Parse("2006-01-02", tt.end)
			if got := MonthsBetween(start, end); got != tt.want {
				t.Errorf("MonthsBetween(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
