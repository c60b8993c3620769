package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFlexStringsUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexStrings
	}{
		{
			name:  "array of strings",
			input: `["Python", "Go", "SQL"]`,
			want:  FlexStrings{"Python", "Go", "SQL"},
		},
		{
			name:  "comma delimited string",
			input: `"Python, Go, SQL"`,
			want:  FlexStrings{"Python", "Go", "SQL"},
		},
		{
			name:  "pipe delimited string",
			input: `"Python | Go | SQL"`,
			want:  FlexStrings{"Python", "Go", "SQL"},
		},
		{
			name:  "newline delimited string",
			input: `"Built APIs\nLed migrations"`,
			want:  FlexStrings{"Built APIs", "Led migrations"},
		},
		{
			name:  "none sentinel means empty",
			input: `"None"`,
			want:  nil,
		},
		{
			name:  "n/a sentinel means empty",
			input: `"N/A"`,
			want:  nil,
		},
		{
			name:  "null token string means empty",
			input: `"null"`,
			want:  nil,
		},
		{
			name:  "empty string means empty",
			input: `""`,
			want:  nil,
		},
		{
			name:  "noise entries dropped from array",
			input: `["Python", "none", "", "Go"]`,
			want:  FlexStrings{"Python", "Go"},
		},
		{
			name:  "whitespace trimmed",
			input: `"  Python ,  Go  "`,
			want:  FlexStrings{"Python", "Go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexStrings
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlexStringsContainsFold(t *testing.T) {
	entries := FlexStrings{"Python 3", "Apache Kafka", "terraform"}

	tests := []struct {
		name string
		sub  string
		want bool
	}{
		{name: "exact entry", sub: "terraform", want: true},
		{name: "case-insensitive", sub: "KAFKA", want: true},
		{name: "substring of entry", sub: "python", want: true},
		{name: "absent", sub: "kubernetes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entries.ContainsFold(tt.sub); got != tt.want {
				t.Errorf("ContainsFold(%q) = %v, want %v", tt.sub, got, tt.want)
			}
		})
	}
}

func TestEmploymentRecordUnmarshalMixedShapes(t *testing.T) {
	raw := `{
		"employerName": "Acme",
		"jobTitle": "Engineer",
		"startDate": "2020-01",
		"endDate": "present",
		"technologies": "Python | Go",
		"responsibilities": ["Built services", "Mentored juniors"]
	}`

	var rec EmploymentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(rec.Technologies, FlexStrings{"Python", "Go"}) {
		t.Errorf("Technologies = %v, want [Python Go]", rec.Technologies)
	}
	if len(rec.Responsibilities) != 2 {
		t.Errorf("Responsibilities = %v, want 2 entries", rec.Responsibilities)
	}
}
