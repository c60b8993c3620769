package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillmatch/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ProfileOutput", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "ProfileOutput", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchOutput", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchOutput", &MatchMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ProfileOutput:
		return "ProfileOutput"
	case types.MatchOutput:
		return "MatchOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ProfileTextFormatter handles text formatting for skill profile results
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ProfileOutput)
	if !ok {
		return "", fmt.Errorf("expected ProfileOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SKILL PROFICIENCY PROFILE ===\n\n")
	if result.Candidate != "" {
		output.WriteString(fmt.Sprintf("Candidate: %s\n\n", result.Candidate))
	}

	if len(result.Assessments) == 0 {
		output.WriteString("No skills assessed.\n")
		return output.String(), nil
	}

	for i, assessment := range result.Assessments {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, assessment.Skill))
		output.WriteString(fmt.Sprintf("   Proficiency: %s (confidence %.2f)\n", assessment.Proficiency, assessment.Confidence))
		output.WriteString(fmt.Sprintf("   Years: %.1f (source: %s)\n", assessment.YearsExperience, assessment.Source))
		if len(assessment.Employers) > 0 {
			output.WriteString(fmt.Sprintf("   Employers: %s\n", strings.Join(assessment.Employers, ", ")))
		}
		if assessment.FirstUsed != nil && assessment.LastUsed != nil {
			output.WriteString(fmt.Sprintf("   Period: %s to %s\n",
				assessment.FirstUsed.Format("2006-01"), assessment.LastUsed.Format("2006-01")))
		}
		output.WriteString("   Reasoning: ")
		output.WriteString(assessment.Reasoning)
		output.WriteString("\n\n")
	}

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "ProfileOutput"
}

// ProfileMarkdownFormatter handles markdown formatting for skill profile results
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ProfileOutput)
	if !ok {
		return "", fmt.Errorf("expected ProfileOutput, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Skill Proficiency Profile\n\n")
	if result.Candidate != "" {
		output.WriteString(fmt.Sprintf("**Candidate:** %s\n\n", result.Candidate))
	}

	if len(result.Assessments) == 0 {
		output.WriteString("No skills assessed.\n")
		return output.String(), nil
	}

	output.WriteString("| Skill | Proficiency | Years | Source | Confidence |\n")
	output.WriteString("|-------|-------------|-------|--------|------------|\n")
	for _, assessment := range result.Assessments {
		output.WriteString(fmt.Sprintf("| %s | %s | %.1f | %s | %.2f |\n",
			assessment.Skill, assessment.Proficiency, assessment.YearsExperience,
			assessment.Source, assessment.Confidence))
	}
	output.WriteString("\n")

	output.WriteString("## Reasoning\n\n")
	for _, assessment := range result.Assessments {
		output.WriteString(fmt.Sprintf("**%s:** %s\n\n", assessment.Skill, assessment.Reasoning))
	}

	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "ProfileOutput"
}

// MatchTextFormatter handles text formatting for match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchOutput, got %T", data)
	}
	evaluation := result.Evaluation

	var output strings.Builder

	output.WriteString("=== CANDIDATE MATCH EVALUATION ===\n\n")
	if evaluation.CandidateName != "" {
		output.WriteString(fmt.Sprintf("Candidate: %s\n", evaluation.CandidateName))
	}
	if evaluation.RequisitionTitle != "" {
		output.WriteString(fmt.Sprintf("Requisition: %s\n", evaluation.RequisitionTitle))
	}
	output.WriteString(fmt.Sprintf("Overall Score: %.1f/100 (%s)\n", evaluation.OverallScore, evaluation.MatchLevel))
	output.WriteString(fmt.Sprintf("Recommendation: %s\n", evaluation.Recommendation))
	output.WriteString(fmt.Sprintf("Passed: %t\n\n", evaluation.Passed))

	if evaluation.IsDisqualified {
		output.WriteString("=== DISQUALIFIED ===\n")
		for _, reason := range evaluation.DisqualificationReason {
			output.WriteString(fmt.Sprintf("- %s\n", reason))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== CRITERIA ===\n\n")
	for i, criterion := range evaluation.Criteria {
		required := ""
		if criterion.IsRequired {
			required = " [required]"
		}
		output.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, criterion.CriterionName, required))
		output.WriteString(fmt.Sprintf("   Score: %.1f/100 (%s), weight %.2f\n",
			criterion.Score, criterion.MatchLevel, criterion.Weight))
		if criterion.Explanation != "" {
			output.WriteString(fmt.Sprintf("   %s\n", criterion.Explanation))
		}
		for _, gap := range criterion.Gaps {
			output.WriteString(fmt.Sprintf("   Gap: %s\n", gap))
		}
		for _, strength := range criterion.Strengths {
			output.WriteString(fmt.Sprintf("   Strength: %s\n", strength))
		}
		output.WriteString("\n")
	}

	output.WriteString(evaluation.Summary())
	output.WriteString("\n")

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchOutput"
}

// MatchMarkdownFormatter handles markdown formatting for match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchOutput, got %T", data)
	}
	evaluation := result.Evaluation

	var output strings.Builder

	output.WriteString("# Candidate Match Evaluation\n\n")
	if evaluation.CandidateName != "" {
		output.WriteString(fmt.Sprintf("**Candidate:** %s\n\n", evaluation.CandidateName))
	}
	if evaluation.RequisitionTitle != "" {
		output.WriteString(fmt.Sprintf("**Requisition:** %s\n\n", evaluation.RequisitionTitle))
	}
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100 (%s)\n\n", evaluation.OverallScore, evaluation.MatchLevel))
	output.WriteString(fmt.Sprintf("**Recommendation:** %s\n\n", evaluation.Recommendation))

	if evaluation.IsDisqualified {
		output.WriteString("## Disqualified\n\n")
		for _, reason := range evaluation.DisqualificationReason {
			output.WriteString(fmt.Sprintf("- %s\n", reason))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Criteria\n\n")
	output.WriteString("| Criterion | Score | Weight | Level | Passed |\n")
	output.WriteString("|-----------|-------|--------|-------|--------|\n")
	for _, criterion := range evaluation.Criteria {
		name := criterion.CriterionName
		if criterion.IsRequired {
			name += " *"
		}
		output.WriteString(fmt.Sprintf("| %s | %.1f | %.2f | %s | %t |\n",
			name, criterion.Score, criterion.Weight, criterion.MatchLevel, criterion.Passed))
	}
	output.WriteString("\n\\* required criterion\n\n")

	if gaps := evaluation.AllGaps(); len(gaps) > 0 {
		output.WriteString("## Gaps\n\n")
		for _, gap := range gaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		output.WriteString("\n")
	}

	if strengths := evaluation.AllStrengths(); len(strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
