package types

import "time"

// ProficiencyTier is the ordinal skill proficiency classification
type ProficiencyTier string

const (
	TierBeginner     ProficiencyTier = "beginner"
	TierIntermediate ProficiencyTier = "intermediate"
	TierAdvanced     ProficiencyTier = "advanced"
	TierExpert       ProficiencyTier = "expert"
)

// YearsSource records where the years-of-experience figure for a skill
// classification came from
type YearsSource string

const (
	// YearsFromTimeline means the figure was reconstructed from employment history
	YearsFromTimeline YearsSource = "timeline"
	// YearsFromCareer means the skill had no timeline evidence and the
	// candidate's total career length was used as a proxy
	YearsFromCareer YearsSource = "career"
	// YearsUnknown means neither timeline nor career evidence was available
	YearsUnknown YearsSource = "unknown"
)

// EmploymentRecord is one position from a candidate's work history.
// Produced by the upstream extraction step; this engine only reads it.
// Dates are kept as raw strings because extraction output is tolerant
// (YYYY-MM-DD, YYYY-MM, YYYY-Season, YYYY, "present", ...).
type EmploymentRecord struct {
	EmployerName     string      `json:"employerName"`
	JobTitle         string      `json:"jobTitle"`
	StartDate        string      `json:"startDate,omitempty"`
	EndDate          string      `json:"endDate,omitempty"`
	Responsibilities FlexStrings `json:"responsibilities,omitempty"`
	Technologies     FlexStrings `json:"technologies,omitempty"`
}

// Skill is one entry from a candidate's skill list, enriched in place with
// proficiency data after analysis
type Skill struct {
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	Proficiency     ProficiencyTier `json:"proficiency,omitempty"`
	YearsExperience float64         `json:"yearsExperience,omitempty"`
	Confidence      float64         `json:"confidence,omitempty"`
	LastUsed        *time.Time      `json:"lastUsed,omitempty"`
}

// CandidateProfile is the extracted candidate data consumed by the engine
type CandidateProfile struct {
	Name                 string             `json:"name,omitempty"`
	Summary              string             `json:"summary,omitempty"`
	Skills               []Skill            `json:"skills,omitempty"`
	Employment           []EmploymentRecord `json:"employment,omitempty"`
	TotalYearsExperience float64            `json:"totalYearsExperience,omitempty"`
	EducationLevel       string             `json:"educationLevel,omitempty"`
	Certifications       FlexStrings        `json:"certifications,omitempty"`
	Location             string             `json:"location,omitempty"`
	WillingToRelocate    bool               `json:"willingToRelocate,omitempty"`
	ExpectedSalary       float64            `json:"expectedSalary,omitempty"`
}

// Requisition is the extracted job-requisition data the candidate is
// evaluated against
type Requisition struct {
	Title                  string                 `json:"title,omitempty"`
	RequiredSkills         FlexStrings            `json:"requiredSkills,omitempty"`
	PreferredSkills        FlexStrings            `json:"preferredSkills,omitempty"`
	MinYearsExperience     float64                `json:"minYearsExperience,omitempty"`
	EducationLevel         string                 `json:"educationLevel,omitempty"`
	RequiredCertifications FlexStrings            `json:"requiredCertifications,omitempty"`
	Responsibilities       FlexStrings            `json:"responsibilities,omitempty"`
	Location               string                 `json:"location,omitempty"`
	RemoteAllowed          bool                   `json:"remoteAllowed,omitempty"`
	SalaryMin              float64                `json:"salaryMin,omitempty"`
	SalaryMax              float64                `json:"salaryMax,omitempty"`
	Expectations           map[string]FlexStrings `json:"expectations,omitempty"`
}

// SkillTimeline is the reconstructed professional usage period of one skill,
// derived from employment history. Overlapping employment periods are not
// deduplicated when summing months; a skill used in two concurrent jobs
// counts twice.
type SkillTimeline struct {
	Skill        string     `json:"skill"`
	TotalMonths  int        `json:"totalMonths"`
	Years        float64    `json:"years"`
	FirstUsed    *time.Time `json:"firstUsed,omitempty"`
	LastUsed     *time.Time `json:"lastUsed,omitempty"`
	Employers    []string   `json:"employers,omitempty"`
	MentionCount int        `json:"mentionCount"`
}

// SkillAssessment is the proficiency classification result for one skill.
// Created once per skill per analysis pass and never mutated afterward.
type SkillAssessment struct {
	Skill           string          `json:"skill"`
	YearsExperience float64         `json:"yearsExperience"`
	Proficiency     ProficiencyTier `json:"proficiency"`
	Confidence      float64         `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
	Source          YearsSource     `json:"source"`
	FirstUsed       *time.Time      `json:"firstUsed,omitempty"`
	LastUsed        *time.Time      `json:"lastUsed,omitempty"`
	Employers       []string        `json:"employers,omitempty"`
	MentionCount    int             `json:"mentionCount"`
}

// ProfileInput is the input for the skill proficiency analysis operation
type ProfileInput struct {
	Candidate CandidateProfile `json:"candidate"`
}

// ProfileOutput is the result of analyzing all skills of a candidate
type ProfileOutput struct {
	Candidate   string            `json:"candidate,omitempty"`
	Assessments []SkillAssessment `json:"assessments"`
	Skills      []Skill           `json:"skills,omitempty"`
}

// MatchInput is the input for the candidate-to-requisition match operation
type MatchInput struct {
	Candidate   CandidateProfile `json:"candidate"`
	Requisition Requisition      `json:"requisition"`
	ConfigID    string           `json:"configId,omitempty"`
}
