package models

// EligibilityStatus is derived from the fit score during validation. The
// wire values are the ones the LLM backends are prompted to produce.
type EligibilityStatus string

const (
	Eligible    EligibilityStatus = "Eligible"
	NotEligible EligibilityStatus = "Not Eligible"
)

// Role is one work-experience entry on a resume.
type Role struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	Duration  string `json:"duration"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Skill describes where a skill was found and for how long it was used.
// Years stays a string: models return values like "3+", "unknown" or "2".
type Skill struct {
	Source string `json:"source"`
	Years  string `json:"years"`
}

type Project struct {
	Name        string `json:"name"`
	TechStack   string `json:"tech_stack"`
	Description string `json:"description"`
}

// CandidateAssessment is the canonical output record of the analysis
// pipeline. One is produced per (document, job description) pair,
// persisted once under ResumeID and never updated in place.
type CandidateAssessment struct {
	ResumeID string `json:"resume_id"`
	Filename string `json:"filename"`

	FullName             string           `json:"full_name"`
	Email                string           `json:"email"`
	PhoneNumber          string           `json:"phone_number"`
	TotalExperienceYears int              `json:"total_experience_years"`
	Roles                []Role           `json:"roles"`
	WorkExperienceRaw    string           `json:"work_experience_raw"`
	Skills               map[string]Skill `json:"skills"`
	Projects             []Project        `json:"projects"`

	LeadershipSignals       bool              `json:"leadership_signals"`
	LeadershipJustification string            `json:"leadership_justification"`
	CandidateFitSummary     string            `json:"candidate_fit_summary"`
	FitScore                int               `json:"fit_score"`
	FitScoreReason          string            `json:"fit_score_reason"`
	EligibilityStatus       EligibilityStatus `json:"eligibility_status"`
	EligibilityReason       string            `json:"eligibility_reason"`

	// JobDescription is the verbatim text the assessment was computed
	// against.
	JobDescription string `json:"job_description"`
}

// ValidationResult is what the schema validator hands back: either a
// corrected, schema-conformant assessment or the reasons it could not be
// coerced into one.
type ValidationResult struct {
	IsValid  bool
	Data     *CandidateAssessment
	Errors   []string
	Warnings []string
}
