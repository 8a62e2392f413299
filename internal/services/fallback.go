package services

import (
	"rule/resume-analyzer/internal/models"
)

// NewFallbackAssessment produces the complete, schema-valid record every
// failure path converges on: minimum fit score, Not Eligible, explanatory
// text referencing the failure reason, empty collections. Callers of the
// orchestrator never see a partial or malformed result.
func NewFallbackAssessment(resumeID, filename, jobDescription, errorReason string) *models.CandidateAssessment {
	fitScoreReason := "System error prevented resume analysis"
	if errorReason != "" {
		fitScoreReason = "Analysis failed: " + errorReason
	}

	return &models.CandidateAssessment{
		ResumeID:                resumeID,
		Filename:                filename,
		JobDescription:          jobDescription,
		FullName:                "Unknown",
		Email:                   "",
		PhoneNumber:             "",
		TotalExperienceYears:    0,
		Roles:                   []models.Role{},
		WorkExperienceRaw:       "Could not extract work experience due to processing error",
		Skills:                  map[string]models.Skill{},
		Projects:                []models.Project{},
		LeadershipSignals:       false,
		LeadershipJustification: "",
		CandidateFitSummary:     "Unable to analyze due to system error",
		FitScore:                1,
		FitScoreReason:          fitScoreReason,
		EligibilityStatus:       models.NotEligible,
		EligibilityReason:       "Resume analysis could not be completed",
	}
}
