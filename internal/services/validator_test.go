package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"rule/resume-analyzer/internal/models"
)

const validPayload = `{
	"full_name": "Jane Smith",
	"email": "jane@example.com",
	"phone_number": "+1 555 0100",
	"total_experience_years": 6,
	"roles": [{"title": "Backend Engineer", "company": "Acme", "duration": "3 years", "start_date": "01/2019", "end_date": "01/2022"}],
	"work_experience_raw": "Backend Engineer at Acme",
	"skills": {"Go": {"source": "work_experience", "years": "3"}},
	"projects": [{"name": "Billing", "tech_stack": "Go, Postgres", "description": "Billing platform"}],
	"leadership_signals": true,
	"leadership_justification": "Led a team of four",
	"candidate_fit_summary": "Strong backend fit",
	"fit_score": 8,
	"fit_score_reason": "Deep backend experience",
	"eligibility_status": "Eligible",
	"eligibility_reason": "Score above threshold"
}`

func TestValidateWellFormedPayload(t *testing.T) {
	v := NewSchemaValidator(5, nil)

	result := v.Validate(context.Background(), validPayload, "Backend role")
	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}

	a := result.Data
	if a.FullName != "Jane Smith" {
		t.Errorf("full name = %q, want %q", a.FullName, "Jane Smith")
	}
	if a.FitScore != 8 {
		t.Errorf("fit score = %d, want 8", a.FitScore)
	}
	if a.EligibilityStatus != models.Eligible {
		t.Errorf("eligibility = %q, want Eligible", a.EligibilityStatus)
	}
	if a.JobDescription != "Backend role" {
		t.Errorf("job description = %q, want %q", a.JobDescription, "Backend role")
	}
	if len(a.Roles) != 1 || a.Roles[0].Company != "Acme" {
		t.Errorf("roles not preserved: %+v", a.Roles)
	}
	if skill, ok := a.Skills["Go"]; !ok || skill.Years != "3" {
		t.Errorf("skills not preserved: %+v", a.Skills)
	}
}

func TestValidateEligibilityRepair(t *testing.T) {
	tests := []struct {
		name     string
		fitScore int
		claimed  string
		expected models.EligibilityStatus
	}{
		{"high score claimed ineligible", 8, "Not Eligible", models.Eligible},
		{"low score claimed eligible", 3, "Eligible", models.NotEligible},
		{"threshold score is eligible", 5, "Not Eligible", models.Eligible},
		{"consistent high score", 9, "Eligible", models.Eligible},
		{"consistent low score", 2, "Not Eligible", models.NotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSchemaValidator(5, nil)
			payload := `{"full_name": "A", "fit_score": ` +
				strconv.Itoa(tt.fitScore) + `, "eligibility_status": "` + tt.claimed + `"}`

			result := v.Validate(context.Background(), payload, "")
			if !result.IsValid {
				t.Fatalf("expected valid result, got errors: %v", result.Errors)
			}
			if result.Data.EligibilityStatus != tt.expected {
				t.Errorf("eligibility = %q, want %q", result.Data.EligibilityStatus, tt.expected)
			}
		})
	}
}

func TestValidateDefaultsAndClamping(t *testing.T) {
	v := NewSchemaValidator(5, nil)

	result := v.Validate(context.Background(), `{"fit_score": 15, "total_experience_years": -2}`, "")
	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}

	a := result.Data
	if a.FitScore != 10 {
		t.Errorf("fit score = %d, want clamp to 10", a.FitScore)
	}
	if a.TotalExperienceYears != 0 {
		t.Errorf("experience years = %d, want clamp to 0", a.TotalExperienceYears)
	}
	if a.FullName != "Unknown" {
		t.Errorf("full name default = %q, want %q", a.FullName, "Unknown")
	}
	if a.WorkExperienceRaw != "No work experience available" {
		t.Errorf("work experience default = %q", a.WorkExperienceRaw)
	}
	if a.CandidateFitSummary != "No candidate fit summary available" {
		t.Errorf("fit summary default = %q", a.CandidateFitSummary)
	}
	if a.Roles == nil || a.Skills == nil || a.Projects == nil {
		t.Error("collections must default to empty, not nil")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected clamping warnings")
	}
}

func TestValidateHighExperienceIsWarningNotError(t *testing.T) {
	v := NewSchemaValidator(5, nil)

	result := v.Validate(context.Background(), `{"fit_score": 6, "total_experience_years": 70}`, "")
	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if result.Data.TotalExperienceYears != 70 {
		t.Errorf("experience years = %d, want 70 kept", result.Data.TotalExperienceYears)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "unusually high") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unusually-high warning, got %v", result.Warnings)
	}
}

func TestValidateUncoercibleFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"non-numeric fit score", `{"fit_score": "excellent"}`},
		{"scalar roles", `{"fit_score": 5, "roles": "none"}`},
		{"scalar skills", `{"fit_score": 5, "skills": "Go"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSchemaValidator(5, nil)
			result := v.Validate(context.Background(), tt.payload, "")
			if result.IsValid {
				t.Fatalf("expected invalid result for %q", tt.payload)
			}
			if len(result.Errors) == 0 {
				t.Error("expected at least one error")
			}
		})
	}
}

func TestValidateNumericStringCoercion(t *testing.T) {
	v := NewSchemaValidator(5, nil)

	result := v.Validate(context.Background(), `{"fit_score": "7", "total_experience_years": "4", "leadership_signals": "yes"}`, "")
	if !result.IsValid {
		t.Fatalf("expected valid result, got errors: %v", result.Errors)
	}
	if result.Data.FitScore != 7 {
		t.Errorf("fit score = %d, want 7", result.Data.FitScore)
	}
	if result.Data.TotalExperienceYears != 4 {
		t.Errorf("experience years = %d, want 4", result.Data.TotalExperienceYears)
	}
	if !result.Data.LeadershipSignals {
		t.Error("leadership signals should coerce from \"yes\"")
	}
}

func TestValidateSalvagesObjectFromProse(t *testing.T) {
	v := NewSchemaValidator(5, nil)
	payload := "Here is the analysis you asked for:\n" + `{"full_name": "Jane", "fit_score": 6}` + "\nHope this helps!"

	result := v.Validate(context.Background(), payload, "")
	if !result.IsValid {
		t.Fatalf("expected salvage to succeed, got errors: %v", result.Errors)
	}
	if result.Data.FullName != "Jane" {
		t.Errorf("full name = %q, want Jane", result.Data.FullName)
	}
	if result.Data.EligibilityStatus != models.Eligible {
		t.Errorf("eligibility = %q, want Eligible for score 6", result.Data.EligibilityStatus)
	}
}

type fakeExtractor struct {
	response string
	err      error
	called   bool
}

func (f *fakeExtractor) ExtractStructured(ctx context.Context, rawText, jobDescription string) (string, error) {
	f.called = true
	return f.response, f.err
}

func TestValidateSlowPathReExtraction(t *testing.T) {
	extractor := &fakeExtractor{response: "```json\n{\"full_name\": \"Jane\", \"fit_score\": 7}\n```"}
	v := NewSchemaValidator(5, extractor)

	result := v.Validate(context.Background(), "The candidate seems strong overall with no structure at all", "")
	if !extractor.called {
		t.Fatal("expected the re-extraction pass to run")
	}
	if !result.IsValid {
		t.Fatalf("expected re-extracted result to validate, got errors: %v", result.Errors)
	}
	if result.Data.FitScore != 7 {
		t.Errorf("fit score = %d, want 7", result.Data.FitScore)
	}
}

func TestValidateSlowPathFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("gateway unavailable")}
	v := NewSchemaValidator(5, extractor)

	result := v.Validate(context.Background(), "still not json", "")
	if result.IsValid {
		t.Fatal("expected invalid result when re-extraction fails")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "could not be re-extracted") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}
