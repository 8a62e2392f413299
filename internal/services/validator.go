package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"rule/resume-analyzer/internal/models"
)

// StructuredExtractor is the validator's slow path: re-derive the schema
// from unstructured text through one more LLM call. Wired up by the
// orchestrator; nil disables the pass.
type StructuredExtractor interface {
	ExtractStructured(ctx context.Context, rawText, jobDescription string) (string, error)
}

// SchemaValidator parses a normalized LLM payload into the candidate
// assessment schema, applies defaults, clamps ranges and repairs the
// fit-score/eligibility invariant. Inputs are corrected, not rejected;
// only a payload that cannot be coerced at all is invalid.
type SchemaValidator interface {
	Validate(ctx context.Context, payload, jobDescription string) *models.ValidationResult
}

type schemaValidator struct {
	threshold int
	extractor StructuredExtractor
}

// NewSchemaValidator builds a validator with the eligibility threshold:
// fit scores at or above it mean Eligible.
func NewSchemaValidator(threshold int, extractor StructuredExtractor) SchemaValidator {
	if threshold <= 0 {
		threshold = 5
	}

	return &schemaValidator{
		threshold: threshold,
		extractor: extractor,
	}
}

func (v *schemaValidator) Validate(ctx context.Context, payload, jobDescription string) *models.ValidationResult {
	// Fast path: the payload is already pure JSON.
	if raw, err := parseObject(payload); err == nil {
		return v.coerce(raw, jobDescription)
	}

	// The backends sometimes wrap the JSON in explanatory prose; salvage
	// the outermost object before giving up on the text.
	if salvaged := extractJSON(payload); salvaged != payload {
		if raw, err := parseObject(salvaged); err == nil {
			log.Println("🔎 Validator: recovered JSON object from surrounding prose")
			return v.coerce(raw, jobDescription)
		}
	}

	// Slow path: one structured re-extraction call through the gateway.
	if v.extractor != nil {
		extracted, err := v.extractor.ExtractStructured(ctx, payload, jobDescription)
		if err == nil {
			if raw, err := parseObject(NormalizeResponse(extracted)); err == nil {
				log.Println("🔎 Validator: structured re-extraction succeeded")
				return v.coerce(raw, jobDescription)
			}
		} else {
			log.Printf("⚠️  Validator: structured re-extraction failed: %v\n", err)
		}
	}

	return &models.ValidationResult{
		IsValid: false,
		Errors:  []string{"response is not valid JSON and could not be re-extracted"},
	}
}

func parseObject(text string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// extractJSON returns the outermost {...} span of text, or text unchanged
// when no object boundaries are found.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

// coerce maps the parsed object onto the schema field by field. Missing
// fields take defaults, out-of-range numbers are clamped, and eligibility
// is recomputed from the fit score. Only a value whose type cannot be
// coerced (a non-numeric fit score, a scalar where a list belongs) makes
// the payload invalid.
func (v *schemaValidator) coerce(raw map[string]any, jobDescription string) *models.ValidationResult {
	var errs, warnings []string

	a := &models.CandidateAssessment{
		JobDescription:          jobDescription,
		FullName:                stringField(raw, "full_name", "Unknown"),
		Email:                   stringField(raw, "email", ""),
		PhoneNumber:             stringField(raw, "phone_number", ""),
		WorkExperienceRaw:       stringField(raw, "work_experience_raw", "No work experience available"),
		LeadershipJustification: stringField(raw, "leadership_justification", ""),
		CandidateFitSummary:     stringField(raw, "candidate_fit_summary", "No candidate fit summary available"),
		FitScoreReason:          stringField(raw, "fit_score_reason", "No fit score reason available"),
		EligibilityReason:       stringField(raw, "eligibility_reason", "No eligibility reason available"),
	}

	fitScore, err := intField(raw, "fit_score", 1)
	if err != nil {
		errs = append(errs, fmt.Sprintf("fit_score: %v", err))
	}
	if fitScore < 1 {
		warnings = append(warnings, fmt.Sprintf("fit_score %d below range, clamped to 1", fitScore))
		fitScore = 1
	} else if fitScore > 10 {
		warnings = append(warnings, fmt.Sprintf("fit_score %d above range, clamped to 10", fitScore))
		fitScore = 10
	}
	a.FitScore = fitScore

	years, err := intField(raw, "total_experience_years", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("total_experience_years: %v", err))
	}
	if years < 0 {
		warnings = append(warnings, fmt.Sprintf("total_experience_years %d negative, clamped to 0", years))
		years = 0
	} else if years > 50 {
		// Accepted, but almost certainly a parsing artifact.
		warnings = append(warnings, fmt.Sprintf("total_experience_years %d seems unusually high", years))
	}
	a.TotalExperienceYears = years

	leadership, err := boolField(raw, "leadership_signals")
	if err != nil {
		errs = append(errs, fmt.Sprintf("leadership_signals: %v", err))
	}
	a.LeadershipSignals = leadership

	roles, err := rolesField(raw)
	if err != nil {
		errs = append(errs, fmt.Sprintf("roles: %v", err))
	}
	a.Roles = roles

	skills, err := skillsField(raw)
	if err != nil {
		errs = append(errs, fmt.Sprintf("skills: %v", err))
	}
	a.Skills = skills

	projects, err := projectsField(raw)
	if err != nil {
		errs = append(errs, fmt.Sprintf("projects: %v", err))
	}
	a.Projects = projects

	if len(errs) > 0 {
		return &models.ValidationResult{IsValid: false, Errors: errs, Warnings: warnings}
	}

	// Cross-field consistency: the fit score is ground truth, eligibility
	// is derived from it. A disagreeing status is overwritten silently --
	// a log note, never a validation error.
	claimed := parseEligibility(stringField(raw, "eligibility_status", string(models.NotEligible)))
	expected := models.NotEligible
	if a.FitScore >= v.threshold {
		expected = models.Eligible
	}
	if claimed != expected {
		log.Printf("🔧 Validator: correcting eligibility for fit_score %d: %q -> %q\n", a.FitScore, claimed, expected)
		warnings = append(warnings, fmt.Sprintf("eligibility_status corrected to %q to match fit_score %d", expected, a.FitScore))
	}
	a.EligibilityStatus = expected

	return &models.ValidationResult{IsValid: true, Data: a, Warnings: warnings}
}

func parseEligibility(value string) models.EligibilityStatus {
	switch strings.TrimSpace(value) {
	case string(models.Eligible):
		return models.Eligible
	default:
		return models.NotEligible
	}
}

func stringField(raw map[string]any, key, fallback string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fallback
	}
}

func intField(raw map[string]any, key string, fallback int) (int, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback, nil
	}

	switch v := value.(type) {
	case float64:
		return int(math.Round(v)), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return fallback, nil
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(math.Round(n)), nil
		}
		return 0, fmt.Errorf("cannot coerce %q to integer", v)
	default:
		return 0, fmt.Errorf("cannot coerce %T to integer", value)
	}
}

func boolField(raw map[string]any, key string) (bool, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return false, nil
	}

	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes":
			return true, nil
		case "false", "no", "":
			return false, nil
		}
		return false, fmt.Errorf("cannot coerce %q to boolean", v)
	default:
		return false, fmt.Errorf("cannot coerce %T to boolean", value)
	}
}

func rolesField(raw map[string]any) ([]models.Role, error) {
	value, ok := raw["roles"]
	if !ok || value == nil {
		return []models.Role{}, nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}

	roles := make([]models.Role, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		roles = append(roles, models.Role{
			Title:     stringField(entry, "title", ""),
			Company:   stringField(entry, "company", ""),
			Duration:  stringField(entry, "duration", ""),
			StartDate: stringField(entry, "start_date", ""),
			EndDate:   stringField(entry, "end_date", ""),
		})
	}
	return roles, nil
}

func skillsField(raw map[string]any) (map[string]models.Skill, error) {
	value, ok := raw["skills"]
	if !ok || value == nil {
		return map[string]models.Skill{}, nil
	}

	entries, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", value)
	}

	skills := make(map[string]models.Skill, len(entries))
	for name, item := range entries {
		detail, ok := item.(map[string]any)
		if !ok {
			skills[name] = models.Skill{}
			continue
		}
		skills[name] = models.Skill{
			Source: stringField(detail, "source", ""),
			Years:  stringField(detail, "years", ""),
		}
	}
	return skills, nil
}

func projectsField(raw map[string]any) ([]models.Project, error) {
	value, ok := raw["projects"]
	if !ok || value == nil {
		return []models.Project{}, nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}

	projects := make([]models.Project, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		projects = append(projects, models.Project{
			Name:        stringField(entry, "name", ""),
			TechStack:   stringField(entry, "tech_stack", ""),
			Description: stringField(entry, "description", ""),
		})
	}
	return projects, nil
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
