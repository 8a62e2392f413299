package models

// RankedResume is one entry in the batch ranking response.
type RankedResume struct {
	ResumeID string `json:"resume_id"`
	FileName string `json:"file_name"`
	FitScore int    `json:"fit_score"`
}

// BatchFailure reports a document whose pipeline run ended in a fallback
// record. The record is still persisted and retrievable by ResumeID.
type BatchFailure struct {
	ResumeID string `json:"resume_id"`
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

type BatchResponse struct {
	RankedResumes []RankedResume `json:"ranked_resumes"`
	Failed        []BatchFailure `json:"failed"`
}

type JobDescriptionRequest struct {
	JobDescription string `json:"job_description"`
}

// ProviderConfigRequest updates the active LLM provider configuration.
type ProviderConfigRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
}

// AnalyticsSummary aggregates all persisted assessments.
type AnalyticsSummary struct {
	TotalCandidates         int            `json:"total_candidates"`
	SuccessfulAnalyses      int            `json:"successful_analyses"`
	FailedAnalyses          int            `json:"failed_analyses"`
	AverageFitScore         float64        `json:"average_fit_score"`
	MinFitScore             int            `json:"min_fit_score"`
	MaxFitScore             int            `json:"max_fit_score"`
	EligibilityDistribution map[string]int `json:"eligibility_distribution"`
	TopSkills               []SkillCount   `json:"top_skills"`
	ExperienceDistribution  map[string]int `json:"experience_distribution"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}
