package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt creates the prompt for the main analysis
// call: evaluate a resume against a job description and return the
// structured assessment as pure JSON.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are a highly intelligent AI assistant specialized in technical recruitment. Your job is to analyze whether a candidate's resume is logically and practically relevant to a given job description. Use industry knowledge, pattern recognition, and smart matching, not just keyword comparison.

JOB DESCRIPTION:
%s

CANDIDATE RESUME (plain text):
%s

MATCHING PRINCIPLES:
1. Relevance: does the candidate's experience logically align with the job duties?
2. Transferability: detect equivalent tools and frameworks (React ~ Angular, Django ~ Express).
3. Practical reasoning: do not expect exact wording; judge whether the candidate could reasonably succeed in the role.
4. Recognize leadership or initiative when stated or implied.

Return ONLY a valid JSON response in this structure (no extra text, no markdown, no headings):
{
  "full_name": "...",
  "email": "...",
  "phone_number": "...",
  "total_experience_years": 0,
  "roles": [
    {"title": "...", "company": "...", "duration": "...", "start_date": "...", "end_date": "..."}
  ],
  "work_experience_raw": "1-4 sentences summarizing relevant work experience",
  "skills": {
    "skill_name": {"source": "...", "years": "..."}
  },
  "projects": [
    {"name": "...", "tech_stack": "...", "description": "..."}
  ],
  "leadership_signals": false,
  "leadership_justification": "...",
  "candidate_fit_summary": "2-3 lines explaining suitability vs the job description",
  "fit_score": 0,
  "fit_score_reason": "...",
  "eligibility_status": "...",
  "eligibility_reason": "..."
}

OUTPUT RULES:
- fit_score: integer 1-10. 8-10 strong fit, 5-7 moderate fit, 1-4 poor fit or irrelevant.
- eligibility_status: "Eligible" if skills and experience logically align or are transferable, otherwise "Not Eligible".
- eligibility_reason: a clear, practical explanation of why they qualify or do not.
- Dates as YYYY-MM, "Present", or "Unknown".

Analyze the resume and return the structured JSON output. No commentary or markdown, only valid JSON.`,
		jobDescription, resumeText)
}

// BuildStructuredExtractionPrompt creates the validator's slow-path
// prompt: re-derive the schema from a response that mixed prose with (or
// instead of) JSON.
func (pb *PromptBuilder) BuildStructuredExtractionPrompt(rawResponse, jobDescription string) string {
	return fmt.Sprintf(`You are an expert at extracting structured data from resume analysis text. Parse the text below and extract the analysis into the exact JSON structure previously specified, using appropriate defaults for missing data. Keep eligibility_status logically consistent with fit_score.

JOB DESCRIPTION (context):
%s

RAW ANALYSIS TEXT:
%s

Return ONLY the JSON object with these keys: full_name, email, phone_number, total_experience_years, roles, work_experience_raw, skills, projects, leadership_signals, leadership_justification, candidate_fit_summary, fit_score, fit_score_reason, eligibility_status, eligibility_reason. No commentary, no markdown.`,
		truncate(jobDescription, 500), rawResponse)
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
