package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"rule/resume-analyzer/internal/models"
)

// AnalyticsService aggregates persisted assessments into summary metrics
// and tabular exports.
type AnalyticsService interface {
	Summary() (*models.AnalyticsSummary, error)
	ExportCSV() ([]byte, error)
	ExportXLSX() ([]byte, error)
}

type analyticsService struct {
	resultStore ResultStore
	topSkills   int
}

func NewAnalyticsService(resultStore ResultStore) AnalyticsService {
	return &analyticsService{
		resultStore: resultStore,
		topSkills:   10,
	}
}

// isFallbackRecord identifies an assessment produced by the fallback
// synthesizer: failures carry the minimum score and the synthesized
// summary text.
func isFallbackRecord(a *models.CandidateAssessment) bool {
	return a.FitScore == 1 && a.CandidateFitSummary == "Unable to analyze due to system error"
}

func (s *analyticsService) Summary() (*models.AnalyticsSummary, error) {
	assessments, err := s.resultStore.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}

	summary := &models.AnalyticsSummary{
		TotalCandidates:         len(assessments),
		EligibilityDistribution: map[string]int{},
		ExperienceDistribution:  map[string]int{},
		TopSkills:               []models.SkillCount{},
	}

	if len(assessments) == 0 {
		return summary, nil
	}

	skillCounts := map[string]int{}
	scoreSum := 0
	summary.MinFitScore = assessments[0].FitScore
	summary.MaxFitScore = assessments[0].FitScore

	for _, a := range assessments {
		if isFallbackRecord(a) {
			summary.FailedAnalyses++
		} else {
			summary.SuccessfulAnalyses++
		}

		scoreSum += a.FitScore
		if a.FitScore < summary.MinFitScore {
			summary.MinFitScore = a.FitScore
		}
		if a.FitScore > summary.MaxFitScore {
			summary.MaxFitScore = a.FitScore
		}

		summary.EligibilityDistribution[string(a.EligibilityStatus)]++
		summary.ExperienceDistribution[experienceBucket(a.TotalExperienceYears)]++

		for skill := range a.Skills {
			skillCounts[strings.ToLower(skill)]++
		}
	}

	summary.AverageFitScore = float64(scoreSum) / float64(len(assessments))

	for skill, count := range skillCounts {
		summary.TopSkills = append(summary.TopSkills, models.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(summary.TopSkills, func(i, j int) bool {
		if summary.TopSkills[i].Count != summary.TopSkills[j].Count {
			return summary.TopSkills[i].Count > summary.TopSkills[j].Count
		}
		return summary.TopSkills[i].Skill < summary.TopSkills[j].Skill
	})
	if len(summary.TopSkills) > s.topSkills {
		summary.TopSkills = summary.TopSkills[:s.topSkills]
	}

	return summary, nil
}

func experienceBucket(years int) string {
	switch {
	case years <= 2:
		return "0-2"
	case years <= 5:
		return "3-5"
	case years <= 10:
		return "6-10"
	default:
		return "10+"
	}
}

var exportHeaders = []string{
	"Resume ID",
	"Filename",
	"Full Name",
	"Email",
	"Experience (years)",
	"Fit Score",
	"Eligibility",
	"Skills",
	"Fit Score Reason",
}

func exportRow(a *models.CandidateAssessment) []string {
	skills := make([]string, 0, len(a.Skills))
	for skill := range a.Skills {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return []string{
		a.ResumeID,
		a.Filename,
		a.FullName,
		a.Email,
		strconv.Itoa(a.TotalExperienceYears),
		strconv.Itoa(a.FitScore),
		string(a.EligibilityStatus),
		strings.Join(skills, ", "),
		a.FitScoreReason,
	}
}

// sortedByScore returns assessments ranked by fit score descending, the
// same order the batch ranking uses.
func (s *analyticsService) sortedByScore() ([]*models.CandidateAssessment, error) {
	assessments, err := s.resultStore.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].FitScore > assessments[j].FitScore
	})

	return assessments, nil
}

func (s *analyticsService) ExportCSV() ([]byte, error) {
	assessments, err := s.sortedByScore()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, a := range assessments {
		if err := w.Write(exportRow(a)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *analyticsService) ExportXLSX() ([]byte, error) {
	assessments, err := s.sortedByScore()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for row, a := range assessments {
		for col, value := range exportRow(a) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	return buf.Bytes(), nil
}
