package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rule/resume-analyzer/internal/models"
)

// ResultStore persists one JSON document per resume_id. The contract is
// write once after the pipeline reaches its terminal state, readable
// later by id; records are never updated in place.
type ResultStore interface {
	Save(assessment *models.CandidateAssessment) error
	Get(resumeID string) (*models.CandidateAssessment, error)
	List() ([]*models.CandidateAssessment, error)
	EnsureDir() error
}

type fileResultStore struct {
	dir string
}

func NewFileResultStore(dir string) ResultStore {
	return &fileResultStore{dir: dir}
}

func (s *fileResultStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create outputs directory: %w", err)
	}
	return nil
}

func (s *fileResultStore) path(resumeID string) string {
	return filepath.Join(s.dir, resumeID+".json")
}

func (s *fileResultStore) Save(assessment *models.CandidateAssessment) error {
	if assessment.ResumeID == "" {
		return fmt.Errorf("assessment has no resume_id")
	}

	data, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	if err := os.WriteFile(s.path(assessment.ResumeID), data, 0644); err != nil {
		return fmt.Errorf("failed to write assessment: %w", err)
	}

	return nil
}

func (s *fileResultStore) Get(resumeID string) (*models.CandidateAssessment, error) {
	data, err := os.ReadFile(s.path(resumeID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("assessment not found: %s", resumeID)
		}
		return nil, fmt.Errorf("failed to read assessment: %w", err)
	}

	var assessment models.CandidateAssessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, fmt.Errorf("failed to parse assessment %s: %w", resumeID, err)
	}

	return &assessment, nil
}

func (s *fileResultStore) List() ([]*models.CandidateAssessment, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read outputs directory: %w", err)
	}

	var assessments []*models.CandidateAssessment
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		assessment, err := s.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			// A malformed record should not hide the rest.
			continue
		}
		assessments = append(assessments, assessment)
	}

	return assessments, nil
}
