package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultJobDescription is used when no job description has been saved.
const DefaultJobDescription = "No specific job description provided."

// JobDescriptionStore keeps the active job description in a single flat
// JSON file, overwritten on every save.
type JobDescriptionStore interface {
	Load() string
	Save(jobDescription string) error
}

type jobDescriptionStore struct {
	path string
}

func NewJobDescriptionStore(path string) JobDescriptionStore {
	return &jobDescriptionStore{path: path}
}

type jobDescriptionFile struct {
	JobDescription string `json:"job_description"`
}

func (s *jobDescriptionStore) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DefaultJobDescription
	}

	var parsed jobDescriptionFile
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.JobDescription == "" {
		return DefaultJobDescription
	}

	return parsed.JobDescription
}

func (s *jobDescriptionStore) Save(jobDescription string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create job description directory: %w", err)
	}

	data, err := json.MarshalIndent(jobDescriptionFile{JobDescription: jobDescription}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job description: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write job description: %w", err)
	}

	return nil
}
