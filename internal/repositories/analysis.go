package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"rule/resume-analyzer/internal/models"
)

// AnalysisRepository indexes finished runs. One row per resume ID; a
// re-run of the same document overwrites its row.
type AnalysisRepository interface {
	Record(record *models.AnalysisRecord) error
	FindByResumeID(resumeID string) (*models.AnalysisRecord, error)
	List(limit int) ([]models.AnalysisRecord, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Record implements AnalysisRepository.
func (r *analysisRepository) Record(record *models.AnalysisRecord) error {
	result := r.db.Model(&models.AnalysisRecord{}).
		Where("resume_id = ?", record.ResumeID).
		Updates(map[string]interface{}{
			"filename":           record.Filename,
			"fit_score":          record.FitScore,
			"eligibility_status": record.EligibilityStatus,
			"failed":             record.Failed,
			"failure_reason":     record.FailureReason,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update analysis record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if err := r.db.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create analysis record: %w", err)
		}
	}

	return nil
}

// FindByResumeID implements AnalysisRepository.
func (r *analysisRepository) FindByResumeID(resumeID string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	if err := r.db.Where("resume_id = ?", resumeID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("analysis record not found")
		}

		return nil, fmt.Errorf("failed to find analysis record: %w", err)
	}

	return &record, nil
}

// List implements AnalysisRepository.
func (r *analysisRepository) List(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}

	return records, nil
}
