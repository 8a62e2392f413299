package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is the queryable index row written alongside each
// persisted assessment JSON. The canonical record lives in the result
// store; this table exists for listing and analytics grouping.
type AnalysisRecord struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeID          string    `gorm:"type:text;uniqueIndex;not null" json:"resume_id"`
	Filename          string    `gorm:"type:text" json:"filename"`
	FitScore          int       `gorm:"not null" json:"fit_score"`
	EligibilityStatus string    `gorm:"type:text" json:"eligibility_status"`
	Failed            bool      `gorm:"not null;default:false" json:"failed"`
	FailureReason     string    `gorm:"type:text" json:"failure_reason,omitempty"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
