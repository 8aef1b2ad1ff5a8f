package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentEvidence is one row of the audit snapshot behind a 9-box rating:
// which source contributed, at what normalized value and applied weight. The
// full row set for an assessment+axis is always replaced together, never
// partially updated. SourceType is denormalized text so rows survive registry
// edits and deletions untouched.
type AssessmentEvidence struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AssessmentID        uuid.UUID `gorm:"type:uuid;not null;index:idx_assessment_evidence_assessment_axis" json:"assessment_id"`
	CompanyID           uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Axis                string    `gorm:"not null;column:axis;index:idx_assessment_evidence_assessment_axis" json:"axis"`
	SourceType          string    `gorm:"not null;column:source_type" json:"source_type"`
	SourceValue         *float64  `gorm:"column:source_value" json:"source_value,omitempty"`
	WeightApplied       float64   `gorm:"column:weight_applied;not null" json:"weight_applied"`
	ConfidenceScore     float64   `gorm:"column:confidence_score;not null" json:"confidence_score"`
	ContributionSummary string    `gorm:"column:contribution_summary" json:"contribution_summary"`
	CreatedAt           time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (AssessmentEvidence) TableName() string { return "assessment_evidence" }

func (e *AssessmentEvidence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
