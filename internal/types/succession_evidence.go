package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const EvidenceTypeNineBox = "nine_box_assessment"

// SuccessionEvidence links a rating outcome to a succession candidate. Each
// link is an independent audit event; rows accumulate rather than replace.
// SourceAssessmentID is a non-owning back-reference: deleting the assessment
// does not cascade here.
type SuccessionEvidence struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CandidateID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"candidate_id"`
	CompanyID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	EvidenceType          string         `gorm:"not null;column:evidence_type;default:'nine_box_assessment'" json:"evidence_type"`
	SourceAssessmentID    *uuid.UUID     `gorm:"type:uuid;column:source_assessment_id" json:"source_assessment_id,omitempty"`
	SignalSummary         datatypes.JSON `gorm:"type:jsonb;column:signal_summary" json:"signal_summary"`
	LeadershipCount       int            `gorm:"column:leadership_count;not null;default:0" json:"leadership_count"`
	AvgLeadershipScore    *float64       `gorm:"column:avg_leadership_score" json:"avg_leadership_score,omitempty"`
	ReadinessContribution float64        `gorm:"column:readiness_contribution;not null;default:0" json:"readiness_contribution"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (SuccessionEvidence) TableName() string { return "succession_evidence" }

func (e *SuccessionEvidence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
