package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NineBoxStatusDraft     = "draft"
	NineBoxStatusFinalized = "finalized"
)

// NineBoxAssessment is the persisted 9-box result for one employee. Bands are
// nullable: a nil band means the axis had no evidence, which is distinct from
// a low score.
type NineBoxAssessment struct {
	ID                      uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee                *Employee      `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	PerformanceBand         *int           `gorm:"column:performance_band" json:"performance_band,omitempty"`
	PotentialBand           *int           `gorm:"column:potential_band" json:"potential_band,omitempty"`
	PerformanceConfidence   *float64       `gorm:"column:performance_confidence" json:"performance_confidence,omitempty"`
	PotentialConfidence     *float64       `gorm:"column:potential_confidence" json:"potential_confidence,omitempty"`
	IsOverridePerformance   bool           `gorm:"column:is_override_performance;not null;default:false" json:"is_override_performance"`
	IsOverridePotential     bool           `gorm:"column:is_override_potential;not null;default:false" json:"is_override_potential"`
	OverrideReasonPerf      string         `gorm:"column:override_reason_performance" json:"override_reason_performance,omitempty"`
	OverrideReasonPotential string         `gorm:"column:override_reason_potential" json:"override_reason_potential,omitempty"`
	Status                  string         `gorm:"column:status;not null;default:'draft';index" json:"status"`
	CalculatedAt            time.Time      `gorm:"column:calculated_at;not null;default:now()" json:"calculated_at"`
	CreatedAt               time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (NineBoxAssessment) TableName() string { return "nine_box_assessment" }

func (a *NineBoxAssessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
