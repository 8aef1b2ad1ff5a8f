package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PotentialAssessmentStatusDraft     = "draft"
	PotentialAssessmentStatusCompleted = "completed"
)

// PotentialAssessment is the structured potential form outcome.
// CalculatedRating is on the 1-3 scale.
type PotentialAssessment struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee         *Employee  `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	CalculatedRating float64    `gorm:"column:calculated_rating;not null" json:"calculated_rating"`
	AssessedBy       uuid.UUID  `gorm:"type:uuid;column:assessed_by" json:"assessed_by"`
	Status           string     `gorm:"column:status;not null;default:'draft';index" json:"status"`
	AssessedAt       *time.Time `gorm:"column:assessed_at" json:"assessed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (PotentialAssessment) TableName() string { return "potential_assessment" }

func (p *PotentialAssessment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
