package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppraisalStatusDraft     = "draft"
	AppraisalStatusInReview  = "in_review"
	AppraisalStatusCompleted = "completed"
)

// Appraisal is the outcome of a review cycle for one employee. OverallScore
// is on the 0-5 scale used by the appraisal forms.
type Appraisal struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee     *Employee  `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	CycleName    string     `gorm:"column:cycle_name" json:"cycle_name"`
	OverallScore float64    `gorm:"column:overall_score;not null" json:"overall_score"`
	Status       string     `gorm:"column:status;not null;default:'draft';index" json:"status"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Appraisal) TableName() string { return "appraisal" }

func (a *Appraisal) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
