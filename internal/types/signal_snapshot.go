package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Signal categories captured by the 360 feedback forms.
const (
	SignalCategoryTechnical         = "technical"
	SignalCategoryCustomerFocus     = "customer_focus"
	SignalCategoryLeadership        = "leadership"
	SignalCategoryPeopleLeadership  = "people_leadership"
	SignalCategoryStrategicThinking = "strategic_thinking"
	SignalCategoryInfluence         = "influence"
	SignalCategoryValues            = "values"
	SignalCategoryAdaptability      = "adaptability"
)

// SignalSnapshot is one captured 360 signal for an employee. NormalizedScore
// is already rescaled into [0,1] by the capture flow.
type SignalSnapshot struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee        *Employee `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	SignalName      string    `gorm:"not null;column:signal_name" json:"signal_name"`
	Category        string    `gorm:"not null;column:category;index" json:"category"`
	NormalizedScore float64   `gorm:"column:normalized_score;not null" json:"normalized_score"`
	CapturedAt      time.Time `gorm:"column:captured_at;not null;default:now()" json:"captured_at"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SignalSnapshot) TableName() string { return "signal_snapshot" }

func (s *SignalSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
