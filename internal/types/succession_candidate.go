package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuccessionCandidate struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee       *Employee      `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	RolePath       string         `gorm:"column:role_path" json:"role_path"`
	ReadinessScore float64        `gorm:"column:readiness_score;not null;default:0" json:"readiness_score"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SuccessionCandidate) TableName() string { return "succession_candidate" }

func (c *SuccessionCandidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
