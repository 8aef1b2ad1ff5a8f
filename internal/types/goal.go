package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GoalStatusActive    = "active"
	GoalStatusAchieved  = "achieved"
	GoalStatusCancelled = "cancelled"
)

type Goal struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee           *Employee  `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	Title              string     `gorm:"not null;column:title" json:"title"`
	Description        string     `gorm:"column:description" json:"description"`
	ProgressPercentage float64    `gorm:"column:progress_percentage;not null;default:0" json:"progress_percentage"`
	Status             string     `gorm:"column:status;not null;default:'active';index" json:"status"`
	DueDate            *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CreatedAt          time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Goal) TableName() string { return "goal" }

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
