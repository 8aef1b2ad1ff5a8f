package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SourceConfig is a tenant's participation weight for one evidence source on
// one rating axis. Weights are not required to sum to 1 across an axis; the
// calculator renormalizes over the sources that actually produced evidence.
type SourceConfig struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_source_config_company_axis" json:"company_id"`
	Axis       string         `gorm:"not null;column:axis;index:idx_source_config_company_axis" json:"axis"`
	SourceType string         `gorm:"not null;column:source_type" json:"source_type"`
	Weight     float64        `gorm:"column:weight;not null;default:1" json:"weight"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Priority   int            `gorm:"column:priority;not null;default:0" json:"priority"`
	Config     datatypes.JSON `gorm:"type:jsonb;column:config" json:"config,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SourceConfig) TableName() string { return "source_config" }

func (c *SourceConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
