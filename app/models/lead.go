package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	LEAD_STATUS_NEW           = "new"
	LEAD_STATUS_CONTACTED     = "contacted"
	LEAD_STATUS_PROPOSAL_SENT = "proposal_sent"
	LEAD_STATUS_BOOKED        = "booked"
	LEAD_STATUS_LOST          = "lost"
)

// Lead is a prospective client moving through the studio pipeline.
type Lead struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=2,max=255"`
	Email     string         `gorm:"type:varchar(255);index" json:"email" validate:"omitempty,email"`
	Phone     string         `gorm:"type:varchar(50)" json:"phone"`
	Source    string         `gorm:"type:varchar(100)" json:"source"`
	Status    string         `gorm:"type:varchar(32);default:'new';index" json:"status"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PipelineStatuses lists every lead status in funnel order.
func PipelineStatuses() []string {
	return []string{
		LEAD_STATUS_NEW,
		LEAD_STATUS_CONTACTED,
		LEAD_STATUS_PROPOSAL_SENT,
		LEAD_STATUS_BOOKED,
		LEAD_STATUS_LOST,
	}
}

// IsValidLeadStatus reports whether s is a known pipeline status.
func IsValidLeadStatus(s string) bool {
	for _, status := range PipelineStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func (l *Lead) Validate() error {
	v := validator.New()

	return v.Struct(l)
}

// BeforeCreate ensures new leads enter the pipeline at the first stage.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LEAD_STATUS_NEW
	}
	return nil
}
