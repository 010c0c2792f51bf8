package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	SESSION_STATUS_SCHEDULED   = "scheduled"
	SESSION_STATUS_COMPLETED   = "completed"
	SESSION_STATUS_CANCELLED   = "cancelled"
	SESSION_STATUS_RESCHEDULED = "rescheduled"
)

// StudioSession is a scheduled shoot for a lead.
type StudioSession struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	LeadID          uint           `gorm:"index" json:"lead_id"`
	Lead            Lead           `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	SessionType     string         `gorm:"type:varchar(100)" json:"session_type"`
	ScheduledAt     time.Time      `gorm:"index" json:"scheduled_at" validate:"required"`
	Location        string         `gorm:"type:varchar(255)" json:"location"`
	DurationMinutes int            `gorm:"default:60" json:"duration_minutes" validate:"gte=0"`
	Status          string         `gorm:"type:varchar(32);default:'scheduled';index" json:"status"`
	Notes           string         `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *StudioSession) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

// IsValidSessionStatus reports whether s is a known session status.
func IsValidSessionStatus(s string) bool {
	switch s {
	case SESSION_STATUS_SCHEDULED, SESSION_STATUS_COMPLETED, SESSION_STATUS_CANCELLED, SESSION_STATUS_RESCHEDULED:
		return true
	default:
		return false
	}
}

// BeforeCreate defaults new sessions to the scheduled state.
func (s *StudioSession) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = SESSION_STATUS_SCHEDULED
	}
	return nil
}
