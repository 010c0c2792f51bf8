package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PROPOSAL_STATUS_DRAFT    = "draft"
	PROPOSAL_STATUS_SENT     = "sent"
	PROPOSAL_STATUS_VIEWED   = "viewed"
	PROPOSAL_STATUS_ACCEPTED = "accepted"
	PROPOSAL_STATUS_DECLINED = "declined"
)

// Proposal is a client-facing offer referencing a priced experience.
type Proposal struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UUID         string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	LeadID       uint       `gorm:"index;not null" json:"lead_id"`
	Lead         Lead       `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	ExperienceID uint       `gorm:"index;not null" json:"experience_id"`
	Experience   Experience `gorm:"foreignKey:ExperienceID" json:"experience,omitempty"`
	Status       string     `gorm:"type:varchar(32);default:'draft';index" json:"status"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsValidProposalStatus reports whether s is a known proposal status.
func IsValidProposalStatus(s string) bool {
	switch s {
	case PROPOSAL_STATUS_DRAFT, PROPOSAL_STATUS_SENT, PROPOSAL_STATUS_VIEWED, PROPOSAL_STATUS_ACCEPTED, PROPOSAL_STATUS_DECLINED:
		return true
	default:
		return false
	}
}

// BeforeCreate assigns the public UUID and default status.
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = PROPOSAL_STATUS_DRAFT
	}
	return nil
}
