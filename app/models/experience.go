package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EXPERIENCE_STATUS_DRAFT           = "draft"
	EXPERIENCE_STATUS_TEMPLATE        = "template"
	EXPERIENCE_STATUS_CUSTOM_TEMPLATE = "custom_template"
)

// Experience is a named, priced bundle of packages plus optional add-ons and
// an optional discount. A template has no bound lead; a lead-bound copy is
// created when a template is assigned to a prospect. Subtotal and totals are
// always computed at save time, never hand-entered, and CustomMessage holds
// the by-value item snapshots so later catalog edits can't change an already
// saved experience.
type Experience struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UUID               string     `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Title              string     `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	ImageURL           string     `gorm:"type:varchar(500)" json:"image_url"`
	Status             string     `gorm:"type:varchar(32);default:'draft';index" json:"status"`
	LeadID             *uint      `gorm:"index" json:"lead_id,omitempty"`
	Lead               *Lead      `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Subtotal           float64    `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	TotalAmount        float64    `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	DiscountAmount     float64    `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	DiscountPercentage float64    `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"`
	DiscountLabel      string     `gorm:"type:varchar(255)" json:"discount_label"`
	DiscountExpiresAt  *time.Time `json:"discount_expires_at,omitempty"`
	CustomMessage      string     `gorm:"type:mediumtext" json:"custom_message"`

	Items []ExperienceItem `gorm:"foreignKey:ExperienceID" json:"items,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsTemplate reports whether the experience is reusable across leads.
func (e *Experience) IsTemplate() bool {
	return e.LeadID == nil
}

// BeforeCreate assigns the public UUID and a default status.
func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = EXPERIENCE_STATUS_DRAFT
	}
	return nil
}

// ExperienceItem is the normalized link between an experience and one catalog
// item, with the price and title captured at save time.
type ExperienceItem struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ExperienceID  uint        `gorm:"index;not null" json:"experience_id"`
	CatalogItemID uint        `gorm:"index;not null" json:"catalog_item_id"`
	CatalogItem   CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"`
	GroupKind     string      `gorm:"type:varchar(20);not null" json:"group_kind"`
	IsRequired    bool        `gorm:"default:false" json:"is_required"`
	PriceAtSave   float64     `gorm:"type:decimal(10,2);not null;default:0" json:"price_at_save"`
	TitleAtSave   string      `gorm:"type:varchar(255)" json:"title_at_save"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
}
