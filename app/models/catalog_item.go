package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/EmilyHart/StudioPilot/internal/pkg/catalog"
)

// JSON stores raw JSON documents in a text column.
type JSON json.RawMessage

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON("{}")
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid scan source")
	}
	*j = JSON(bytes)
	return nil
}

// MarshalJSON implements the json.Marshaler interface
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (j *JSON) UnmarshalJSON(data []byte) error {
	*j = JSON(data)
	return nil
}

// CatalogItem is one purchasable unit: a package tier, an enhancement, or a
// motion add-on. Kind lives in its own column; ThemeKeywords may still carry
// the legacy package_type tag for rows written before the column existed.
type CatalogItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	UUID          string  `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Title         string  `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=2,max=255"`
	Price         float64 `gorm:"type:decimal(10,2);not null;default:0" json:"price" validate:"gte=0"`
	Kind          string  `gorm:"type:varchar(20);not null;default:'package';index" json:"kind"`
	ThemeKeywords string  `gorm:"type:varchar(500)" json:"theme_keywords"`
	Description   string  `gorm:"type:text" json:"description"`
	Highlights    JSON    `gorm:"type:text" json:"highlights,omitempty"`
	Sessions      string  `gorm:"type:varchar(255)" json:"sessions"`
	Locations     string  `gorm:"type:varchar(255)" json:"locations"`
	Gallery       string  `gorm:"type:varchar(255)" json:"gallery"`
	Looks         string  `gorm:"type:varchar(255)" json:"looks"`
	Delivery      string  `gorm:"type:varchar(255)" json:"delivery"`
	Video         string  `gorm:"type:varchar(255)" json:"video"`
	Turnaround    string  `gorm:"type:varchar(255)" json:"turnaround"`
	FineArt       string  `gorm:"type:varchar(255)" json:"fine_art"`
	IsActive      bool    `gorm:"default:true;index" json:"is_active"`
	IsTemplate    bool    `gorm:"default:false" json:"is_template"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ci *CatalogItem) Validate() error {
	v := validator.New()

	return v.Struct(ci)
}

// ResolvedKind returns the item's catalog kind, falling back to the legacy
// theme tag when the kind column is empty or unknown.
func (ci *CatalogItem) ResolvedKind() catalog.Kind {
	if catalog.ValidKind(ci.Kind) {
		return catalog.Kind(ci.Kind)
	}
	kind, _ := catalog.Classify(ci.ThemeKeywords)
	return kind
}

// Keywords returns the free-text keywords with any legacy tag stripped.
func (ci *CatalogItem) Keywords() string {
	_, keywords := catalog.Classify(ci.ThemeKeywords)
	return keywords
}

// BeforeCreate assigns a public UUID and backfills the kind column from the
// legacy theme tag when the caller didn't set one.
func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if ci.UUID == "" {
		ci.UUID = uuid.New().String()
	}
	if !catalog.ValidKind(ci.Kind) {
		kind, _ := catalog.Classify(ci.ThemeKeywords)
		ci.Kind = string(kind)
	}
	return nil
}
