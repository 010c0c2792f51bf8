package experience

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/internal/pkg/money"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

// SnapshotItem is a catalog item captured by value at save time, carrying the
// authoring-time required flag for add-ons.
type SnapshotItem struct {
	models.CatalogItem
	IsRequired bool `json:"is_required"`
}

// PackageSnapshots holds the by-value component copies stored inside an
// experience record. Later catalog edits never touch these.
type PackageSnapshots struct {
	Packages           []models.CatalogItem `json:"packages"`
	Enhancements       []SnapshotItem       `json:"enhancements"`
	Motion             []SnapshotItem       `json:"motion"`
	ExperienceImageURL string               `json:"experience_image_url,omitempty"`
}

// DiscountSnapshot preserves the full discount descriptor so editing a saved
// experience can restore it losslessly.
type DiscountSnapshot struct {
	Kind      string     `json:"kind"`
	Value     float64    `json:"value"`
	Label     string     `json:"label,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Snapshot is the JSON document stored in the experience custom_message
// column: a human-readable summary plus the component snapshots.
type Snapshot struct {
	Summary          string            `json:"summary"`
	PackageSnapshots PackageSnapshots  `json:"package_snapshots"`
	Discount         *DiscountSnapshot `json:"discount,omitempty"`
}

// EncodeSnapshot serializes a snapshot for persistence.
func EncodeSnapshot(s Snapshot) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode experience snapshot: %w", err)
	}
	return string(raw), nil
}

// DecodeSnapshot restores a snapshot from a stored custom_message value.
// An empty value yields an empty snapshot, not an error.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if strings.TrimSpace(raw) == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode experience snapshot: %w", err)
	}
	return s, nil
}

// buildSummary renders the operator-facing one-paragraph description that
// accompanies the snapshots.
func buildSummary(title string, packages []models.CatalogItem, enhancements, motion []Selected, d pricing.Discount, total float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s includes", title)

	var names []string
	for _, p := range packages {
		names = append(names, p.Title)
	}
	for _, s := range enhancements {
		if s.Required {
			names = append(names, s.Item.Title)
		}
	}
	for _, s := range motion {
		if s.Required {
			names = append(names, s.Item.Title)
		}
	}
	if len(names) == 0 {
		b.WriteString(" no components")
	} else {
		b.WriteString(" " + strings.Join(names, ", "))
	}

	if d.Kind == pricing.DiscountPercentage && d.Value > 0 {
		fmt.Fprintf(&b, " with %g%% off", d.Value)
	} else if d.Kind == pricing.DiscountFixed && d.Value > 0 {
		fmt.Fprintf(&b, " with %s off", money.FormatUSD(d.Value))
	}

	fmt.Fprintf(&b, " for %s.", money.FormatUSD(total))
	return b.String()
}
