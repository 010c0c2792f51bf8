package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

func TestSnapshotEncodeDecode(t *testing.T) {
	snap := Snapshot{
		Summary: "Bridal Editorial includes Elegance for $1,350.",
		PackageSnapshots: PackageSnapshots{
			Packages: []models.CatalogItem{{ID: 1, Title: "Elegance", Price: 1350}},
			Enhancements: []SnapshotItem{
				{CatalogItem: models.CatalogItem{ID: 2, Title: "Studio Vignette", Price: 150}, IsRequired: true},
			},
			ExperienceImageURL: "https://cdn.example.com/bridal.jpg",
		},
	}

	encoded, err := EncodeSnapshot(snap)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(encoded)
	require.NoError(t, err)
	assert.Equal(t, snap.Summary, decoded.Summary)
	require.Len(t, decoded.PackageSnapshots.Packages, 1)
	assert.Equal(t, 1350.0, decoded.PackageSnapshots.Packages[0].Price)
	require.Len(t, decoded.PackageSnapshots.Enhancements, 1)
	assert.True(t, decoded.PackageSnapshots.Enhancements[0].IsRequired)
	assert.Equal(t, "https://cdn.example.com/bridal.jpg", decoded.PackageSnapshots.ExperienceImageURL)
}

func TestDecodeSnapshotEmpty(t *testing.T) {
	snap, err := DecodeSnapshot("")
	require.NoError(t, err)
	assert.Empty(t, snap.PackageSnapshots.Packages)

	snap, err = DecodeSnapshot("   ")
	require.NoError(t, err)
	assert.Empty(t, snap.Summary)
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	_, err := DecodeSnapshot("{not json")
	require.Error(t, err)
}

func TestBuildSummary(t *testing.T) {
	packages := []models.CatalogItem{{Title: "Elegance", Price: 1350}}
	enhancements := []Selected{
		{Item: models.CatalogItem{Title: "Studio Vignette", Price: 150}, Required: true},
		{Item: models.CatalogItem{Title: "Full Gallery", Price: 250}, Required: false},
	}

	s := buildSummary("Bridal Editorial", packages, enhancements, nil,
		pricing.Discount{Kind: pricing.DiscountPercentage, Value: 10}, 1350)

	assert.Contains(t, s, "Elegance")
	assert.Contains(t, s, "Studio Vignette")
	assert.NotContains(t, s, "Full Gallery")
	assert.Contains(t, s, "10% off")
	assert.Contains(t, s, "$1,350")
}
