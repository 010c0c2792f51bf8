package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/internal/pkg/pricing"
)

func catalogItem(id uint, title string, price float64) models.CatalogItem {
	return models.CatalogItem{ID: id, UUID: title, Title: title, Price: price}
}

func TestPreviewElegance(t *testing.T) {
	// Packages: Elegance $1350; Enhancements: Full Gallery $250 optional,
	// Studio Vignette $150 required; no motion, no discount.
	b := NewBuilder().
		SetTitle("Bridal Editorial").
		AddPackage(catalogItem(1, "Elegance", 1350)).
		AddEnhancement(catalogItem(2, "Full Gallery", 250), false).
		AddEnhancement(catalogItem(3, "Studio Vignette", 150), true)

	q, err := b.Preview()
	require.NoError(t, err)
	assert.Equal(t, 1500.0, q.Subtotal)
	assert.Equal(t, 1500.0, q.Total)
	assert.Equal(t, 0.0, q.DiscountAmount)
}

func TestPreviewPercentageDiscount(t *testing.T) {
	b := NewBuilder().
		SetTitle("Bridal Editorial").
		AddPackage(catalogItem(1, "Elegance", 1350)).
		AddEnhancement(catalogItem(2, "Full Gallery", 250), false).
		AddEnhancement(catalogItem(3, "Studio Vignette", 150), true).
		SetDiscount(pricing.Discount{Kind: pricing.DiscountPercentage, Value: 10, Label: "Early booking"})

	q, err := b.Preview()
	require.NoError(t, err)
	assert.Equal(t, 1500.0, q.Subtotal)
	assert.Equal(t, 1350.0, q.Total)
	assert.Equal(t, 150.0, q.DiscountAmount)
}

func TestPreviewFixedDiscountTwoPackages(t *testing.T) {
	b := NewBuilder().
		SetTitle("Twin Tier Offer").
		AddPackage(catalogItem(1, "Opulence", 1650)).
		AddPackage(catalogItem(2, "Essence", 950)).
		AddMotion(catalogItem(3, "Highlight Reel", 250), true).
		SetDiscount(pricing.Discount{Kind: pricing.DiscountFixed, Value: 100})

	q, err := b.Preview()
	require.NoError(t, err)
	assert.Equal(t, 2850.0, q.Subtotal)
	assert.Equal(t, 2750.0, q.Total)
	assert.Equal(t, 100.0, q.DiscountAmount)
}

func TestPreviewIsRepeatable(t *testing.T) {
	b := NewBuilder().
		SetTitle("Repeat").
		AddPackage(catalogItem(1, "Essence", 950)).
		SetDiscount(pricing.Discount{Kind: pricing.DiscountPercentage, Value: 10})

	first, err := b.Preview()
	require.NoError(t, err)
	second, err := b.Preview()
	require.NoError(t, err)

	// Discounts always apply to the original subtotal, never to a prior result.
	assert.Equal(t, first, second)
	assert.Equal(t, StateValid, b.State())
}

func TestValidateMissingTitle(t *testing.T) {
	b := NewBuilder().AddPackage(catalogItem(1, "Elegance", 1350))

	err := b.Validate()
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestValidateMissingPackages(t *testing.T) {
	b := NewBuilder().SetTitle("Test")

	err := b.Validate()
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "packages", vErr.Field)
}

func TestBuilderStateTransitions(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, StateEmpty, b.State())

	b.SetTitle("Test")
	assert.Equal(t, StateEmpty, b.State())

	b.AddPackage(catalogItem(1, "Essence", 950))
	assert.Equal(t, StateValid, b.State())
}
