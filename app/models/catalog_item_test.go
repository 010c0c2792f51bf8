package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EmilyHart/StudioPilot/internal/pkg/catalog"
)

func TestCatalogItemResolvedKind(t *testing.T) {
	item := &CatalogItem{Kind: "motion"}
	assert.Equal(t, catalog.KindMotion, item.ResolvedKind())

	// Legacy row: kind column empty, tag embedded in theme keywords.
	legacy := &CatalogItem{ThemeKeywords: "package_type:enhancement|studio vignette"}
	assert.Equal(t, catalog.KindEnhancement, legacy.ResolvedKind())
	assert.Equal(t, "studio vignette", legacy.Keywords())

	// Unknown everywhere defaults to package.
	blank := &CatalogItem{}
	assert.Equal(t, catalog.KindPackage, blank.ResolvedKind())
}

func TestCatalogItemBeforeCreateBackfillsKind(t *testing.T) {
	item := &CatalogItem{Title: "Highlight Reel", ThemeKeywords: "package_type:motion|cinematic"}
	err := item.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, "motion", item.Kind)
	assert.NotEmpty(t, item.UUID)
}

func TestExperienceIsTemplate(t *testing.T) {
	tpl := &Experience{Status: EXPERIENCE_STATUS_TEMPLATE}
	assert.True(t, tpl.IsTemplate())

	leadID := uint(7)
	bound := &Experience{LeadID: &leadID}
	assert.False(t, bound.IsTemplate())
}
