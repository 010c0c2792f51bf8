package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EmilyHart/StudioPilot/app/models"
)

func TestComputeRates(t *testing.T) {
	counts := map[string]int64{
		models.LEAD_STATUS_NEW:           4,
		models.LEAD_STATUS_CONTACTED:     3,
		models.LEAD_STATUS_PROPOSAL_SENT: 2,
		models.LEAD_STATUS_BOOKED:        1,
	}

	stats := Compute(counts, 5)
	assert.Equal(t, int64(10), stats.TotalLeads)
	assert.Equal(t, int64(5), stats.RecentLeads)
	assert.InDelta(t, 0.6, stats.ContactRate, 1e-9)
	assert.InDelta(t, 0.3, stats.ProposalRate, 1e-9)
	assert.InDelta(t, 0.1, stats.BookingRate, 1e-9)
}

func TestComputeEmptyFunnel(t *testing.T) {
	stats := Compute(map[string]int64{}, 0)
	assert.Equal(t, int64(0), stats.TotalLeads)
	assert.Equal(t, 0.0, stats.BookingRate)

	// Every known stage is present in the output even when zero.
	for _, status := range models.PipelineStatuses() {
		_, ok := stats.StatusCounts[status]
		assert.True(t, ok, "missing status %q", status)
	}
}

func TestComputeIgnoresUnknownStatuses(t *testing.T) {
	counts := map[string]int64{
		models.LEAD_STATUS_BOOKED: 2,
		"imported_garbage":        50,
	}

	stats := Compute(counts, 0)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, 1.0, stats.BookingRate)
}
