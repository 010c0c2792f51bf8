package statistics

import (
	"log"
	"sync"
	"time"

	"github.com/EmilyHart/StudioPilot/app/models"
	"github.com/EmilyHart/StudioPilot/app/repository"
	"github.com/EmilyHart/StudioPilot/internal/pkg/cache"
)

const (
	CacheKeyPipeline = "statistics:pipeline"
	CacheExpiration  = 30 * time.Minute

	// RecentWindowDays is the recency window used for the "new this month"
	// style counters on the dashboard.
	RecentWindowDays = 30
)

// PipelineStats summarizes the lead funnel for the dashboard.
type PipelineStats struct {
	TotalLeads   int64            `json:"total_leads"`
	StatusCounts map[string]int64 `json:"status_counts"`
	ContactRate  float64          `json:"contact_rate"`
	ProposalRate float64          `json:"proposal_rate"`
	BookingRate  float64          `json:"booking_rate"`
	RecentLeads  int64            `json:"recent_leads"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cached pipeline snapshot is stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached snapshot when the interval elapsed
func UpdateCacheIfNeeded(leads repository.LeadRepository) {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if _, err := refreshPipelineCache(leads); err != nil {
			log.Printf("Error updating pipeline statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// GetPipelineStats returns the funnel snapshot, preferring the cache and
// falling back to a fresh computation on a miss.
func GetPipelineStats(leads repository.LeadRepository) (PipelineStats, error) {
	var stats PipelineStats
	if err := cache.GetJSON(CacheKeyPipeline, &stats); err == nil {
		return stats, nil
	}
	return refreshPipelineCache(leads)
}

func refreshPipelineCache(leads repository.LeadRepository) (PipelineStats, error) {
	counts, err := leads.CountByStatus()
	if err != nil {
		return PipelineStats{}, err
	}

	since := time.Now().AddDate(0, 0, -RecentWindowDays)
	recent, err := leads.CountCreatedSince(since)
	if err != nil {
		return PipelineStats{}, err
	}

	stats := Compute(counts, recent)
	if err := cache.SetJSON(CacheKeyPipeline, stats, CacheExpiration); err != nil {
		log.Printf("Error caching pipeline statistics: %v", err)
	}
	return stats, nil
}

// Compute derives conversion rates from per-status lead counts. Rates are
// fractions of the total funnel: contact rate counts every lead that moved
// past intake, proposal rate every lead that received a proposal, booking
// rate only won leads.
func Compute(counts map[string]int64, recentLeads int64) PipelineStats {
	stats := PipelineStats{
		StatusCounts: make(map[string]int64, len(counts)),
		RecentLeads:  recentLeads,
		GeneratedAt:  time.Now().UTC(),
	}
	for _, status := range models.PipelineStatuses() {
		stats.StatusCounts[status] = counts[status]
		stats.TotalLeads += counts[status]
	}

	if stats.TotalLeads == 0 {
		return stats
	}

	contacted := counts[models.LEAD_STATUS_CONTACTED] +
		counts[models.LEAD_STATUS_PROPOSAL_SENT] +
		counts[models.LEAD_STATUS_BOOKED]
	proposed := counts[models.LEAD_STATUS_PROPOSAL_SENT] + counts[models.LEAD_STATUS_BOOKED]
	booked := counts[models.LEAD_STATUS_BOOKED]

	total := float64(stats.TotalLeads)
	stats.ContactRate = float64(contacted) / total
	stats.ProposalRate = float64(proposed) / total
	stats.BookingRate = float64(booked) / total
	return stats
}
