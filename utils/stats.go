package utils

import (
	"time"

	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

// SummaryStats aggregates one run's results for the end-of-run report.
type SummaryStats struct {
	Total   int
	Removed int
	DryRun  int
	Skipped int
	Failed  int

	FailedURLs []string

	StartedAt  time.Time
	FinishedAt time.Time
}

// BuildSummaryStats tallies results in processing order.
func BuildSummaryStats(results []models.RunResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}

	stats.StartedAt = results[0].Timestamp
	stats.FinishedAt = results[len(results)-1].Timestamp

	for _, res := range results {
		switch res.Status {
		case models.StatusSuccess:
			stats.Removed++
		case models.StatusDryRun:
			stats.DryRun++
		case models.StatusSkipped:
			stats.Skipped++
		case models.StatusFailed:
			stats.Failed++
			stats.FailedURLs = append(stats.FailedURLs, res.URL)
		}
	}

	return stats
}
