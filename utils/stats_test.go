package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

func result(url string, status models.Status, ts time.Time) models.RunResult {
	return models.RunResult{URL: url, Status: status, Timestamp: ts}
}

func TestBuildSummaryStats(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	results := []models.RunResult{
		result("https://www.linkedin.com/in/a/", models.StatusSuccess, base),
		result("https://www.linkedin.com/in/b/", models.StatusFailed, base.Add(5*time.Second)),
		result("https://www.linkedin.com/in/c/", models.StatusSkipped, base.Add(10*time.Second)),
		result("https://www.linkedin.com/in/d/", models.StatusDryRun, base.Add(15*time.Second)),
		result("https://www.linkedin.com/in/e/", models.StatusFailed, base.Add(20*time.Second)),
	}

	stats := BuildSummaryStats(results)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Removed)
	assert.Equal(t, 1, stats.DryRun)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, []string{
		"https://www.linkedin.com/in/b/",
		"https://www.linkedin.com/in/e/",
	}, stats.FailedURLs)
	assert.Equal(t, base, stats.StartedAt)
	assert.Equal(t, base.Add(20*time.Second), stats.FinishedAt)
}

func TestBuildSummaryStatsEmpty(t *testing.T) {
	stats := BuildSummaryStats(nil)

	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.FailedURLs)
	assert.True(t, stats.StartedAt.IsZero())
}
