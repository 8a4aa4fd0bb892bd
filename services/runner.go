package services

import (
	"context"
	"log"
	"time"

	"github.com/AlirezaBelal/linkedin-connection-remover/config"
	"github.com/AlirezaBelal/linkedin-connection-remover/linkedin"
	"github.com/AlirezaBelal/linkedin-connection-remover/models"
	"github.com/AlirezaBelal/linkedin-connection-remover/recorder"
)

// Driver is the capability surface the loop needs from the browser. The
// chromedp-backed linkedin.Client implements it; tests use a fake.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	IsConnected(ctx context.Context) (bool, error)
	OpenActionsMenu(ctx context.Context) error
	FindRemoveItem(ctx context.Context) (bool, error)
	RemoveConnection(ctx context.Context) error
	Capture(ctx context.Context) (models.Snapshot, error)
}

// Recorder appends one result row per processed entry.
type Recorder interface {
	Record(res models.RunResult) error
}

// Snapshotter persists a debug capture for a failed entry.
type Snapshotter interface {
	Write(snap models.Snapshot, prefix string) (pngPath, htmlPath string)
}

// ResultStore mirrors results into external storage. Optional.
type ResultStore interface {
	SaveResult(ctx context.Context, res models.RunResult) error
}

// Runner drives the strictly sequential per-profile loop. One entry in, one
// result out, in input order — an entry's failure never aborts the batch.
type Runner struct {
	cfg       config.Config
	driver    Driver
	recorder  Recorder
	snapshots Snapshotter
	store     ResultStore // nil unless the Postgres mirror is enabled

	sleep func(time.Duration)
	now   func() time.Time
}

// NewRunner wires the loop. store may be nil.
func NewRunner(cfg config.Config, driver Driver, rec Recorder, snaps Snapshotter, store ResultStore) *Runner {
	return &Runner{
		cfg:       cfg,
		driver:    driver,
		recorder:  rec,
		snapshots: snaps,
		store:     store,
		sleep:     time.Sleep,
		now:       time.Now,
	}
}

// Run processes every entry in order and returns the results that were
// recorded. Interruption via ctx stops the loop between entries; the entry
// being processed still gets its row.
func (r *Runner) Run(ctx context.Context, entries []models.ProfileEntry) []models.RunResult {
	results := make([]models.RunResult, 0, len(entries))

	for i, entry := range entries {
		if ctx.Err() != nil {
			log.Printf("⚠ interrupted — %d of %d entries processed", i, len(entries))
			break
		}

		log.Printf("[%d/%d] ▶ %s", i+1, len(entries), entry.URL)
		status, detail := r.processEntry(ctx, entry)

		res := models.RunResult{
			URL:       entry.URL,
			Status:    status,
			Detail:    detail,
			Timestamp: r.now(),
		}
		r.record(ctx, res)
		results = append(results, res)

		switch status {
		case models.StatusSuccess:
			log.Printf("[%d/%d] ✓ removed", i+1, len(entries))
		case models.StatusDryRun:
			log.Printf("[%d/%d] ✓ dry-run (no click performed)", i+1, len(entries))
		case models.StatusSkipped:
			log.Printf("[%d/%d] ○ skipped — %s", i+1, len(entries), detail)
		default:
			log.Printf("[%d/%d] ✗ %s", i+1, len(entries), detail)
		}

		if i < len(entries)-1 && ctx.Err() == nil {
			r.sleep(r.cfg.RandomDelay())
		}
	}

	return results
}

// processEntry runs the removal flow for one profile. Every error path is
// downgraded to a status + detail; FAILED paths leave a debug snapshot behind.
func (r *Runner) processEntry(ctx context.Context, entry models.ProfileEntry) (models.Status, string) {
	if err := r.driver.Navigate(ctx, entry.URL); err != nil {
		return models.StatusFailed, r.failDetail(ctx, entry, "navigation failed: "+err.Error())
	}

	connected, err := r.driver.IsConnected(ctx)
	if err != nil {
		return models.StatusFailed, r.failDetail(ctx, entry, err.Error())
	}
	if !connected {
		return models.StatusSkipped, "not a 1st-degree connection"
	}

	if err := r.driver.OpenActionsMenu(ctx); err != nil {
		return models.StatusFailed, r.failDetail(ctx, entry, err.Error())
	}

	found, err := r.driver.FindRemoveItem(ctx)
	if err != nil {
		return models.StatusFailed, r.failDetail(ctx, entry, err.Error())
	}
	if !found {
		return models.StatusFailed, r.failDetail(ctx, entry, "no remove-connection item in menu")
	}

	if r.cfg.DryRun {
		return models.StatusDryRun, "remove item located, click skipped"
	}

	if err := r.driver.RemoveConnection(ctx); err != nil {
		return models.StatusFailed, r.failDetail(ctx, entry, err.Error())
	}

	return models.StatusSuccess, ""
}

// failDetail captures a debug snapshot for a failed entry and enriches the
// detail with the captured page title when the markup yields one.
func (r *Runner) failDetail(ctx context.Context, entry models.ProfileEntry, detail string) string {
	snap, err := r.driver.Capture(ctx)
	if err != nil {
		log.Printf("⚠ debug capture failed for %s: %v", entry.URL, err)
		return detail
	}

	prefix := linkedin.ProfileSlug(entry.URL)
	pngPath, htmlPath := r.snapshots.Write(snap, prefix)
	if pngPath != "" || htmlPath != "" {
		log.Printf("  debug snapshot: %s %s", pngPath, htmlPath)
	}

	if title := recorder.PageTitle(snap.HTML); title != "" {
		detail += " (page: " + title + ")"
	}
	return detail
}

// record appends the row everywhere it belongs. Recording failures are logged
// and do not stop the run; the CSV and the mirror are independent.
func (r *Runner) record(ctx context.Context, res models.RunResult) {
	if err := r.recorder.Record(res); err != nil {
		log.Printf("⚠ record result for %s: %v", res.URL, err)
	}
	if r.store != nil {
		// Detached from ctx so an interrupt still gets its final row mirrored.
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		if err := r.store.SaveResult(saveCtx, res); err != nil {
			log.Printf("⚠ mirror result for %s: %v", res.URL, err)
		}
		cancel()
	}
}
