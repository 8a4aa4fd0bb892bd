package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlirezaBelal/linkedin-connection-remover/config"
	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

// fakeDriver scripts per-URL behaviour for the loop.
type fakeDriver struct {
	navigateErr  map[string]error
	notConnected map[string]bool
	menuErr      map[string]error
	noRemoveItem map[string]bool
	removeErr    map[string]error

	currentURL  string
	removeCalls []string
	captures    int
}

func (d *fakeDriver) Navigate(_ context.Context, url string) error {
	d.currentURL = url
	return d.navigateErr[url]
}

func (d *fakeDriver) IsConnected(_ context.Context) (bool, error) {
	return !d.notConnected[d.currentURL], nil
}

func (d *fakeDriver) OpenActionsMenu(_ context.Context) error {
	return d.menuErr[d.currentURL]
}

func (d *fakeDriver) FindRemoveItem(_ context.Context) (bool, error) {
	return !d.noRemoveItem[d.currentURL], nil
}

func (d *fakeDriver) RemoveConnection(_ context.Context) error {
	d.removeCalls = append(d.removeCalls, d.currentURL)
	return d.removeErr[d.currentURL]
}

func (d *fakeDriver) Capture(_ context.Context) (models.Snapshot, error) {
	d.captures++
	return models.Snapshot{
		PNG:  []byte{0x89, 'P', 'N', 'G'},
		HTML: "<html><head><title>Profile page</title></head><body></body></html>",
	}, nil
}

type memRecorder struct {
	rows []models.RunResult
	err  error
}

func (r *memRecorder) Record(res models.RunResult) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, res)
	return nil
}

type memSnapshotter struct {
	writes []string // prefixes, in call order
}

func (s *memSnapshotter) Write(_ models.Snapshot, prefix string) (string, string) {
	s.writes = append(s.writes, prefix)
	return prefix + ".png", prefix + ".html"
}

func newTestRunner(cfg config.Config, d Driver, rec Recorder, snaps Snapshotter) (*Runner, *[]time.Duration) {
	r := NewRunner(cfg, d, rec, snaps, nil)
	var slept []time.Duration
	r.sleep = func(dur time.Duration) { slept = append(slept, dur) }
	r.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return r, &slept
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.MinDelay = 0.01
	cfg.MaxDelay = 0.02
	return cfg
}

func entries(urls ...string) []models.ProfileEntry {
	out := make([]models.ProfileEntry, len(urls))
	for i, u := range urls {
		out[i] = models.ProfileEntry{URL: u}
	}
	return out
}

func TestRunOneResultPerEntryInOrder(t *testing.T) {
	d := &fakeDriver{}
	rec := &memRecorder{}
	r, _ := newTestRunner(testConfig(), d, rec, &memSnapshotter{})

	urls := []string{
		"https://www.linkedin.com/in/alpha/",
		"https://www.linkedin.com/in/bravo/",
		"https://www.linkedin.com/in/charlie/",
	}
	results := r.Run(context.Background(), entries(urls...))

	require.Len(t, results, 3)
	require.Len(t, rec.rows, 3)
	for i, u := range urls {
		assert.Equal(t, u, results[i].URL)
		assert.Equal(t, models.StatusSuccess, results[i].Status)
		assert.Equal(t, u, rec.rows[i].URL)
	}
}

func TestRunFailureDoesNotAbortBatch(t *testing.T) {
	// Second profile's menu has no remove item: the classic A/B/C scenario.
	d := &fakeDriver{
		noRemoveItem: map[string]bool{"https://www.linkedin.com/in/bravo/": true},
	}
	rec := &memRecorder{}
	snaps := &memSnapshotter{}
	r, _ := newTestRunner(testConfig(), d, rec, snaps)

	results := r.Run(context.Background(), entries(
		"https://www.linkedin.com/in/alpha/",
		"https://www.linkedin.com/in/bravo/",
		"https://www.linkedin.com/in/charlie/",
	))

	require.Len(t, results, 3)
	assert.Equal(t, models.StatusSuccess, results[0].Status)
	assert.Equal(t, models.StatusFailed, results[1].Status)
	assert.Equal(t, models.StatusSuccess, results[2].Status)
	assert.Contains(t, results[1].Detail, "no remove-connection item")

	// Exactly one snapshot pair, named for the failing profile.
	require.Len(t, snaps.writes, 1)
	assert.Equal(t, "bravo", snaps.writes[0])
	assert.Equal(t, 1, d.captures)
}

func TestRunNavigationErrorRecordedAndRunContinues(t *testing.T) {
	d := &fakeDriver{
		navigateErr: map[string]error{
			"https://www.linkedin.com/in/alpha/": errors.New("net::ERR_TIMED_OUT"),
		},
	}
	rec := &memRecorder{}
	snaps := &memSnapshotter{}
	r, _ := newTestRunner(testConfig(), d, rec, snaps)

	results := r.Run(context.Background(), entries(
		"https://www.linkedin.com/in/alpha/",
		"https://www.linkedin.com/in/bravo/",
	))

	require.Len(t, results, 2)
	assert.Equal(t, models.StatusFailed, results[0].Status)
	assert.Contains(t, results[0].Detail, "navigation failed")
	assert.Equal(t, models.StatusSuccess, results[1].Status)
	assert.Len(t, snaps.writes, 1)
}

func TestRunDryRunNeverClicksOrSucceeds(t *testing.T) {
	cfg := testConfig()
	cfg.DryRun = true
	d := &fakeDriver{}
	rec := &memRecorder{}
	r, _ := newTestRunner(cfg, d, rec, &memSnapshotter{})

	results := r.Run(context.Background(), entries(
		"https://www.linkedin.com/in/alpha/",
		"https://www.linkedin.com/in/bravo/",
	))

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, models.StatusDryRun, res.Status)
		assert.NotEqual(t, models.StatusSuccess, res.Status)
	}
	assert.Empty(t, d.removeCalls, "dry run must not invoke the state-changing action")
}

func TestRunSkipsNonConnections(t *testing.T) {
	d := &fakeDriver{
		notConnected: map[string]bool{"https://www.linkedin.com/in/stranger/": true},
	}
	rec := &memRecorder{}
	snaps := &memSnapshotter{}
	r, _ := newTestRunner(testConfig(), d, rec, snaps)

	results := r.Run(context.Background(), entries("https://www.linkedin.com/in/stranger/"))

	require.Len(t, results, 1)
	assert.Equal(t, models.StatusSkipped, results[0].Status)
	assert.Empty(t, d.removeCalls)
	assert.Empty(t, snaps.writes, "skips are not failures, no snapshot expected")
}

func TestRunSleepsBetweenEntriesWithinBounds(t *testing.T) {
	cfg := testConfig()
	cfg.MinDelay = 1.5
	cfg.MaxDelay = 3.5
	d := &fakeDriver{}
	r, slept := newTestRunner(cfg, d, &memRecorder{}, &memSnapshotter{})

	r.Run(context.Background(), entries(
		"https://www.linkedin.com/in/a/",
		"https://www.linkedin.com/in/b/",
		"https://www.linkedin.com/in/c/",
	))

	// One sleep per consecutive pair, none after the last entry.
	require.Len(t, *slept, 2)
	lo := time.Duration(cfg.MinDelay * float64(time.Second))
	hi := time.Duration(cfg.MaxDelay * float64(time.Second))
	for _, dur := range *slept {
		assert.GreaterOrEqual(t, dur, lo)
		assert.LessOrEqual(t, dur, hi)
	}
}

func TestRunStopsBetweenEntriesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &fakeDriver{}
	rec := &memRecorder{}
	r, _ := newTestRunner(testConfig(), d, rec, &memSnapshotter{})
	r.sleep = func(time.Duration) { cancel() }

	results := r.Run(ctx, entries(
		"https://www.linkedin.com/in/a/",
		"https://www.linkedin.com/in/b/",
		"https://www.linkedin.com/in/c/",
	))

	// First entry completes and is recorded; cancellation during the delay
	// stops the rest of the batch.
	require.Len(t, results, 1)
	require.Len(t, rec.rows, 1)
}

func TestRunFailedDetailIncludesPageTitle(t *testing.T) {
	d := &fakeDriver{
		menuErr: map[string]error{
			"https://www.linkedin.com/in/alpha/": errors.New("open actions menu: no visible more-actions control"),
		},
	}
	r, _ := newTestRunner(testConfig(), d, &memRecorder{}, &memSnapshotter{})

	results := r.Run(context.Background(), entries("https://www.linkedin.com/in/alpha/"))

	require.Len(t, results, 1)
	assert.Equal(t, models.StatusFailed, results[0].Status)
	assert.Contains(t, results[0].Detail, "Profile page")
}
