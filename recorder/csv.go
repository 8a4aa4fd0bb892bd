package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

var csvHeader = []string{"url", "status", "detail", "timestamp"}

// CSVRecorder appends one row per processed profile to the results log.
// Every row is flushed immediately so a crash mid-run loses nothing.
type CSVRecorder struct {
	f *os.File
	w *csv.Writer
}

// OpenCSV opens (or creates) the results log at path, creating parent
// directories as needed. The header is written only for a fresh file, so
// re-runs keep appending to the same append-only log.
func OpenCSV(path string) (*CSVRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create results dir: %w", err)
		}
	}

	info, statErr := os.Stat(path)
	fresh := statErr != nil || info.Size() == 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open results csv: %w", err)
	}

	r := &CSVRecorder{f: f, w: csv.NewWriter(f)}
	if fresh {
		if err := r.w.Write(csvHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("write results header: %w", err)
		}
		r.w.Flush()
		if err := r.w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush results header: %w", err)
		}
	}
	return r, nil
}

// Record appends one result row and flushes it to disk.
func (r *CSVRecorder) Record(res models.RunResult) error {
	row := []string{
		res.URL,
		string(res.Status),
		res.Detail,
		res.Timestamp.UTC().Format(time.RFC3339),
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("write result row: %w", err)
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return fmt.Errorf("flush result row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (r *CSVRecorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}
