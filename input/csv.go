package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

// ErrNoURLColumn means the input file has a header row but no URL column.
var ErrNoURLColumn = errors.New("input csv has no URL column")

// Load reads profile entries from a Connections.csv-style export.
// The header must contain a URL column (case-insensitive); every other column
// is ignored. Rows with an empty or non-absolute URL are skipped, not fatal.
// Returns the entries in file order plus the number of skipped rows.
func Load(path string) ([]models.ProfileEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports are ragged often enough to tolerate

	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("parse input csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("input csv %s: %w", path, ErrNoURLColumn)
	}

	urlCol := -1
	for i, header := range records[0] {
		if strings.EqualFold(strings.TrimSpace(header), "url") {
			urlCol = i
			break
		}
	}
	if urlCol < 0 {
		return nil, 0, fmt.Errorf("input csv %s: %w", path, ErrNoURLColumn)
	}

	var entries []models.ProfileEntry
	skipped := 0
	for _, row := range records[1:] {
		if urlCol >= len(row) {
			skipped++
			continue
		}
		raw := strings.TrimSpace(row[urlCol])
		if !validProfileURL(raw) {
			skipped++
			continue
		}
		entries = append(entries, models.ProfileEntry{URL: raw})
	}

	return entries, skipped, nil
}

// validProfileURL accepts absolute http(s) URLs only.
func validProfileURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
