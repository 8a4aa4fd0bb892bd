package models

import "time"

// Status classifies the outcome of one processed profile URL.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusSkipped Status = "SKIPPED"
	StatusFailed  Status = "FAILED"
	StatusDryRun  Status = "DRY_RUN"
)

// ProfileEntry is one row of the input list. The URL is the only field the
// remover needs; everything else in a Connections.csv export is ignored.
type ProfileEntry struct {
	URL string
}

// RunResult is the outcome record for one processed entry. Exactly one is
// produced per ProfileEntry, in input order, and never mutated afterwards.
type RunResult struct {
	URL       string
	Status    Status
	Detail    string
	Timestamp time.Time
}

// Snapshot captures a page at the moment of failure: a screenshot plus the
// full serialized markup, for later manual inspection.
type Snapshot struct {
	PNG  []byte
	HTML string
}

// MenuScanResult is the JS evaluation result when scanning the actions menu
// for a remove-connection item.
type MenuScanResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

// ClickResult is the JS evaluation result for a locate-and-click round trip.
type ClickResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}
