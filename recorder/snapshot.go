package recorder

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

// SnapshotWriter persists a screenshot + markup pair per failed profile into
// the debug directory.
type SnapshotWriter struct {
	dir string

	// now is swappable for deterministic filenames in tests.
	now func() time.Time
}

// NewSnapshotWriter ensures the debug directory exists.
func NewSnapshotWriter(dir string) (*SnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create debug dir: %w", err)
	}
	return &SnapshotWriter{dir: dir, now: time.Now}, nil
}

// Write stores the pair as <prefix>_<unix-ts>.png and .html. The prefix is
// assumed filesystem-safe already (see linkedin.ProfileSlug). A failed PNG or
// HTML write is logged and skipped — debug capture must never fail the run.
// Returns the paths actually written ("" for a skipped half).
func (w *SnapshotWriter) Write(snap models.Snapshot, prefix string) (pngPath, htmlPath string) {
	ts := w.now().Unix()
	base := fmt.Sprintf("%s_%d", prefix, ts)

	if len(snap.PNG) > 0 {
		pngPath = filepath.Join(w.dir, base+".png")
		if err := os.WriteFile(pngPath, snap.PNG, 0o644); err != nil {
			log.Printf("⚠ write debug screenshot: %v", err)
			pngPath = ""
		}
	}

	if snap.HTML != "" {
		htmlPath = filepath.Join(w.dir, base+".html")
		if err := os.WriteFile(htmlPath, []byte(snap.HTML), 0o644); err != nil {
			log.Printf("⚠ write debug markup: %v", err)
			htmlPath = ""
		}
	}

	return pngPath, htmlPath
}

// PageTitle pulls the <title> out of captured markup so failure rows can say
// what page the browser was actually looking at.
func PageTitle(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
