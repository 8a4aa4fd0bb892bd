package session

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/AlirezaBelal/linkedin-connection-remover/config"
	"github.com/AlirezaBelal/linkedin-connection-remover/linkedin"
)

// markerFile records that the dedicated profile completed a login once.
const markerFile = "profile_initialized.txt"

// ConfirmFunc blocks until the operator confirms manual login. Swappable so
// tests and unattended runs can stub it out.
type ConfirmFunc func() error

// StdinConfirm waits for ENTER on stdin.
func StdinConfirm() error {
	log.Printf("Log in to LinkedIn in the Chrome window, then press ENTER here.")
	reader := bufio.NewReader(os.Stdin)
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("read login confirmation: %w", err)
	}
	return nil
}

// Session owns the single live browser: one Chrome process bound to the
// dedicated user-data dir, one tab. Exactly one per run.
type Session struct {
	Ctx context.Context

	userDataDir string
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// newAllocator builds the Chrome exec allocator the run owns. The dedicated
// user-data dir keeps login cookies across runs and away from the operator's
// everyday profile.
func newAllocator(parent context.Context, cfg config.Config) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.UserDataDir(cfg.UserDataDir),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1440, 900),
	)
	return chromedp.NewExecAllocator(parent, opts...)
}

// Open launches Chrome on the persistent profile, verifies the session is
// authenticated (blocking on confirm for a manual login if it is not) and
// returns the live session. Any failure here is fatal to the run.
func Open(parent context.Context, cfg config.Config, client *linkedin.Client, confirm ConfirmFunc) (*Session, error) {
	if err := os.MkdirAll(cfg.UserDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create user-data dir: %w", err)
	}

	allocCtx, cancelAlloc := newAllocator(parent, cfg)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			log.Printf("[chrome] "+format, args...)
		}),
	)

	s := &Session{
		Ctx:         tabCtx,
		userDataDir: cfg.UserDataDir,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	if err := s.ensureLoggedIn(cfg, client, confirm); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// ensureLoggedIn loads the feed and checks for the login wall. On a wall it
// hands control to the operator once, then re-checks.
func (s *Session) ensureLoggedIn(cfg config.Config, client *linkedin.Client, confirm ConfirmFunc) error {
	if err := s.loadFeed(cfg); err != nil {
		return err
	}

	wall, err := client.IsLoginWall(s.Ctx)
	if err != nil {
		return err
	}
	if wall {
		if err := confirm(); err != nil {
			return err
		}
		if err := s.loadFeed(cfg); err != nil {
			return err
		}
		wall, err = client.IsLoginWall(s.Ctx)
		if err != nil {
			return err
		}
		if wall {
			return fmt.Errorf("still on the login wall after manual login")
		}
	}

	s.writeMarker()
	return nil
}

func (s *Session) loadFeed(cfg config.Config) error {
	navCtx, cancel := context.WithTimeout(s.Ctx, cfg.NavTimeout)
	defer cancel()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(cfg.FeedURL),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return fmt.Errorf("load feed %s: %w", cfg.FeedURL, err)
	}
	return nil
}

// writeMarker is best effort; the marker only speeds up a human reading the
// profile dir, nothing consults it programmatically.
func (s *Session) writeMarker() {
	marker := filepath.Join(s.userDataDir, markerFile)
	content := fmt.Sprintf("initialized_at=%d\n", time.Now().Unix())
	if err := os.WriteFile(marker, []byte(content), 0o644); err != nil {
		log.Printf("⚠ write profile marker: %v", err)
	}
}

// Close releases the tab and the Chrome process. Safe to call more than once.
func (s *Session) Close() {
	if s.cancelTab != nil {
		s.cancelTab()
		s.cancelTab = nil
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
		s.cancelAlloc = nil
	}
}
