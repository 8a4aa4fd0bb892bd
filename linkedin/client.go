package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/AlirezaBelal/linkedin-connection-remover/models"
)

// Client drives profile-page operations on a live browser tab. The tab
// context comes from the session manager; Client itself is stateless.
type Client struct {
	navTimeout time.Duration
}

// NewClient returns a Client whose per-navigation waits are bounded by navTimeout.
func NewClient(navTimeout time.Duration) *Client {
	return &Client{navTimeout: navTimeout}
}

// Navigate opens a profile URL and waits until the page body has settled.
func (c *Client) Navigate(ctx context.Context, profileURL string) error {
	navCtx, cancel := context.WithTimeout(ctx, c.navTimeout)
	defer cancel()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(profileURL),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		chromedp.Sleep(1200*time.Millisecond),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", profileURL, err)
	}
	return nil
}

// IsLoginWall reports whether the current page is the login wall. The session
// manager probes this against the feed before the run starts.
func (c *Client) IsLoginWall(ctx context.Context) (bool, error) {
	var wall bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(loginWallJS, &wall)); err != nil {
		return false, fmt.Errorf("probe login wall: %w", err)
	}
	return wall, nil
}

// IsConnected reports whether the open profile is a 1st-degree connection.
func (c *Client) IsConnected(ctx context.Context) (bool, error) {
	var connected bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(connectionStateJS, &connected)); err != nil {
		return false, fmt.Errorf("probe connection state: %w", err)
	}
	return connected, nil
}

// OpenActionsMenu clicks the top-card "More actions" control and waits for
// the dropdown content to render.
func (c *Client) OpenActionsMenu(ctx context.Context) error {
	menuCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var res models.ClickResult
	if err := chromedp.Run(menuCtx, chromedp.Evaluate(openMenuJS, &res)); err != nil {
		return fmt.Errorf("click more-actions control: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("open actions menu: %s", res.Reason)
	}

	if err := chromedp.Run(menuCtx,
		chromedp.WaitVisible(MenuContentSelector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("wait for actions menu: %w", err)
	}
	return nil
}

// FindRemoveItem scans the open actions menu for a remove-connection item
// without clicking anything. Used by dry runs and as the pre-click check.
func (c *Client) FindRemoveItem(ctx context.Context) (bool, error) {
	var res models.MenuScanResult
	if err := chromedp.Run(ctx, chromedp.Evaluate(scanMenuJS, &res)); err != nil {
		return false, fmt.Errorf("scan actions menu: %w", err)
	}
	return res.Found, nil
}

// RemoveConnection clicks the remove-connection menu item, then the dialog's
// confirm button. Some markup variants skip the dialog entirely, so a missing
// dialog falls back to re-probing the connection state and the removal toast.
func (c *Client) RemoveConnection(ctx context.Context) error {
	actCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var clicked models.ClickResult
	if err := chromedp.Run(actCtx, chromedp.Evaluate(clickRemoveItemJS, &clicked)); err != nil {
		return fmt.Errorf("click remove item: %w", err)
	}
	if !clicked.OK {
		return fmt.Errorf("click remove item: %s", clicked.Reason)
	}

	// Give the dialog a moment to mount before looking for its buttons.
	var confirmed models.ClickResult
	if err := chromedp.Run(actCtx,
		chromedp.Sleep(600*time.Millisecond),
		chromedp.Evaluate(confirmDialogJS, &confirmed),
	); err != nil {
		return fmt.Errorf("confirm removal dialog: %w", err)
	}
	if confirmed.OK {
		// Let the click land before the caller captures or navigates away.
		_ = chromedp.Run(actCtx, chromedp.Sleep(600*time.Millisecond))
		return nil
	}

	// No dialog: removal may already have happened.
	var stillConnected bool
	if err := chromedp.Run(actCtx,
		chromedp.Sleep(600*time.Millisecond),
		chromedp.Evaluate(connectionStateJS, &stillConnected),
	); err != nil {
		return fmt.Errorf("re-probe connection state: %w", err)
	}
	if !stillConnected {
		return nil
	}

	var toast bool
	if err := chromedp.Run(actCtx, chromedp.Evaluate(removedToastJS, &toast)); err != nil {
		return fmt.Errorf("probe removal toast: %w", err)
	}
	if toast {
		return nil
	}

	return fmt.Errorf("confirm removal: %s", confirmed.Reason)
}

// Capture grabs a screenshot and the full page markup for debugging.
func (c *Client) Capture(ctx context.Context) (models.Snapshot, error) {
	capCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var snap models.Snapshot
	if err := chromedp.Run(capCtx,
		chromedp.CaptureScreenshot(&snap.PNG),
		chromedp.OuterHTML(`html`, &snap.HTML, chromedp.ByQuery),
	); err != nil {
		return snap, fmt.Errorf("capture page: %w", err)
	}
	return snap, nil
}

var slugUnsafe = regexp.MustCompile(`[^0-9A-Za-z_-]`)

// ProfileSlug derives a filesystem-safe identifier from a profile URL:
// the last path segment, sanitized and capped at 60 characters.
func ProfileSlug(profileURL string) string {
	slug := "profile"
	if u, err := url.Parse(profileURL); err == nil {
		trimmed := strings.Trim(u.Path, "/")
		if trimmed != "" {
			parts := strings.Split(trimmed, "/")
			slug = parts[len(parts)-1]
		}
	}
	slug = slugUnsafe.ReplaceAllString(slug, "_")
	if slug == "" {
		slug = "profile"
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return slug
}
