package mailmerge

import (
	"context"
	"io"
	"time"
)

// Option configures a Campaign.
type Option func(*Campaign)

// WithDelay sets the pause between consecutive live delivery attempts.
// The default is one second. A zero or negative delay disables pacing.
func WithDelay(d time.Duration) Option {
	return func(c *Campaign) {
		c.delay = d
	}
}

// WithDryRun makes the campaign simulate deliveries: recipients are
// rendered and counted as sent, but the provider is never touched and
// no pacing happens.
func WithDryRun(dryRun bool) Option {
	return func(c *Campaign) {
		c.dryRun = dryRun
	}
}

// WithMaxRecipients caps how many rows of the recipient list a run
// visits. Zero or negative means no cap.
func WithMaxRecipients(n int) Option {
	return func(c *Campaign) {
		c.max = n
	}
}

// WithHTML sends the rendered body as HTML instead of plain text.
func WithHTML(html bool) Option {
	return func(c *Campaign) {
		c.html = html
	}
}

// WithOutput redirects the campaign's progress output. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Campaign) {
		c.out = w
	}
}

// WithPauseFunc replaces the function used to pace between deliveries.
// Intended for tests that need to observe or skip the waits.
func WithPauseFunc(pause func(ctx context.Context, d time.Duration)) Option {
	return func(c *Campaign) {
		if pause != nil {
			c.pause = pause
		}
	}
}
