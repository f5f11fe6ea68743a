package mailmerge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome classifies what happened to a single recipient record.
// Every visited record ends in exactly one outcome; there is no retry
// edge and no transition back.
type Outcome int

const (
	// OutcomeSent means the message was delivered (or would have been,
	// in a dry run).
	OutcomeSent Outcome = iota

	// OutcomeFailed means the delivery attempt raised an error.
	OutcomeFailed

	// OutcomeSkipped means the record had no usable email address and
	// no delivery was attempted.
	OutcomeSkipped
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// RecipientResult records the outcome for one recipient row.
type RecipientResult struct {
	// Index is the row's position in the source list.
	Index int

	// Email is the trimmed recipient address ("" for skipped rows).
	Email string

	// Company is the display name used in progress output.
	Company string

	// Outcome is the row's final classification.
	Outcome Outcome

	// Err is the delivery error for failed rows.
	Err error
}

// Summary is the accounting for one campaign run. Invariant:
// Sent + Failed + Skipped == Processed, and Processed is the row count
// bounded by the recipient cap. Rows past the cap are never visited and
// appear in no counter.
type Summary struct {
	// Total is the number of rows in the source list.
	Total int

	// Processed is the number of rows visited.
	Processed int

	Sent    int
	Failed  int
	Skipped int

	// Results holds the per-row outcomes in source order.
	Results []RecipientResult
}

// String returns the human-readable run summary.
func (s *Summary) String() string {
	var b strings.Builder
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Total recipients: %d\n", s.Total)
	fmt.Fprintf(&b, "  Processed:        %d\n", s.Processed)
	fmt.Fprintf(&b, "  Emails sent:      %d\n", s.Sent)
	fmt.Fprintf(&b, "  Failed:           %d\n", s.Failed)
	fmt.Fprintf(&b, "  Skipped:          %d", s.Skipped)
	return b.String()
}

// Campaign drives the send loop over a recipient list: render the
// template per record, deliver (or simulate), pace between deliveries,
// and account for every visited row. A Campaign owns no shared state;
// each Run returns its accounting as a value.
type Campaign struct {
	provider Provider
	from     Address
	delay    time.Duration
	dryRun   bool
	max      int
	html     bool
	out      io.Writer
	pause    func(ctx context.Context, d time.Duration)
	tracer   trace.Tracer
}

// NewCampaign creates a campaign around a delivery provider and sender
// address. The provider may be nil when every run will be a dry run.
func NewCampaign(provider Provider, from Address, opts ...Option) *Campaign {
	c := &Campaign{
		provider: provider,
		from:     from,
		delay:    time.Second,
		out:      os.Stdout,
		tracer:   otel.Tracer("github.com/fieldsend/mailmerge"),
	}
	c.pause = c.wait

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run executes the campaign over the recipient list, strictly
// sequentially and in source order. One recipient's failure never
// prevents the remaining recipients from being attempted.
func (c *Campaign) Run(ctx context.Context, recipients []Record, tmpl *Template) (*Summary, error) {
	ctx, span := c.tracer.Start(ctx, "mailmerge.Campaign.Run")
	defer span.End()

	providerName := "none"
	if c.provider != nil {
		providerName = c.provider.Name()
	}
	span.SetAttributes(
		attribute.Int("campaign.recipients", len(recipients)),
		attribute.String("campaign.provider", providerName),
		attribute.Bool("campaign.dry_run", c.dryRun),
	)

	if !c.dryRun && c.provider == nil {
		err := NewValidationError("provider", "a delivery provider is required outside dry-run mode")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	summary := &Summary{Total: len(recipients)}

	limit := len(recipients)
	if c.max > 0 && c.max < limit {
		limit = c.max
	}

	if c.dryRun {
		fmt.Fprintln(c.out, "TEST MODE - emails will not be sent")
	}

	for i, rec := range recipients {
		if i >= limit {
			// Rows past the cap are not visited at all.
			break
		}
		summary.Processed++

		email := strings.TrimSpace(rec.Get("Email"))
		company := rec.Get("Company Name")
		if company == "" {
			company = "Unknown"
		}

		if email == "" {
			summary.Skipped++
			summary.Results = append(summary.Results, RecipientResult{
				Index:   i,
				Company: company,
				Outcome: OutcomeSkipped,
			})
			fmt.Fprintf(c.out, "skipping %s: no email address\n", company)
			continue
		}

		subject := Render(tmpl.Subject, rec)
		body := Render(tmpl.Body, rec)

		if c.dryRun {
			summary.Sent++
			summary.Results = append(summary.Results, RecipientResult{
				Index:   i,
				Email:   email,
				Company: company,
				Outcome: OutcomeSent,
			})
			fmt.Fprintf(c.out, "would send to %s\n  company: %s\n  subject: %s\n", email, company, subject)
			continue
		}

		fmt.Fprintf(c.out, "sending %d/%d to %s... ", i+1, limit, email)
		err := c.send(ctx, i, email, subject, body)
		if err != nil {
			summary.Failed++
			summary.Results = append(summary.Results, RecipientResult{
				Index:   i,
				Email:   email,
				Company: company,
				Outcome: OutcomeFailed,
				Err:     err,
			})
			fmt.Fprintf(c.out, "failed: %v\n", err)
		} else {
			summary.Sent++
			summary.Results = append(summary.Results, RecipientResult{
				Index:   i,
				Email:   email,
				Company: company,
				Outcome: OutcomeSent,
			})
			fmt.Fprintln(c.out, "sent")
		}

		// Pace between live attempts; never after the last eligible row.
		if i < limit-1 {
			c.pause(ctx, c.delay)
		}
	}

	span.SetAttributes(
		attribute.Int("campaign.sent", summary.Sent),
		attribute.Int("campaign.failed", summary.Failed),
		attribute.Int("campaign.skipped", summary.Skipped),
	)
	span.SetStatus(codes.Ok, "campaign completed")

	return summary, nil
}

// send delivers one rendered message through the provider.
func (c *Campaign) send(ctx context.Context, index int, email, subject, body string) error {
	ctx, span := c.tracer.Start(ctx, "mailmerge.Campaign.send",
		trace.WithAttributes(
			attribute.Int("campaign.index", index),
			attribute.String("campaign.to", email),
		),
	)
	defer span.End()

	msg := &Message{
		From:    c.from,
		To:      Address{Email: email},
		Subject: subject,
	}
	if c.html {
		msg.HTMLBody = body
	} else {
		msg.TextBody = body
	}

	result, err := c.provider.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return err
	}

	span.SetAttributes(attribute.String("campaign.message_id", result.MessageID))
	span.SetStatus(codes.Ok, "message sent")
	return nil
}

// wait blocks for d or until the context ends.
func (c *Campaign) wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
