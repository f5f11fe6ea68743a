package mailgun

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/fieldsend/mailmerge/internal/core"
)

// Provider implements the core.Provider interface for Mailgun.
type Provider struct {
	client mailgun.Mailgun
	config core.ProviderSettings
}

// NewProvider creates a new Mailgun provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "Mailgun API key is required")
	}

	domain := settings.Get("domain")
	if domain == "" {
		return nil, core.NewValidationError("domain", "Mailgun domain is required")
	}

	client := mailgun.NewMailgun(domain, apiKey)

	// EU customers use a different API base.
	if baseURL := settings.Get("base_url"); baseURL != "" {
		client.SetAPIBase(baseURL)
	}

	provider := &Provider{
		client: client,
		config: settings,
	}

	return provider, nil
}

// Send sends a single message using Mailgun.
func (p *Provider) Send(ctx context.Context, msg *core.Message) (*core.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	message := p.client.NewMessage(msg.From.String(), msg.Subject, msg.TextBody, msg.To.String())

	if msg.IsHTML() {
		message.SetHtml(msg.HTMLBody)
	}

	message.SetReplyTo(msg.From.Email)

	for key, value := range msg.Headers {
		message.AddHeader(key, value)
	}

	_, id, err := p.client.Send(ctx, message)
	if err != nil {
		return nil, core.NewProviderErrorWithCause("mailgun", "send_error", "failed to send email", err)
	}

	return &core.SendResult{
		MessageID: id,
		Provider:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "Mailgun API key is required")
	}
	if p.config.Get("domain") == "" {
		return core.NewValidationError("domain", "Mailgun domain is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mailgun"
}
