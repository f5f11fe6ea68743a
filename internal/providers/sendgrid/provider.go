package sendgrid

import (
	"context"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/fieldsend/mailmerge/internal/core"
)

// Provider implements the core.Provider interface for SendGrid.
type Provider struct {
	client *sendgrid.Client
	config core.ProviderSettings
}

// NewProvider creates a new SendGrid provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "SendGrid API key is required")
	}

	client := sendgrid.NewSendClient(apiKey)

	provider := &Provider{
		client: client,
		config: settings,
	}

	return provider, nil
}

// Send sends a single message using SendGrid.
func (p *Provider) Send(ctx context.Context, msg *core.Message) (*core.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	from := mail.NewEmail(msg.From.Name, msg.From.Email)
	to := mail.NewEmail(msg.To.Name, msg.To.Email)

	var plain, html string
	if msg.IsHTML() {
		html = msg.HTMLBody
	} else {
		plain = msg.TextBody
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, plain, html)
	message.SetReplyTo(mail.NewEmail("", msg.From.Email))

	if len(msg.Headers) > 0 {
		if message.Headers == nil {
			message.Headers = make(map[string]string)
		}
		for key, value := range msg.Headers {
			message.Headers[key] = value
		}
	}

	response, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return nil, core.NewProviderErrorWithCause("sendgrid", "send_error", "failed to send email", err)
	}

	if response.StatusCode >= 400 {
		return nil, core.NewProviderError("sendgrid", "api_error", "SendGrid API error: "+response.Body)
	}

	// SendGrid reports the assigned ID in the X-Message-Id header.
	messageID := response.Headers["X-Message-Id"]
	if len(messageID) == 0 {
		messageID = []string{"unknown"}
	}

	return &core.SendResult{
		MessageID: messageID[0],
		Provider:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "SendGrid API key is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "sendgrid"
}
