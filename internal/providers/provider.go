package providers

import (
	"github.com/fieldsend/mailmerge"
	"github.com/fieldsend/mailmerge/internal/providers/mailgun"
	"github.com/fieldsend/mailmerge/internal/providers/sendgrid"
	"github.com/fieldsend/mailmerge/internal/providers/ses"
	"github.com/fieldsend/mailmerge/internal/providers/smtp"
)

// NewSMTPProvider creates a new implicit-TLS SMTP provider.
func NewSMTPProvider(settings mailmerge.ProviderSettings) (mailmerge.Provider, error) {
	return smtp.NewProvider(settings)
}

// NewSESProvider creates a new AWS SES provider.
func NewSESProvider(settings mailmerge.ProviderSettings) (mailmerge.Provider, error) {
	return ses.NewProvider(settings)
}

// NewSendGridProvider creates a new SendGrid provider.
func NewSendGridProvider(settings mailmerge.ProviderSettings) (mailmerge.Provider, error) {
	return sendgrid.NewProvider(settings)
}

// NewMailgunProvider creates a new Mailgun provider.
func NewMailgunProvider(settings mailmerge.ProviderSettings) (mailmerge.Provider, error) {
	return mailgun.NewProvider(settings)
}
