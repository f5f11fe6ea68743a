package mailmerge

import (
	"fmt"

	"github.com/fieldsend/mailmerge/internal/core"
	"github.com/fieldsend/mailmerge/internal/providers/mailgun"
	"github.com/fieldsend/mailmerge/internal/providers/sendgrid"
	"github.com/fieldsend/mailmerge/internal/providers/ses"
	"github.com/fieldsend/mailmerge/internal/providers/smtp"
)

// Type aliases to re-export core types for the public API.
// This allows users to access types like mailmerge.Message instead of
// core.Message, keeping implementation details internal.
type (
	Provider         = core.Provider
	ProviderSettings = core.ProviderSettings
	Message          = core.Message
	Address          = core.Address
	SendResult       = core.SendResult
	ValidationError  = core.ValidationError
	ProviderError    = core.ProviderError
)

// Error constructor functions
var (
	NewValidationError        = core.NewValidationError
	NewProviderError          = core.NewProviderError
	NewProviderErrorWithCause = core.NewProviderErrorWithCause
	IsSendFailure             = core.IsSendFailure
)

// NewProvider creates the delivery provider the configuration selects.
// The configuration is validated first, so a missing required field
// surfaces here rather than on the first send.
func NewProvider(cfg *Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderSMTP:
		return smtp.NewProvider(cfg.Settings())
	case ProviderAWSSES:
		return ses.NewProvider(cfg.Settings())
	case ProviderSendGrid:
		return sendgrid.NewProvider(cfg.Settings())
	case ProviderMailgun:
		return mailgun.NewProvider(cfg.Settings())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
