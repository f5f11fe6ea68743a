package mailmerge

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fieldsend/mailmerge/internal/core"
)

const secretToken = "<secret>"

// Secret is a string that is hidden when marshaled back to JSON and
// when printed. It is used for passwords and API keys so a dumped
// configuration never leaks credentials.
type Secret string

// MarshalJSON implements json.Marshaler. It always outputs "<secret>"
// for a non-empty value.
func (s Secret) MarshalJSON() ([]byte, error) {
	if s == "" {
		return json.Marshal("")
	}
	return json.Marshal(secretToken)
}

// UnmarshalJSON implements json.Unmarshaler. It sets the value unless
// the raw string equals "<secret>".
func (s *Secret) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == secretToken {
		return nil
	}
	*s = Secret(raw)
	return nil
}

// String implements fmt.Stringer, redacting the value.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return secretToken
}

// ProviderType represents the type of email provider.
type ProviderType string

const (
	// ProviderSMTP represents a generic SMTP relay over implicit TLS.
	ProviderSMTP ProviderType = "smtp"

	// ProviderAWSSES represents Amazon Simple Email Service.
	ProviderAWSSES ProviderType = "aws_ses"

	// ProviderSendGrid represents the SendGrid email service.
	ProviderSendGrid ProviderType = "sendgrid"

	// ProviderMailgun represents the Mailgun email service.
	ProviderMailgun ProviderType = "mailgun"
)

// String returns the string representation of the provider type.
func (pt ProviderType) String() string {
	return string(pt)
}

// Valid checks if the provider type is supported.
func (pt ProviderType) Valid() bool {
	switch pt {
	case ProviderSMTP, ProviderAWSSES, ProviderSendGrid, ProviderMailgun:
		return true
	default:
		return false
	}
}

// Config holds the campaign's delivery configuration, loaded from a
// JSON file. The smtp_* and sender_* fields mirror the flat layout
// existing config.json files use; the provider-specific fields are only
// consulted for the provider the "provider" field selects.
type Config struct {
	// Provider selects the delivery provider. Defaults to "smtp".
	Provider ProviderType `json:"provider,omitempty"`

	SMTPServer     string `json:"smtp_server"`
	SMTPPort       int    `json:"smtp_port"`
	SenderEmail    string `json:"sender_email"`
	SenderPassword Secret `json:"sender_password"`

	// SenderName is read for compatibility with existing configuration
	// files. It is not folded into the From header; messages go out
	// with the bare sender address.
	SenderName string `json:"sender_name"`

	AWSRegion    string `json:"aws_region,omitempty"`
	AWSAccessKey string `json:"aws_access_key,omitempty"`
	AWSSecretKey Secret `json:"aws_secret_key,omitempty"`

	SendGridAPIKey Secret `json:"sendgrid_api_key,omitempty"`

	MailgunAPIKey  Secret `json:"mailgun_api_key,omitempty"`
	MailgunDomain  string `json:"mailgun_domain,omitempty"`
	MailgunBaseURL string `json:"mailgun_base_url,omitempty"`
}

// LoadConfig reads the configuration file at path and applies defaults
// and environment overrides. A .env file in the working directory is
// honored when present. The returned error wraps fs.ErrNotExist when
// the file is missing.
func LoadConfig(path string) (*Config, error) {
	// Optional; secrets can live in the environment instead of the file.
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("configuration file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("configuration file %s: %w", path, err)
	}

	if cfg.Provider == "" {
		cfg.Provider = ProviderSMTP
	}
	if cfg.SenderName == "" {
		cfg.SenderName = "Your Name"
	}

	if v := os.Getenv("SENDER_PASSWORD"); v != "" {
		cfg.SenderPassword = Secret(v)
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.SendGridAPIKey = Secret(v)
	}
	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		cfg.MailgunAPIKey = Secret(v)
	}

	return &cfg, nil
}

// Validate checks that every field the selected provider needs is
// present.
func (c *Config) Validate() error {
	if !c.Provider.Valid() {
		return core.NewValidationError("provider", "invalid or unsupported provider type: "+string(c.Provider))
	}

	if c.SenderEmail == "" {
		return core.NewValidationError("sender_email", "sender email is required")
	}

	switch c.Provider {
	case ProviderSMTP:
		if c.SMTPServer == "" {
			return core.NewValidationError("smtp_server", "SMTP server is required")
		}
		if c.SMTPPort <= 0 {
			return core.NewValidationError("smtp_port", "SMTP port is required")
		}
		if c.SenderPassword == "" {
			return core.NewValidationError("sender_password", "sender password is required")
		}
	case ProviderAWSSES:
		if c.AWSRegion == "" {
			return core.NewValidationError("aws_region", "AWS region is required")
		}
	case ProviderSendGrid:
		if c.SendGridAPIKey == "" {
			return core.NewValidationError("sendgrid_api_key", "SendGrid API key is required")
		}
	case ProviderMailgun:
		if c.MailgunAPIKey == "" {
			return core.NewValidationError("mailgun_api_key", "Mailgun API key is required")
		}
		if c.MailgunDomain == "" {
			return core.NewValidationError("mailgun_domain", "Mailgun domain is required")
		}
	}

	return nil
}

// From returns the sender address used on every outgoing message.
// SenderName is deliberately left off; the relay the original campaigns
// ran through requires the simple address form.
func (c *Config) From() Address {
	return Address{Email: c.SenderEmail}
}

// Settings returns the provider settings for the selected provider.
func (c *Config) Settings() ProviderSettings {
	switch c.Provider {
	case ProviderSMTP:
		return ProviderSettings{
			"host":     c.SMTPServer,
			"port":     strconv.Itoa(c.SMTPPort),
			"username": c.SenderEmail,
			"password": string(c.SenderPassword),
		}
	case ProviderAWSSES:
		settings := ProviderSettings{"region": c.AWSRegion}
		if c.AWSAccessKey != "" {
			settings.Set("access_key", c.AWSAccessKey)
			settings.Set("secret_key", string(c.AWSSecretKey))
		}
		return settings
	case ProviderSendGrid:
		return ProviderSettings{"api_key": string(c.SendGridAPIKey)}
	case ProviderMailgun:
		settings := ProviderSettings{
			"api_key": string(c.MailgunAPIKey),
			"domain":  c.MailgunDomain,
		}
		if c.MailgunBaseURL != "" {
			settings.Set("base_url", c.MailgunBaseURL)
		}
		return settings
	}
	return ProviderSettings{}
}
