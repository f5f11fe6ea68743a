package smtp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsend/mailmerge/internal/core"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(core.ProviderSettings{
		"host":     "smtp.example.com",
		"port":     "465",
		"username": "me@example.com",
		"password": "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp", provider.Name())
	assert.NoError(t, provider.ValidateConfig())
}

func TestNewProviderValidation(t *testing.T) {
	tests := []struct {
		name      string
		settings  core.ProviderSettings
		wantField string
	}{
		{"missing host", core.ProviderSettings{"port": "465"}, "host"},
		{"missing port", core.ProviderSettings{"host": "smtp.example.com"}, "port"},
		{"bad port", core.ProviderSettings{"host": "smtp.example.com", "port": "smtps"}, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.settings)
			require.Error(t, err)

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestBuildMessagePlainText(t *testing.T) {
	p := &Provider{config: core.ProviderSettings{"host": "smtp.example.com", "port": "465"}}
	msg := &core.Message{
		From:     core.Address{Email: "me@example.com"},
		To:       core.Address{Email: "you@example.com"},
		Subject:  "Hello",
		TextBody: "line one\nline two",
	}

	raw := string(p.buildMessage(msg))

	assert.Contains(t, raw, "From: me@example.com\r\n")
	assert.Contains(t, raw, "To: you@example.com\r\n")
	assert.Contains(t, raw, "Reply-To: me@example.com\r\n")
	assert.Contains(t, raw, "Subject: Hello\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, raw, "\r\n\r\nline one\nline two\r\n")
}

func TestBuildMessageHTML(t *testing.T) {
	p := &Provider{config: core.ProviderSettings{"host": "smtp.example.com", "port": "465"}}
	msg := &core.Message{
		From:     core.Address{Email: "me@example.com"},
		To:       core.Address{Email: "you@example.com"},
		Subject:  "Hello",
		HTMLBody: "<p>hi</p>",
	}

	raw := string(p.buildMessage(msg))
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, raw, "<p>hi</p>")
	assert.NotContains(t, raw, "text/plain")
}

func TestBuildMessageNamedSender(t *testing.T) {
	p := &Provider{config: core.ProviderSettings{"host": "smtp.example.com", "port": "465"}}
	msg := &core.Message{
		From:    core.Address{Name: "Alex", Email: "me@example.com"},
		To:      core.Address{Email: "you@example.com"},
		Subject: "Hello",
	}

	raw := string(p.buildMessage(msg))
	assert.Contains(t, raw, "From: Alex <me@example.com>\r\n")
	// Reply-To always carries the bare address.
	assert.Contains(t, raw, "Reply-To: me@example.com\r\n")
}

func TestBuildMessageCustomHeaders(t *testing.T) {
	p := &Provider{config: core.ProviderSettings{"host": "smtp.example.com", "port": "465"}}
	msg := &core.Message{
		From:    core.Address{Email: "me@example.com"},
		To:      core.Address{Email: "you@example.com"},
		Subject: "Hello",
		Headers: map[string]string{"X-Campaign": "spring-outreach"},
	}

	raw := string(p.buildMessage(msg))
	assert.Contains(t, raw, "X-Campaign: spring-outreach\r\n")
}

func TestBuildMessageHeaderBodySplit(t *testing.T) {
	p := &Provider{config: core.ProviderSettings{"host": "smtp.example.com", "port": "465"}}
	msg := &core.Message{
		From:     core.Address{Email: "me@example.com"},
		To:       core.Address{Email: "you@example.com"},
		Subject:  "Hello",
		TextBody: "body",
	}

	raw := string(p.buildMessage(msg))
	parts := strings.SplitN(raw, "\r\n\r\n", 2)
	require.Len(t, parts, 2, "headers and body must be separated by a blank line")
	assert.Equal(t, "body\r\n", parts[1])
}

func TestSendRejectsInvalidMessage(t *testing.T) {
	p := &Provider{config: core.ProviderSettings{"host": "smtp.example.com", "port": "465"}}
	msg := &core.Message{
		From:    core.Address{Email: "me@example.com"},
		Subject: "Hello",
	}

	_, err := p.Send(context.Background(), msg)
	require.Error(t, err)

	var verr *core.ValidationError
	assert.ErrorAs(t, err, &verr)
}
