// Package smtp implements message delivery over an implicit-TLS SMTP
// session. Every Send dials, authenticates, transmits one message and
// quits; connections are never reused across messages.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/fieldsend/mailmerge/internal/core"
)

// Provider implements the core.Provider interface for SMTP.
type Provider struct {
	config core.ProviderSettings
}

// NewProvider creates a new SMTP provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	host := settings.Get("host")
	if host == "" {
		return nil, core.NewValidationError("host", "SMTP host is required")
	}

	port := settings.Get("port")
	if port == "" {
		return nil, core.NewValidationError("port", "SMTP port is required")
	}

	if _, err := strconv.Atoi(port); err != nil {
		return nil, core.NewValidationError("port", "invalid port number: "+port)
	}

	provider := &Provider{
		config: settings,
	}

	return provider, nil
}

// Send sends a single message over a fresh TLS-wrapped SMTP session.
func (p *Provider) Send(ctx context.Context, msg *core.Message) (*core.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	host := p.config.Get("host")
	port := p.config.Get("port")
	username := p.config.Get("username")
	password := p.config.Get("password")
	addr := net.JoinHostPort(host, port)

	message := p.buildMessage(msg)

	// The relay expects TLS from the first byte (SMTPS), not STARTTLS.
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config: &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		},
	}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.NetDialer.Deadline = deadline
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "connect_error", "failed to connect to "+addr, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "connect_error", "SMTP handshake failed", err)
	}
	defer client.Close()

	if username != "" && password != "" {
		auth := smtp.PlainAuth("", username, password, host)
		if err := client.Auth(auth); err != nil {
			return nil, core.NewProviderErrorWithCause("smtp", "auth_error", "authentication failed", err)
		}
	}

	if err := client.Mail(msg.From.Email); err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "send_error", "sender rejected", err)
	}
	if err := client.Rcpt(msg.To.Email); err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "send_error", "recipient rejected", err)
	}

	wc, err := client.Data()
	if err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "send_error", "DATA command failed", err)
	}
	if _, err := wc.Write(message); err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "send_error", "failed to write message", err)
	}
	if err := wc.Close(); err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "send_error", "message rejected", err)
	}

	if err := client.Quit(); err != nil {
		return nil, core.NewProviderErrorWithCause("smtp", "send_error", "QUIT failed", err)
	}

	// SMTP doesn't hand back a message ID, so synthesize one.
	messageID := fmt.Sprintf("%d@%s", time.Now().UnixNano(), host)

	return &core.SendResult{
		MessageID: messageID,
		Provider:  p.Name(),
		Timestamp: time.Now(),
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("host") == "" {
		return core.NewValidationError("host", "SMTP host is required")
	}

	port := p.config.Get("port")
	if port == "" {
		return core.NewValidationError("port", "SMTP port is required")
	}

	if _, err := strconv.Atoi(port); err != nil {
		return core.NewValidationError("port", "invalid port number: "+port)
	}

	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "smtp"
}

// buildMessage builds the message in RFC 5322 format: single content
// part, Reply-To pinned to the sender.
func (p *Provider) buildMessage(msg *core.Message) []byte {
	var b strings.Builder

	b.WriteString("From: " + msg.From.String() + "\r\n")
	b.WriteString("To: " + msg.To.String() + "\r\n")
	b.WriteString("Reply-To: " + msg.From.Email + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	for key, value := range msg.Headers {
		b.WriteString(key + ": " + value + "\r\n")
	}

	if msg.IsHTML() {
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	}
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body())
	b.WriteString("\r\n")

	return []byte(b.String())
}
