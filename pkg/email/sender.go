// Package email builds and delivers the contact form messages.
package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"portfolio-backend/config"

	"go.uber.org/zap"
)

// Message is one outbound email. From, To and ReplyTo are RFC 5322
// addresses, optionally with a display name.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a single message. Implementations hold no per-request
// state and are safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the transport named by cfg.MailProvider.
func NewSender(cfg *config.Config, log *zap.Logger) (Sender, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		return NewSMTPSender(cfg, log), nil
	case config.MailProviderResend:
		return NewResendSender(cfg.ResendAPIKey), nil
	case config.MailProviderLog:
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}

// Address formats a display name and mailbox as a header value.
func Address(name, addr string) string {
	a := mail.Address{Name: sanitizeHeader(name), Address: sanitizeHeader(addr)}
	return a.String()
}

// sanitizeHeader drops line breaks so user input can't add headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(v)
}

func bareAddress(v string) (string, error) {
	a, err := mail.ParseAddress(v)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", v, err)
	}
	return a.Address, nil
}
