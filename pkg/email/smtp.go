package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"portfolio-backend/config"

	"go.uber.org/zap"
)

// ErrAuthUnavailable is returned when credentials are configured but the
// server does not advertise AUTH.
var ErrAuthUnavailable = errors.New("smtp server does not offer AUTH")

// SMTPSender relays messages through an authenticated SMTP server.
// With secure set it speaks implicit TLS (usually port 465), otherwise it
// upgrades with STARTTLS when the server offers it.
type SMTPSender struct {
	host     string
	port     int
	secure   bool
	username string
	password string
	log      *zap.Logger
}

func NewSMTPSender(cfg *config.Config, log *zap.Logger) *SMTPSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		secure:   cfg.SMTPSecure,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		log:      log,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	from, err := bareAddress(msg.From)
	if err != nil {
		return err
	}
	to, err := bareAddress(msg.To)
	if err != nil {
		return err
	}

	raw, err := BuildMIME(msg, time.Now())
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	if !s.secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
				return fmt.Errorf("starttls failed: %w", err)
			}
		}
	}

	if s.username != "" {
		if ok, _ := client.Extension("AUTH"); !ok {
			return fmt.Errorf("%w: %s", ErrAuthUnavailable, s.host)
		}
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	// The message is already queued at this point.
	if err := client.Quit(); err != nil {
		s.log.Warn("smtp QUIT failed after message was accepted",
			zap.String("host", s.host),
			zap.Error(err),
		)
	}
	return nil
}

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	if s.secure {
		d := &tls.Dialer{Config: &tls.Config{ServerName: s.host}}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// BuildMIME renders msg as a multipart/alternative message with a plain
// text part followed by the HTML part.
func BuildMIME(msg Message, now time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	writeHeader := func(key, value string) {
		fmt.Fprintf(&out, "%s: %s\r\n", key, value)
	}
	writeHeader("From", sanitizeHeader(msg.From))
	writeHeader("To", sanitizeHeader(msg.To))
	if msg.ReplyTo != "" {
		writeHeader("Reply-To", sanitizeHeader(msg.ReplyTo))
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", sanitizeHeader(msg.Subject)))
	writeHeader("Date", now.Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	out.WriteString("\r\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}
