// internal/common/mail/smtp.go
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"sponsornest/internal/common/config"
	"sponsornest/internal/common/logger"
)

// SMTPMailer delivers mail over SMTP, dialing per message.
type SMTPMailer struct {
	config  config.MailConfig
	timeout time.Duration
	logger  logger.Logger
}

func NewSMTPMailer(cfg config.MailConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		config:  cfg,
		timeout: config.GetDuration(cfg.Timeout),
		logger:  log.WithFields(map[string]interface{}{"mailer": "smtp"}),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	if msg.From == "" {
		msg.From = m.config.FromEmail
	}

	message := buildMessage(msg)
	addr := fmt.Sprintf("%s:%d", m.config.SMTP.Host, m.config.SMTP.Port)

	var auth smtp.Auth
	if m.config.SMTP.Username != "" && m.config.SMTP.Password != "" {
		auth = smtp.PlainAuth("", m.config.SMTP.Username, m.config.SMTP.Password, m.config.SMTP.Host)
	}

	var err error
	if m.config.SMTP.UseTLS {
		err = m.sendWithTLS(addr, auth, msg.From, msg.To, []byte(message))
	} else {
		err = smtp.SendMail(addr, auth, msg.From, []string{msg.To}, []byte(message))
	}
	if err != nil {
		return err
	}

	m.logger.Debug("email sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

// sendWithTLS runs the full connect/starttls/auth/send/quit sequence.
func (m *SMTPMailer) sendWithTLS(addr string, auth smtp.Auth, from, to string, body []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName:         m.config.SMTP.Host,
		InsecureSkipVerify: false,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func buildMessage(msg Message) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(msg.HTMLBody)

	return builder.String()
}
