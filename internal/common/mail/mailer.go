// Package mail abstracts the outbound mail transport.
package mail

import (
	"context"
	"fmt"
	"strings"

	"sponsornest/internal/common/config"
	"sponsornest/internal/common/logger"
)

// Message carries one outbound email.
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
}

// Mailer sends a single message. Implementations connect, authenticate,
// deliver and disconnect per call.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the configured transport.
func New(ctx context.Context, cfg config.MailConfig, log logger.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg, log), nil
	case "ses":
		return NewSESMailer(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

// IsValidAddress performs basic shape validation of an email address.
func IsValidAddress(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	if !strings.Contains(parts[1], ".") {
		return false
	}
	return true
}
