// internal/handlers/notifyinterest/config.go
package notifyinterest

import (
	"time"

	"sponsornest/internal/common/config"
)

type Config struct {
	FromEmail   string
	MailTimeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		FromEmail:   cfg.Mail.FromEmail,
		MailTimeout: config.GetDuration(cfg.Mail.Timeout),
	}
}
