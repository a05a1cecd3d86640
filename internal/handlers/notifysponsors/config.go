// internal/handlers/notifysponsors/config.go
package notifysponsors

import (
	"time"

	"sponsornest/internal/common/config"
)

type Config struct {
	FromEmail   string
	Concurrency int
	MailTimeout time.Duration
}

// LoadConfig derives the handler config from the application mail and
// matching sections.
func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		FromEmail:   cfg.Mail.FromEmail,
		Concurrency: cfg.Matching.FanoutConcurrency,
		MailTimeout: config.GetDuration(cfg.Mail.Timeout),
	}
}
