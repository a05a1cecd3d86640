// internal/handlers/matchsponsors/config.go
package matchsponsors

import (
	"time"

	"sponsornest/internal/common/config"
)

type Config struct {
	GenericTerms []string
	DedupeWrites bool
	Timeout      time.Duration
}

// LoadConfig derives the handler config from the application matching
// section.
func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		GenericTerms: cfg.Matching.GenericTerms,
		DedupeWrites: cfg.Matching.DedupeWrites,
		Timeout:      config.GetDuration(cfg.Matching.StoreTimeout),
	}
}
