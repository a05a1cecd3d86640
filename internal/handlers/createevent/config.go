// internal/handlers/createevent/config.go
package createevent

import (
	"time"

	"sponsornest/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(cfg.Matching.StoreTimeout),
	}
}
