package salve

import (
	"go.uber.org/zap"

	"github.com/caelo/caelum/util/conf"
	"github.com/caelo/caelum/util/logging"
)

// DefaultAddr is the demo server's listen address.
const DefaultAddr = ":3000"

// Config holds the demo server settings.
type Config struct {
	Addr string         `conf:"addr"`
	Log  logging.Config `conf:"log"`
}

func configDefaults() conf.DefaultConfig {
	return conf.DefaultConfig{
		"addr":       DefaultAddr,
		"log.level":  "info",
		"log.format": "production",
	}
}

// LoadConfig reads the demo configuration from salve.json, .env, and
// SALVE_-prefixed environment variables, in that order of precedence.
func LoadConfig(log *zap.Logger) (Config, error) {
	return conf.Parse[Config](conf.ParseOptions{
		Defaults:  configDefaults(),
		FileName:  "salve.json",
		EnvFile:   ".env",
		EnvPrefix: "SALVE_",
		Log:       log,
	})
}
