package pesten

import (
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds the process configuration for the web server
type Config struct {
	Addr    string        `env:"PESTEN_ADDR,default=:8000"`
	AIDelay time.Duration `env:"PESTEN_AI_DELAY,default=500ms"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (Config, error) {
	var c Config
	if err := envdecode.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
