package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Host              string        `env:"HOST"` // default: "127.0.0.1"
	Port              int           `env:"PORT"` // default: 8080
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	Retention         time.Duration `env:"RETENTION" envDefault:"1h"`
}

// HostOrDefault returns the listen host.
func (c *ServerConfig) HostOrDefault() string {
	if c.Host == "" {
		return "127.0.0.1"
	}
	return c.Host
}

// PortOrDefault returns the listen port.
func (c *ServerConfig) PortOrDefault() int {
	if c.Port == 0 {
		return 8080
	}
	return c.Port
}

type serverEnv struct {
	Server ServerConfig `envPrefix:"CWS_SERVER_"`
}

// ParseServerConfig parses the server configuration from the environment
// variables.
func ParseServerConfig(environ []string) (*ServerConfig, error) {
	var cfg serverEnv

	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, err
	}

	return &cfg.Server, nil
}
