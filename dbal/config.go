package dbal

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Adapters selectable through Config.Adapter.
const (
	AdapterSQL  = "sql"
	AdapterPgx  = "pgx"
	AdapterGorm = "gorm"
)

// Config describes the connection guarded by a PingConnectionMiddleware.
type Config struct {
	Adapter      string        `env:"DBAL_ADAPTER" envDefault:"sql"`
	Driver       string        `env:"DBAL_DRIVER" envDefault:"pgx"`
	DSN          string        `env:"DBAL_DSN,notEmpty"`
	ProbeTimeout time.Duration `env:"DBAL_PROBE_TIMEOUT"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("dbal: parse config: %w", err)
	}
	return cfg, nil
}

// Open builds the configured, not yet connected, Connection.
func (cfg *Config) Open() (Connection, error) {
	platform, err := PlatformFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch cfg.Adapter {
	case AdapterSQL:
		conn, err := NewSQLConnection(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case AdapterPgx:
		if platform != PostgreSQLPlatform {
			return nil, fmt.Errorf("%w: %s does not support driver %q", UnsupportedAdapterError, cfg.Adapter, cfg.Driver)
		}
		return NewPgxConnection(cfg.DSN), nil
	case AdapterGorm:
		switch platform {
		case PostgreSQLPlatform:
			return NewGormConnection(platform, PostgresDialector(cfg.DSN), nil), nil
		case MySQLPlatform:
			return NewGormConnection(platform, MySQLDialector(cfg.DSN), nil), nil
		}
		return nil, fmt.Errorf("%w: %s does not support driver %q", UnsupportedAdapterError, cfg.Adapter, cfg.Driver)
	default:
		return nil, fmt.Errorf("%w: %q", UnsupportedAdapterError, cfg.Adapter)
	}
}

// Options returns the middleware options matching the configuration.
func (cfg *Config) Options() []Option {
	var opts []Option
	if cfg.ProbeTimeout > 0 {
		opts = append(opts, WithProbeTimeout(cfg.ProbeTimeout))
	}
	return opts
}
