package dbal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DBAL_DSN", "postgres://localhost/app")
	t.Setenv("DBAL_PROBE_TIMEOUT", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, AdapterSQL, cfg.Adapter)
	assert.Equal(t, "pgx", cfg.Driver)
	assert.Equal(t, "postgres://localhost/app", cfg.DSN)
	assert.Equal(t, 250*time.Millisecond, cfg.ProbeTimeout)
	assert.Len(t, cfg.Options(), 1)
}

func TestLoadConfig_MissingDSN(t *testing.T) {
	t.Setenv("DBAL_DSN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Open(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected any
		err      error
	}{
		{name: "sql", cfg: Config{Adapter: AdapterSQL, Driver: "sqlite", DSN: ":memory:"}, expected: &SQLConnection{}},
		{name: "pgx", cfg: Config{Adapter: AdapterPgx, Driver: "pgx", DSN: "postgres://localhost/app"}, expected: &PgxConnection{}},
		{name: "gorm postgres", cfg: Config{Adapter: AdapterGorm, Driver: "postgres", DSN: "host=localhost"}, expected: &GormConnection{}},
		{name: "gorm mysql", cfg: Config{Adapter: AdapterGorm, Driver: "mysql", DSN: "app@tcp(localhost:3306)/app"}, expected: &GormConnection{}},
		{name: "pgx mysql", cfg: Config{Adapter: AdapterPgx, Driver: "mysql"}, err: UnsupportedAdapterError},
		{name: "gorm sqlite", cfg: Config{Adapter: AdapterGorm, Driver: "sqlite"}, err: UnsupportedAdapterError},
		{name: "unknown adapter", cfg: Config{Adapter: "ent", Driver: "pgx"}, err: UnsupportedAdapterError},
		{name: "unknown driver", cfg: Config{Adapter: AdapterSQL, Driver: "cassandra"}, err: UnknownPlatformError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := tt.cfg.Open()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, conn)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expected, conn)
		})
	}
}

func TestConfig_OptionsWithoutTimeout(t *testing.T) {
	cfg := &Config{}
	assert.Empty(t, cfg.Options())
}
