package dbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		driver      string
		name        string
		dummySelect string
	}{
		{driver: "pgx", name: "postgresql", dummySelect: "SELECT 1"},
		{driver: "Postgres", name: "postgresql", dummySelect: "SELECT 1"},
		{driver: "mysql", name: "mysql", dummySelect: "SELECT 1"},
		{driver: "sqlite", name: "sqlite", dummySelect: "SELECT 1"},
		{driver: "mssql", name: "sqlserver", dummySelect: "SELECT 1"},
		{driver: "godror", name: "oracle", dummySelect: "SELECT 1 FROM DUAL"},
		{driver: "db2", name: "db2", dummySelect: "SELECT 1 FROM sysibm.sysdummy1"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			p, err := PlatformFor(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.name, p.Name())
			assert.Equal(t, tt.dummySelect, p.DummySelectSQL())
		})
	}
}

func TestPlatformFor_Unknown(t *testing.T) {
	_, err := PlatformFor("cassandra")
	assert.ErrorIs(t, err, UnknownPlatformError)
	assert.EqualError(t, err, `dbal: unknown database platform: "cassandra"`)
}
