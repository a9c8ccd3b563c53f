package dbal

import (
	"fmt"
	"strings"
)

// Platform is a database specific SQL dialect.
type Platform interface {
	Name() string
	// DummySelectSQL returns the cheapest statement the database answers, used as a liveness probe.
	DummySelectSQL() string
}

type platform struct {
	name        string
	dummySelect string
}

func (p platform) Name() string {
	return p.name
}

func (p platform) DummySelectSQL() string {
	return p.dummySelect
}

// The platforms known to PlatformFor, each with the cheapest statement that proves a session is alive.
var (
	PostgreSQLPlatform Platform = platform{name: "postgresql", dummySelect: "SELECT 1"}
	MySQLPlatform      Platform = platform{name: "mysql", dummySelect: "SELECT 1"}
	SQLitePlatform     Platform = platform{name: "sqlite", dummySelect: "SELECT 1"}
	SQLServerPlatform  Platform = platform{name: "sqlserver", dummySelect: "SELECT 1"}
	OraclePlatform     Platform = platform{name: "oracle", dummySelect: "SELECT 1 FROM DUAL"}
	DB2Platform        Platform = platform{name: "db2", dummySelect: "SELECT 1 FROM sysibm.sysdummy1"}
)

// platforms indexes the platforms by the driver names they are registered under.
var platforms = map[string]Platform{
	"pgx":        PostgreSQLPlatform,
	"postgres":   PostgreSQLPlatform,
	"postgresql": PostgreSQLPlatform,
	"mysql":      MySQLPlatform,
	"mariadb":    MySQLPlatform,
	"sqlite":     SQLitePlatform,
	"sqlite3":    SQLitePlatform,
	"sqlserver":  SQLServerPlatform,
	"mssql":      SQLServerPlatform,
	"oracle":     OraclePlatform,
	"godror":     OraclePlatform,
	"oci8":       OraclePlatform,
	"db2":        DB2Platform,
	"go_ibm_db":  DB2Platform,
}

// PlatformFor returns the platform matching a database/sql driver name.
func PlatformFor(driver string) (Platform, error) {
	if p, ok := platforms[strings.ToLower(driver)]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", UnknownPlatformError, driver)
}
