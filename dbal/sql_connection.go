package dbal

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLConnection is a Connection backed by database/sql.
// The pgx, mysql and sqlite drivers are registered by this package.
type SQLConnection struct {
	mu       sync.Mutex
	driver   string
	dsn      string
	platform Platform
	db       *sql.DB
}

// NewSQLConnection prepares a connection for the given driver and data source name.
// It does not connect: call Connect before using it.
func NewSQLConnection(driver, dsn string) (*SQLConnection, error) {
	platform, err := PlatformFor(driver)
	if err != nil {
		return nil, err
	}
	return &SQLConnection{
		driver:   driver,
		dsn:      dsn,
		platform: platform,
	}, nil
}

// DatabasePlatform returns the platform resolved from the driver name.
func (c *SQLConnection) DatabasePlatform() (Platform, error) {
	return c.platform, nil
}

// Connect opens the database handle and verifies it with a ping.
// Connecting an already connected SQLConnection is a no-op.
func (c *SQLConnection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return nil
	}

	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return fmt.Errorf("dbal: open %s: %w", c.driver, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("dbal: ping %s: %w", c.driver, err)
	}
	c.db = db
	return nil
}

// Close closes the database handle. Closing a closed SQLConnection is a no-op.
func (c *SQLConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// ExecuteQuery runs query and drains its rows, ConnectionClosedError while disconnected.
func (c *SQLConnection) ExecuteQuery(ctx context.Context, query string) error {
	db := c.DB()
	if db == nil {
		return ConnectionClosedError
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return sqlError(err)
	}
	defer rows.Close()
	for rows.Next() {
	}
	return sqlError(rows.Err())
}

// DB returns the underlying handle, nil while disconnected.
func (c *SQLConnection) DB() *sql.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

func sqlError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, mysql.ErrInvalidConn):
		return fmt.Errorf("%w: %w", ConnectionLostError, err)
	default:
		return err
	}
}
