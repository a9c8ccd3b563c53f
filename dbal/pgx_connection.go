package dbal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxConnection is a Connection backed by a single native pgx connection.
type PgxConnection struct {
	mu   sync.Mutex
	dsn  string
	conn *pgx.Conn
}

// NewPgxConnection prepares a connection to the PostgreSQL server described by dsn.
// It does not connect: call Connect before using it.
func NewPgxConnection(dsn string) *PgxConnection {
	return &PgxConnection{dsn: dsn}
}

// DatabasePlatform always reports PostgreSQLPlatform.
func (c *PgxConnection) DatabasePlatform() (Platform, error) {
	return PostgreSQLPlatform, nil
}

// Connect establishes the connection. Connecting an open PgxConnection is a no-op.
func (c *PgxConnection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil && !c.conn.IsClosed() {
		return nil
	}

	conn, err := pgx.Connect(ctx, c.dsn)
	if err != nil {
		return fmt.Errorf("dbal: connect postgres: %w", err)
	}
	c.conn = conn
	return nil
}

// Close terminates the connection. Closing a closed PgxConnection is a no-op.
func (c *PgxConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close(context.Background())
	c.conn = nil
	return err
}

// ExecuteQuery runs query on the connection.
// Failures that leave the session unusable are wrapped with ConnectionLostError.
func (c *PgxConnection) ExecuteQuery(ctx context.Context, query string) error {
	conn := c.Conn()
	if conn == nil || conn.IsClosed() {
		return ConnectionClosedError
	}
	if _, err := conn.Exec(ctx, query); err != nil {
		// pgx closes the connection on any fatal socket error
		if conn.IsClosed() || IsConnectionError(err) {
			return fmt.Errorf("%w: %w", ConnectionLostError, err)
		}
		return err
	}
	return nil
}

// Conn returns the underlying connection, nil while disconnected.
func (c *PgxConnection) Conn() *pgx.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// IsConnectionError reports whether err means the PostgreSQL session is gone,
// either because the server said so or because the socket failed.
func IsConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgErr.Code == pgerrcode.AdminShutdown ||
			pgErr.Code == pgerrcode.CrashShutdown ||
			pgErr.Code == pgerrcode.CannotConnectNow
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
