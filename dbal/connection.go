package dbal

import "context"

// Connection is the database client the PingConnectionMiddleware orchestrates.
// The middleware never owns the connection, it only probes, closes and reopens it.
type Connection interface {
	// DatabasePlatform returns the SQL dialect of the connection.
	DatabasePlatform() (Platform, error)
	// ExecuteQuery runs the query and discards its result.
	ExecuteQuery(ctx context.Context, query string) error
	Close() error
	Connect(ctx context.Context) error
}
