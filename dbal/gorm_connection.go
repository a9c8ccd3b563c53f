package dbal

import (
	"context"
	"fmt"
	"sync"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DialectorFunc builds a fresh gorm dialector for every (re)connection.
type DialectorFunc func() gorm.Dialector

// PostgresDialector opens PostgreSQL through gorm's pgx based driver.
func PostgresDialector(dsn string) DialectorFunc {
	return func() gorm.Dialector {
		return postgres.Open(dsn)
	}
}

// MySQLDialector opens MySQL through gorm's go-sql-driver based driver.
func MySQLDialector(dsn string) DialectorFunc {
	return func() gorm.Dialector {
		return gormmysql.Open(dsn)
	}
}

// GormConnection is a Connection backed by a *gorm.DB.
type GormConnection struct {
	mu        sync.Mutex
	platform  Platform
	dialector DialectorFunc
	config    gorm.Config
	db        *gorm.DB
}

// NewGormConnection prepares a gorm connection. A nil config uses gorm's defaults.
// The config is copied, every Connect opens gorm with a fresh copy of it.
// It does not connect: call Connect before using it.
func NewGormConnection(platform Platform, dialector DialectorFunc, config *gorm.Config) *GormConnection {
	conn := &GormConnection{
		platform:  platform,
		dialector: dialector,
	}
	if config != nil {
		conn.config = *config
	}
	// Connect pings with its own context.
	conn.config.DisableAutomaticPing = true
	return conn
}

// DatabasePlatform returns the platform the connection was created with.
func (c *GormConnection) DatabasePlatform() (Platform, error) {
	return c.platform, nil
}

// Connect opens the gorm handle and pings it. Connecting a connected GormConnection is a no-op.
func (c *GormConnection) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return nil
	}

	config := c.config
	db, err := gorm.Open(c.dialector(), &config)
	if err != nil {
		closeGorm(db)
		return fmt.Errorf("dbal: gorm open %s: %w", c.platform.Name(), err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		closeGorm(db)
		return fmt.Errorf("dbal: gorm handle %s: %w", c.platform.Name(), err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("dbal: ping %s: %w", c.platform.Name(), err)
	}
	c.db = db
	return nil
}

// closeGorm releases whatever pool gorm opened before failing. db may be nil.
func closeGorm(db *gorm.DB) {
	if db == nil || db.Config == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Close closes the pool behind the gorm handle. Closing a closed GormConnection is a no-op.
func (c *GormConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	c.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ExecuteQuery runs the raw query through gorm, ConnectionClosedError while disconnected.
func (c *GormConnection) ExecuteQuery(ctx context.Context, query string) error {
	db := c.DB()
	if db == nil {
		return ConnectionClosedError
	}
	return sqlError(db.WithContext(ctx).Exec(query).Error)
}

// DB returns the gorm handle, nil while disconnected.
func (c *GormConnection) DB() *gorm.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}
