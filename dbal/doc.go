// Package dbal keeps database connections used by command handlers alive.
//
// The PingConnectionMiddleware plugs into the command bus and, before every command,
// issues the dummy select of the connection's platform. When the probe fails the
// connection is closed and reopened before the command proceeds.
//
// Connections are abstracted by the Connection interface. Adapters are provided for
// database/sql (pgx, mysql and sqlite drivers), native pgx connections and gorm.
package dbal
