package dbal

import (
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLOptions describes a MySQL server to connect to over TCP.
type MySQLOptions struct {
	User     string
	Password string
	Addr     string
	DBName   string
	Timeout  time.Duration
	Params   map[string]string
}

// MySQLDSN formats the options into a go-sql-driver/mysql data source name.
// Times are parsed into time.Time and interpolated client side.
func MySQLDSN(opts MySQLOptions) string {
	cfg := mysql.NewConfig()
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.Net = "tcp"
	cfg.Addr = opts.Addr
	cfg.DBName = opts.DBName
	cfg.Timeout = opts.Timeout
	cfg.ParseTime = true
	cfg.InterpolateParams = true
	cfg.Params = opts.Params
	return cfg.FormatDSN()
}
