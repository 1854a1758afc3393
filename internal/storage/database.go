package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"downloads-dashboard/internal/config"

	_ "github.com/go-sql-driver/mysql"
)

type DatabaseProvider struct {
	db *sql.DB
}

// NewDatabaseProvider looks up the connection named by
// cfg.Data.Connection and opens a pool for it. The pool is opened
// lazily; an unreachable server surfaces on the first query, not here.
func NewDatabaseProvider(cfg *config.Config) (*DatabaseProvider, error) {
	conn, ok := cfg.Connections[cfg.Data.Connection]
	if !ok {
		return nil, fmt.Errorf("%w: no [connections.%s] entry", ErrNotConfigured, cfg.Data.Connection)
	}

	switch conn.Dialect {
	case "", "mysql", "mariadb":
	default:
		return nil, fmt.Errorf("%w: dialect %q is not compiled in", ErrDriverMissing, conn.Dialect)
	}

	// DSN: username:password@protocol(address)/dbname?param=value
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=false&charset=utf8mb4",
		conn.Username,
		conn.Password,
		conn.Host,
		conn.Port,
		conn.Database,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DatabaseProvider{db: db}, nil
}

func (p *DatabaseProvider) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return nil
}

func (p *DatabaseProvider) Close() {
	if p.db != nil {
		p.db.Close()
	}
}
