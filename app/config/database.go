package config

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"aparecida-web/app/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// InitDB opens and pings the configured database.
func InitDB(cfg DatabaseConfig) (*sql.DB, error) {
	log := logger.Named("config")

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	log.Info("Testing database connection...", zap.String("driver", cfg.Driver))
	if err := db.Ping(); err != nil {
		db.Close()
		if cfg.Driver == DriverPostgres {
			log.Warn("PostgreSQL is unreachable; set APARECIDA_DATABASE_DRIVER=sqlite to run locally")
		}
		return nil, fmt.Errorf("cannot establish database connection: %w", err)
	}

	log.Info("Database connected successfully", zap.String("driver", cfg.Driver))
	return db, nil
}
