package database

import (
	"database/sql"
	"fmt"

	"travel-journal-api/internal/config"

	"go.uber.org/zap"
)

// Open initializes the journal database pool for the configured driver.
// The handle is injected into the rest of the application; there is no
// package-level pool.
func Open(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return InitMySQL(cfg, logger)
	case config.DriverSQLite:
		return InitSQLite(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// SessionStatements returns the statements applied to every request-scoped
// connection before it is handed to the handler chain. The strict SQL mode
// and fixed session time zone mirror the documented per-request session
// setup; neither applies to SQLite.
func SessionStatements(driver string) []string {
	if driver == config.DriverMySQL {
		return []string{
			`SET SESSION sql_mode = 'TRADITIONAL'`,
			`SET time_zone = '-8:00'`,
		}
	}
	return nil
}
