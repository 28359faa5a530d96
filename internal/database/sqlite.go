package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"travel-journal-api/internal/config"

	_ "github.com/mattn/go-sqlite3" // SQLite Driver
	"go.uber.org/zap"
)

// InitSQLite opens the SQLite journal database, creating the directory path
// if needed. Used for local development and the test suite, which runs the
// full HTTP stack against an in-memory database.
func InitSQLite(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	logger.Info("Initializing SQLite database...", zap.String("requested_path", cfg.SQLiteDBPath))

	if !strings.HasPrefix(cfg.SQLiteDBPath, "file:") {
		dbDir := filepath.Dir(cfg.SQLiteDBPath)
		if dbDir != "." && dbDir != "/" {
			if _, err := os.Stat(dbDir); os.IsNotExist(err) {
				logger.Info("SQLite database directory does not exist, creating...", zap.String("path", dbDir))
				if err := os.MkdirAll(dbDir, 0755); err != nil {
					logger.Error("Failed to create SQLite database directory", zap.String("path", dbDir), zap.Error(err))
					return nil, fmt.Errorf("failed to create sqlite db directory %s: %w", dbDir, err)
				}
			} else if err != nil {
				logger.Error("Failed to check status of SQLite database directory", zap.String("path", dbDir), zap.Error(err))
				return nil, fmt.Errorf("failed to check status of sqlite db directory %s: %w", dbDir, err)
			}
		}
	}

	dsn := cfg.SQLiteDBPath
	if strings.Contains(dsn, "?") {
		dsn += "&_busy_timeout=5000"
	} else {
		dsn += "?_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		logger.Error("Failed to open SQLite database", zap.String("path", cfg.SQLiteDBPath), zap.Error(err))
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", cfg.SQLiteDBPath, err)
	}

	// A single connection keeps in-memory databases coherent and serializes
	// writers; request-scoped acquisition queues on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		logger.Error("Failed to ping SQLite database after open", zap.Error(err))
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	logger.Info("SQLite database initialized successfully", zap.String("path", cfg.SQLiteDBPath))
	return db, nil
}
