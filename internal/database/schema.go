package database

import (
	"context"
	"database/sql"
	"fmt"

	"travel-journal-api/internal/config"

	"go.uber.org/zap"
)

// Schema bootstrap only fills in missing tables; an externally managed schema
// remains authoritative. The intended users←entries ownership invariant is
// deliberately not declared as a foreign key, matching the documented
// contract.

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255),
		location VARCHAR(255),
		startDate VARCHAR(255),
		endDate VARCHAR(255),
		description TEXT,
		googleMapsUrl TEXT,
		imgUrl TEXT,
		deletedFlag INT NOT NULL DEFAULT 0,
		userId INT NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		location TEXT,
		startDate TEXT,
		endDate TEXT,
		description TEXT,
		googleMapsUrl TEXT,
		imgUrl TEXT,
		deletedFlag INTEGER NOT NULL DEFAULT 0,
		userId INTEGER NOT NULL
	)`,
}

// EnsureSchema creates the users and entries tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string, logger *zap.Logger) error {
	stmts := sqliteSchema
	if driver == config.DriverMySQL {
		stmts = mysqlSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("Failed to ensure schema", zap.String("driver", driver), zap.Error(err))
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	logger.Debug("Schema verified/created", zap.String("driver", driver))
	return nil
}
