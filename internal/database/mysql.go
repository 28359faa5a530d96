package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"travel-journal-api/internal/config"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// InitMySQL initializes the MySQL connection pool.
// It returns the pool handle immediately and relies on database/sql
// for lazy connection establishment and reconnection.
func InitMySQL(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	logger.Info("Initializing MySQL connection pool...",
		zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))

	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.DBUser
	mysqlCfg.Passwd = cfg.DBPassword
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = cfg.DBHost
	mysqlCfg.DBName = cfg.DBName

	db, err := sql.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		logger.Error("Failed to open MySQL connection pool", zap.Error(err))
		return nil, fmt.Errorf("failed to configure mysql connection pool: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute)
	db.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeMinutes) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		// Log a warning but return the handle anyway, allowing lazy connection.
		logger.Warn("Initial MySQL ping failed, pool created but connection may establish later", zap.Error(err))
		return db, nil
	}

	logger.Info("MySQL pool initialized and initial ping successful.")
	return db, nil
}
