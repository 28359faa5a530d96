package bootstrap

import (
	"time"

	"travel-journal-api/internal/config"
	"travel-journal-api/internal/handlers"
	"travel-journal-api/internal/repositories"
	"travel-journal-api/internal/services"

	"go.uber.org/zap"
)

// AppComponents holds the initialized handlers and repositories.
type AppComponents struct {
	AuthHandler    *handlers.AuthHandler
	JournalHandler *handlers.JournalHandler
	UserHandler    *handlers.UserHandler
	UserRepo       repositories.UserRepository
	EntryRepo      repositories.EntryRepository
}

// InitializeAppComponents creates and wires up the application's core
// components: repositories, services, handlers.
func InitializeAppComponents(cfg *config.Config, logger *zap.Logger) *AppComponents {
	logger.Info("Initializing application components: Repositories, Services, Handlers...")

	userRepo := repositories.NewUserRepository(logger)
	entryRepo := repositories.NewEntryRepository(logger)

	jwtExpires := time.Duration(cfg.JWTExpiresHours) * time.Hour
	authService := services.NewAuthService(userRepo, logger, cfg.JWTSecret, jwtExpires)
	journalService := services.NewJournalService(entryRepo, logger)
	userService := services.NewUserService(userRepo, logger)

	components := &AppComponents{
		AuthHandler:    handlers.NewAuthHandler(authService),
		JournalHandler: handlers.NewJournalHandler(journalService),
		UserHandler:    handlers.NewUserHandler(userService),
		UserRepo:       userRepo,
		EntryRepo:      entryRepo,
	}

	logger.Info("Application components initialization complete.")
	return components
}
