package routes

import (
	"database/sql"
	"time"

	"travel-journal-api/internal/bootstrap"
	"travel-journal-api/internal/config"
	mw "travel-journal-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetupRoutes configures the application routes. Which routes sit behind the
// auth guard is an explicit list here, not a consequence of registration
// order: only /addEntry and /home are protected.
func SetupRoutes(
	app *fiber.App,
	cfg *config.Config,
	logger *zap.Logger,
	components *bootstrap.AppComponents,
	db *sql.DB, // pool handle for the health check
) {
	logger.Info("Setting up application routes...")

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		lg := mw.GetRequestLogger(c)
		healthStatus := fiber.Map{"status": "healthy", "timestamp": time.Now().UTC()}

		if db != nil {
			if err := db.PingContext(c.Context()); err == nil {
				healthStatus["database"] = "connected"
			} else {
				healthStatus["database"] = "disconnected"
				lg.Warn("Health check: database ping failed", zap.Error(err))
			}
		} else {
			healthStatus["database"] = "uninitialized"
		}
		return c.Status(fiber.StatusOK).JSON(healthStatus)
	})

	// --- Public Routes ---
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.SendString("<h1>Welcome to my Travel Journal!<h1>")
	})
	app.Get("/users", components.UserHandler.List)
	app.Post("/register", components.AuthHandler.Register)
	app.Post("/login", components.AuthHandler.Login)

	// --- Protected Routes ---
	guard := mw.Protected(cfg.JWTSecret)
	app.Post("/addEntry", guard, components.JournalHandler.AddEntry)
	app.Get("/home", guard, components.JournalHandler.Home)
}
