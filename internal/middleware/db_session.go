package middleware

import (
	"database/sql"

	"travel-journal-api/internal/database"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DBSession lends one connection from the pool to each request: acquire,
// apply the driver's session statements, expose via Locals, and release when
// the downstream chain returns. The deferred close guarantees release on
// every exit path, error and panic included; errors propagate to the global
// ErrorHandler instead of abandoning the connection.
//
// Acquisition blocks when the pool is exhausted. No timeout or shedding
// policy is applied.
func DBSession(db *sql.DB, driver string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := GetRequestLogger(c)

		conn, err := db.Conn(c.Context())
		if err != nil {
			logger.Error("Failed to acquire database connection", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
		}
		defer conn.Close()

		for _, stmt := range database.SessionStatements(driver) {
			if _, err := conn.ExecContext(c.Context(), stmt); err != nil {
				logger.Error("Failed to configure session", zap.String("statement", stmt), zap.Error(err))
				return err
			}
		}

		c.Locals(DBConnKey, conn)
		return c.Next()
	}
}

// RequestConn retrieves the request-scoped database connection from
// fiber.Ctx.Locals. Returns nil when the session middleware did not run.
func RequestConn(c *fiber.Ctx) *sql.Conn {
	if conn, ok := c.Locals(DBConnKey).(*sql.Conn); ok {
		return conn
	}
	return nil
}
