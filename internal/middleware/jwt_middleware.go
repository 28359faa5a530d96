package middleware

import (
	"strings"

	"travel-journal-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Protected returns the bearer-token guard applied to individual routes.
// Missing Authorization header answers 401, an invalid or expired token 403,
// both with empty bodies. On success the token's id and username claims are
// stored in Locals for the handler.
//
// Protection is an explicit per-route requirement: only the routes that take
// this handler are guarded, never a consequence of registration order.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logger := GetRequestLogger(c)

		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			logger.Warn("Missing Authorization header")
			return c.Status(fiber.StatusUnauthorized).Send(nil)
		}

		// A present but malformed header falls through to verification and
		// fails there, answering 403 rather than 401.
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid JWT token", zap.Error(err))
			return c.Status(fiber.StatusForbidden).Send(nil)
		}

		// Only login tokens carry an id claim. Registration tokens decode
		// with a zero id and must not pass the guard, or every holder would
		// share the id-0 bucket.
		if claims.ID <= 0 {
			logger.Warn("JWT carries no user id", zap.String("username", claims.Username))
			return c.Status(fiber.StatusForbidden).Send(nil)
		}

		c.Locals(UserIDKey, claims.ID)
		c.Locals(UsernameKey, claims.Username)
		logger.Debug("JWT validated successfully", zap.Int64("userID", claims.ID))

		return c.Next()
	}
}
