package handlers

import (
	"fmt"

	mw "travel-journal-api/internal/middleware"
	"travel-journal-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles the unauthenticated user listing.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users requests: every row, no filter, no pagination.
func (h *UserHandler) List(c *fiber.Ctx) error {
	logger := mw.GetRequestLogger(c)

	users, err := h.userService.ListUsers(c.Context(), mw.RequestConn(c))
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg": fmt.Sprintf("Server Error: %v", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}
