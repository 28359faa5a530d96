package handlers

import (
	"errors"

	mw "travel-journal-api/internal/middleware"
	"travel-journal-api/internal/pkg/validation"
	"travel-journal-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login requests.
//
// The response shapes below reproduce the documented contract, quirks
// included: /register answers HTTP 200 with success:false on failure, and
// /login answers HTTP 200 with a plain-text body on a credential mismatch.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest defines the expected JSON body for register and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /register requests
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	logger := mw.GetRequestLogger(c)

	var req CredentialsRequest
	if !validation.ParseAndValidate(c, &req) {
		logger.Warn("Register request validation failed or bad request body")
		return nil // Response already sent by ParseAndValidate
	}

	token, err := h.authService.Register(c.Context(), mw.RequestConn(c), req.Username, req.Password)
	if err != nil {
		logger.Error("Registration failed", zap.String("username", req.Username), zap.Error(err))
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
			"data":    nil,
		})
	}

	logger.Info("Registration successful", zap.String("username", req.Username))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User successfully registered",
		"data": fiber.Map{
			"username": req.Username,
			"password": req.Password,
		},
		"jwt": token,
	})
}

// Login handles POST /login requests
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	logger := mw.GetRequestLogger(c)

	var req CredentialsRequest
	if !validation.ParseAndValidate(c, &req) {
		logger.Warn("Login request validation failed or bad request body")
		return nil
	}

	token, err := h.authService.Login(c.Context(), mw.RequestConn(c), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Warn("Login failed", zap.String("username", req.Username))
			return c.Status(fiber.StatusOK).SendString("Username or password incorrect")
		}
		logger.Error("Internal server error during login", zap.String("username", req.Username), zap.Error(err))
		return err // handled by the global ErrorHandler
	}

	logger.Info("Login successful", zap.String("username", req.Username))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"jwt":     token,
		"success": true,
	})
}
