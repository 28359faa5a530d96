package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-journal-api/internal/repositories"
	"travel-journal-api/internal/utils"

	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials marks the login outcome that the handler renders
	// as the documented plain-text "Username or password incorrect" body.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService defines the interface for authentication related operations
type AuthService interface {
	// Register persists the credentials verbatim and returns the signed
	// registration token embedding the new user id and the request body.
	Register(ctx context.Context, db repositories.DBTX, username, password string) (string, error)
	// Login performs the exact-equality credential lookup and returns a JWT
	// for the matched row, or ErrInvalidCredentials.
	Login(ctx context.Context, db repositories.DBTX, username, password string) (string, error)
}

type authServiceImpl struct {
	userRepo   repositories.UserRepository
	logger     *zap.Logger
	jwtSecret  string
	jwtExpires time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, logger *zap.Logger, jwtSecret string, jwtExpires time.Duration) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		logger:     logger,
		jwtSecret:  jwtSecret,
		jwtExpires: jwtExpires,
	}
}

// Register handles new user registration. No hashing and no uniqueness check
// are performed; the stored row is exactly what the client sent.
func (s *authServiceImpl) Register(ctx context.Context, db repositories.DBTX, username, password string) (string, error) {
	s.logger.Info("Attempting to register user", zap.String("username", username))

	newID, err := s.userRepo.CreateUser(ctx, db, username, password)
	if err != nil {
		s.logger.Error("Failed to create user in database", zap.String("username", username), zap.Error(err))
		return "", err
	}

	// The original derived the userId claim from a property access on the
	// username string, leaving it permanently absent. Fixed here to the
	// insert's generated id; see DESIGN.md.
	token, err := utils.GenerateRegistrationToken(newID, username, password, s.jwtSecret, s.jwtExpires)
	if err != nil {
		s.logger.Error("Failed to sign registration token", zap.String("username", username), zap.Int64("userID", newID), zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User registered successfully", zap.String("username", username), zap.Int64("userID", newID))
	return token, nil
}

// Login handles user login and JWT generation
func (s *authServiceImpl) Login(ctx context.Context, db repositories.DBTX, username, password string) (string, error) {
	s.logger.Info("Attempting to login user", zap.String("username", username))

	user, err := s.userRepo.FindByCredentials(ctx, db, username, password)
	if err != nil {
		s.logger.Error("Error finding user during login", zap.String("username", username), zap.Error(err))
		return "", err
	}
	if user == nil {
		s.logger.Warn("Login attempt failed: no matching credentials", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpires)
	if err != nil {
		s.logger.Error("Failed to generate JWT token during login", zap.String("username", username), zap.Int64("userID", user.ID), zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully", zap.String("username", username), zap.Int64("userID", user.ID))
	return token, nil
}
