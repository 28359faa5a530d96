package services

import (
	"context"

	"travel-journal-api/internal/models"
	"travel-journal-api/internal/repositories"

	"go.uber.org/zap"
)

// UserService defines the interface for user listing operations
type UserService interface {
	ListUsers(ctx context.Context, db repositories.DBTX) ([]models.User, error)
}

type userServiceImpl struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns every user row, unfiltered.
func (s *userServiceImpl) ListUsers(ctx context.Context, db repositories.DBTX) ([]models.User, error) {
	s.logger.Debug("Listing all users")

	users, err := s.userRepo.ListUsers(ctx, db)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}
