package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travel-journal-api/internal/models"

	"go.uber.org/zap"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, db DBTX, username, password string) (int64, error) // Returns the new user ID
	FindByCredentials(ctx context.Context, db DBTX, username, password string) (*models.User, error)
	ListUsers(ctx context.Context, db DBTX) ([]models.User, error)
}

type userRepository struct {
	logger *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(logger *zap.Logger) UserRepository {
	return &userRepository{logger: logger}
}

// CreateUser inserts a new user row with the credentials stored verbatim.
// No uniqueness check is performed; duplicates are accepted.
func (r *userRepository) CreateUser(ctx context.Context, db DBTX, username, password string) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`,
		username, password)
	if err != nil {
		r.logger.Error("Error creating user", zap.String("username", username), zap.Error(err))
		return 0, fmt.Errorf("error creating user %s: %w", username, err)
	}

	newID, err := res.LastInsertId()
	if err != nil {
		r.logger.Error("Error reading insert id for new user", zap.String("username", username), zap.Error(err))
		return 0, fmt.Errorf("error reading insert id for user %s: %w", username, err)
	}

	r.logger.Info("User created successfully", zap.String("username", username), zap.Int64("newID", newID))
	return newID, nil
}

// FindByCredentials performs the exact-equality credential lookup used by
// login. Returns nil, nil when no row matches.
func (r *userRepository) FindByCredentials(ctx context.Context, db DBTX, username, password string) (*models.User, error) {
	user := &models.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = ? AND password = ?`,
		username, password).Scan(&user.ID, &user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("No user matched credentials", zap.String("username", username))
			return nil, nil
		}
		r.logger.Error("Error querying user by credentials", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("error finding user %s: %w", username, err)
	}
	return user, nil
}

// ListUsers returns every row of the users table, unfiltered and unpaginated.
func (r *userRepository) ListUsers(ctx context.Context, db DBTX) ([]models.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, username, password FROM users`)
	if err != nil {
		r.logger.Error("Error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			r.logger.Error("Error scanning user row", zap.Error(err))
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}
