package repositories

import (
	"context"
	"fmt"

	"travel-journal-api/internal/models"

	"go.uber.org/zap"
)

// EntryRepository defines the interface for journal entry data operations
type EntryRepository interface {
	CreateEntry(ctx context.Context, db DBTX, entry *models.Entry) (int64, error)
	ListByUser(ctx context.Context, db DBTX, userID int64) ([]models.Entry, error)
}

type entryRepository struct {
	logger *zap.Logger
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(logger *zap.Logger) EntryRepository {
	return &entryRepository{logger: logger}
}

// CreateEntry inserts one entry row. deletedFlag is always written as 0.
func (r *entryRepository) CreateEntry(ctx context.Context, db DBTX, entry *models.Entry) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO entries (title, location, startDate, endDate, description, googleMapsUrl, imgUrl, deletedFlag, userId)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Title, entry.Location, entry.StartDate, entry.EndDate,
		entry.Description, entry.GoogleMapsURL, entry.ImgURL, 0, entry.UserID)
	if err != nil {
		r.logger.Error("Error creating entry", zap.Int64("userID", entry.UserID), zap.Error(err))
		return 0, fmt.Errorf("error creating entry for user %d: %w", entry.UserID, err)
	}

	newID, err := res.LastInsertId()
	if err != nil {
		r.logger.Error("Error reading insert id for new entry", zap.Int64("userID", entry.UserID), zap.Error(err))
		return 0, fmt.Errorf("error reading insert id for entry: %w", err)
	}

	r.logger.Info("Entry created successfully", zap.Int64("userID", entry.UserID), zap.Int64("newID", newID))
	return newID, nil
}

// ListByUser returns every entry owned by the given user, deleted or not:
// deletedFlag is never consulted.
func (r *entryRepository) ListByUser(ctx context.Context, db DBTX, userID int64) ([]models.Entry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, location, startDate, endDate, description, googleMapsUrl, imgUrl, deletedFlag, userId
		 FROM entries WHERE userId = ?`, userID)
	if err != nil {
		r.logger.Error("Error listing entries", zap.Int64("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("error listing entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Location, &e.StartDate, &e.EndDate,
			&e.Description, &e.GoogleMapsURL, &e.ImgURL, &e.DeletedFlag, &e.UserID); err != nil {
			r.logger.Error("Error scanning entry row", zap.Error(err))
			return nil, fmt.Errorf("error scanning entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}
