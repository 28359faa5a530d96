package services

import (
	"context"

	"travel-journal-api/internal/models"
	"travel-journal-api/internal/repositories"

	"go.uber.org/zap"
)

// JournalService defines the interface for journal entry operations
type JournalService interface {
	AddEntry(ctx context.Context, db repositories.DBTX, entry *models.Entry) error
	ListEntries(ctx context.Context, db repositories.DBTX, userID int64) ([]models.Entry, error)
}

type journalServiceImpl struct {
	entryRepo repositories.EntryRepository
	logger    *zap.Logger
}

// NewJournalService creates a new JournalService
func NewJournalService(entryRepo repositories.EntryRepository, logger *zap.Logger) JournalService {
	return &journalServiceImpl{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// AddEntry persists one entry for the owning user. entry.UserID must already
// carry the authenticated caller's id.
func (s *journalServiceImpl) AddEntry(ctx context.Context, db repositories.DBTX, entry *models.Entry) error {
	s.logger.Debug("Adding journal entry", zap.Int64("userID", entry.UserID), zap.String("title", entry.Title))

	newID, err := s.entryRepo.CreateEntry(ctx, db, entry)
	if err != nil {
		s.logger.Error("Failed to add journal entry", zap.Int64("userID", entry.UserID), zap.Error(err))
		return err
	}

	entry.ID = newID
	return nil
}

// ListEntries returns the entries owned by the given user.
func (s *journalServiceImpl) ListEntries(ctx context.Context, db repositories.DBTX, userID int64) ([]models.Entry, error) {
	s.logger.Debug("Listing journal entries", zap.Int64("userID", userID))

	entries, err := s.entryRepo.ListByUser(ctx, db, userID)
	if err != nil {
		s.logger.Error("Failed to list journal entries", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}
