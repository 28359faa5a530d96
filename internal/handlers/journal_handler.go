package handlers

import (
	"fmt"

	mw "travel-journal-api/internal/middleware"
	"travel-journal-api/internal/models"
	"travel-journal-api/internal/pkg/validation"
	"travel-journal-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// JournalHandler handles the protected entry routes. The auth guard has
// already attached the caller's claims before these run.
type JournalHandler struct {
	journalService services.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService services.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// AddEntryRequest defines the expected JSON body for POST /addEntry.
// Field names carry the client's new* prefix. All fields are free-form
// and optional; absent fields persist as empty strings.
type AddEntryRequest struct {
	NewTitle         string `json:"newTitle"`
	NewLocation      string `json:"newLocation"`
	NewStartDate     string `json:"newStartDate"`
	NewEndDate       string `json:"newEndDate"`
	NewDescription   string `json:"newDescription"`
	NewGoogleMapsURL string `json:"newGoogleMapsUrl"`
	NewImgURL        string `json:"newImgUrl"`
}

func callerID(c *fiber.Ctx) (int64, bool) {
	userID, ok := c.Locals(mw.UserIDKey).(int64)
	return userID, ok
}

// AddEntry handles POST /addEntry requests
func (h *JournalHandler) AddEntry(c *fiber.Ctx) error {
	logger := mw.GetRequestLogger(c)

	userID, ok := callerID(c)
	if !ok {
		logger.Error("User ID missing from Locals after JWT validation")
		return c.Status(fiber.StatusUnauthorized).Send(nil)
	}

	var req AddEntryRequest
	if !validation.ParseAndValidate(c, &req) {
		logger.Warn("AddEntry request validation failed or bad request body")
		return nil
	}

	entry := &models.Entry{
		Title:         req.NewTitle,
		Location:      req.NewLocation,
		StartDate:     req.NewStartDate,
		EndDate:       req.NewEndDate,
		Description:   req.NewDescription,
		GoogleMapsURL: req.NewGoogleMapsURL,
		ImgURL:        req.NewImgURL,
		UserID:        userID,
	}

	if err := h.journalService.AddEntry(c.Context(), mw.RequestConn(c), entry); err != nil {
		logger.Error("Failed to add entry", zap.Int64("userID", userID), zap.Error(err))
		// Write failures keep HTTP 200 with success:false, per contract.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	logger.Info("Entry added", zap.Int64("userID", userID), zap.Int64("entryID", entry.ID))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Entry successfully added!",
	})
}

// Home handles GET /home requests, returning the caller's entries only.
func (h *JournalHandler) Home(c *fiber.Ctx) error {
	logger := mw.GetRequestLogger(c)

	userID, ok := callerID(c)
	if !ok {
		logger.Error("User ID missing from Locals after JWT validation")
		return c.Status(fiber.StatusUnauthorized).Send(nil)
	}

	entries, err := h.journalService.ListEntries(c.Context(), mw.RequestConn(c), userID)
	if err != nil {
		logger.Error("Failed to list entries", zap.Int64("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg": fmt.Sprintf("Server Error: %v", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Welcome to your data!",
		"data":    entries,
	})
}
