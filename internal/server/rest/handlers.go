package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/services"
)

// Handlers implements the /api routes.
type Handlers struct {
	entries   EntryStore
	sentiment SentimentAnalyzer
	reflector Reflector
	exporter  Exporter
	logger    logging.Logger
}

func NewHandlers(es EntryStore, sa SentimentAnalyzer, r Reflector, ex Exporter, l logging.Logger) *Handlers {
	return &Handlers{
		entries:   es,
		sentiment: sa,
		reflector: r,
		exporter:  ex,
		logger:    l.With("module", "http_handlers"),
	}
}

type createEntryRequest struct {
	UserID    string `json:"userId"`
	EntryText string `json:"entryText"`
}

type updateSentimentRequest struct {
	UserID           string   `json:"userId"`
	EntryID          string   `json:"entryId"`
	SentimentSummary string   `json:"sentimentSummary"`
	Score            *float64 `json:"score"`
}

type sentimentRequest struct {
	EntryText any `json:"entryText"`
}

type reflectionRequest struct {
	UserID string `json:"userId"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CreateEntry handles POST /api/entries.
func (h *Handlers) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId or entryText"})
		return
	}

	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}
	if blank(userID) || blank(req.EntryText) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId or entryText"})
		return
	}

	id, err := h.entries.CreateEntry(c.Request.Context(), userID, req.EntryText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add journal entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Journal entry added successfully", "id": id})
}

// GetEntries handles GET /api/entries with optional search and mood filters.
func (h *Handlers) GetEntries(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	if blank(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId query parameter"})
		return
	}

	category, err := journal.ParseCategory(c.Query("mood"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mood filter"})
		return
	}

	all, err := h.entries.GetEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journal entries"})
		return
	}

	f := journal.Filter{Search: c.Query("search"), Category: category}
	c.JSON(http.StatusOK, f.Apply(all))
}

// DeleteEntry handles DELETE /api/entries. A missing entry and a foreign
// entry get the same answer.
func (h *Handlers) DeleteEntry(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	entryID := c.Query("id")
	if blank(userID) || blank(entryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId or entryId"})
		return
	}

	err := h.entries.DeleteEntry(c.Request.Context(), entryID, userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusNotFound, gin.H{"message": "Error deleting entry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting entry"})
	}
}

// UpdateSentiment handles PUT /api/entries/sentiment.
func (h *Handlers) UpdateSentiment(c *gin.Context) {
	var req updateSentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId, entryId, or sentimentSummary"})
		return
	}

	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}
	if blank(userID) || blank(req.EntryID) || blank(req.SentimentSummary) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId, entryId, or sentimentSummary"})
		return
	}

	err := h.entries.UpdateSentiment(c.Request.Context(), req.EntryID, userID, req.SentimentSummary, req.Score)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Sentiment updated successfully"})
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sentiment"})
	}
}

// Sentiment handles POST /api/sentiment.
func (h *Handlers) Sentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or missing entryText"})
		return
	}

	text, ok := req.EntryText.(string)
	if !ok || blank(text) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or missing entryText"})
		return
	}

	res, err := h.sentiment.Analyze(c.Request.Context(), text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error analyzing sentiment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentiment": res})
}

// WeeklyReflection handles POST /api/weekly-reflection.
func (h *Handlers) WeeklyReflection(c *gin.Context) {
	var req reflectionRequest
	// An unreadable body is treated as a missing userId.
	_ = c.ShouldBindJSON(&req)

	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}
	if blank(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}

	r, err := h.reflector.Reflect(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"reflection": r})
	case errors.Is(err, common.ErrNoEntries):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No journal entries found. Write some entries first!"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating weekly reflection"})
	}
}

// Export handles POST /api/entries/export.
func (h *Handlers) Export(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	if blank(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId query parameter"})
		return
	}

	res, err := h.exporter.Export(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, services.ErrExportDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Export is not configured"})
	default:
		h.logger.Error(c.Request.Context(), "export failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export journal entries"})
	}
}
