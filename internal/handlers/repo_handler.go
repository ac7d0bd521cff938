package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fractionalquest/repo-agent/internal/aistream"
	"github.com/fractionalquest/repo-agent/internal/dtos"
	"github.com/fractionalquest/repo-agent/internal/services"
)

// RepoHandler exposes the preference extraction and repo endpoints.
type RepoHandler struct {
	Extraction *services.ExtractionService
	Repo       *services.RepoService
}

// NewRepoHandler creates the handler with its dependencies.
func NewRepoHandler(extraction *services.ExtractionService, repo *services.RepoService) *RepoHandler {
	return &RepoHandler{Extraction: extraction, Repo: repo}
}

// Extract is the POST /repo/extract endpoint. Always returns a well-formed
// (possibly empty) response; extraction failures degrade inside the service.
func (h *RepoHandler) Extract(c *gin.Context) {
	var req dtos.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.Extraction.Extract(c.Request.Context(), req))
}

// ExtractStream is the POST /repo/extract-stream endpoint. Frames are
// line-delimited per the data-stream protocol and flushed as they happen.
func (h *RepoHandler) ExtractStream(c *gin.Context) {
	var req dtos.ExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering
	c.Status(http.StatusOK)

	h.Extraction.ExtractStream(c.Request.Context(), req, aistream.NewWriter(c.Writer))
}

// Validate is the POST /repo/validate endpoint: persists a confirmed (or
// soft) preference batch.
func (h *RepoHandler) Validate(c *gin.Context) {
	var req dtos.SavePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	saved, err := h.Repo.SavePreferences(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.SavePreferenceResponse{
		Success: true,
		Saved:   saved,
		UserID:  req.UserID,
	})
}

// GetRepo is the GET /repo/:user_id endpoint. An unknown user gets an empty
// repo, not a 404.
func (h *RepoHandler) GetRepo(c *gin.Context) {
	repo, err := h.Repo.GetUserRepo(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load repo: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, repo)
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "agent": "repo"})
}
