package handler

import (
	"context"
	"net/http"

	"location-base/internal/models"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler handles dark-mode preference requests
type PreferenceHandler struct {
	service PreferenceService
}

// PreferenceService interface for dependency injection
type PreferenceService interface {
	Current() bool
	Save(ctx context.Context, value bool) error
	Toggle(ctx context.Context) (bool, error)
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

type darkModeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

// Get handles GET /preferences/dark-mode requests
//
//	@Summary	Current dark-mode flag
//	@Tags		preferences
//	@Produce	json
//	@Success	200	{object}	models.Preference
//	@Router		/preferences/dark-mode [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dark_mode": h.service.Current()})
}

// Set handles PUT /preferences/dark-mode requests. Persistence failures are
// reported in the body, not the status.
//
//	@Summary	Set the dark-mode flag
//	@Tags		preferences
//	@Accept		json
//	@Produce	json
//	@Param		body	body		darkModeRequest	true	"new value"
//	@Success	200		{object}	models.Preference
//	@Failure	400		{object}	map[string]string
//	@Router		/preferences/dark-mode [put]
func (h *PreferenceHandler) Set(c *gin.Context) {
	var req darkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"dark_mode\": true|false}"})
		return
	}

	err := h.service.Save(c.Request.Context(), *req.DarkMode)
	c.JSON(http.StatusOK, models.Preference{DarkMode: h.service.Current(), Persisted: err == nil})
}

// Toggle handles POST /preferences/dark-mode/toggle requests
//
//	@Summary	Flip the dark-mode flag
//	@Tags		preferences
//	@Produce	json
//	@Success	200	{object}	models.Preference
//	@Router		/preferences/dark-mode/toggle [post]
func (h *PreferenceHandler) Toggle(c *gin.Context) {
	value, err := h.service.Toggle(c.Request.Context())
	c.JSON(http.StatusOK, models.Preference{DarkMode: value, Persisted: err == nil})
}
