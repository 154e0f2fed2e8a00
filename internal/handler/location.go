package handler

import (
	"context"
	"errors"
	"net/http"

	"location-base/internal/models"
	"location-base/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// LocationHandler handles capture and listing requests
type LocationHandler struct {
	service CaptureService
}

// CaptureService interface for dependency injection
type CaptureService interface {
	Capture(ctx context.Context) (models.Location, error)
	ListAll(ctx context.Context) ([]models.Location, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc CaptureService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// Capture handles POST /locations requests
//
//	@Summary	Capture the current position
//	@Tags		locations
//	@Produce	json
//	@Success	201	{object}	models.Location
//	@Failure	403	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Failure	502	{object}	map[string]string
//	@Failure	504	{object}	map[string]string
//	@Router		/locations [post]
func (h *LocationHandler) Capture(c *gin.Context) {
	location, err := h.service.Capture(c.Request.Context())
	if err != nil {
		status, message := captureError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("capture failed")
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, location)
}

// List handles GET /locations requests
//
//	@Summary	List captured positions in capture order
//	@Tags		locations
//	@Produce	json
//	@Success	200	{array}		models.Location
//	@Failure	500	{object}	map[string]string
//	@Router		/locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("list locations failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func captureError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, "location permission denied"
	case errors.Is(err, service.ErrCaptureInProgress):
		return http.StatusConflict, "a capture is already in progress"
	case errors.Is(err, service.ErrTimeout):
		return http.StatusGatewayTimeout, "timed out waiting for position"
	case errors.Is(err, service.ErrProvider):
		return http.StatusBadGateway, "location unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
