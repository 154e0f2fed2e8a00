package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"location-base/internal/models"
	"location-base/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCaptureService is a mock implementation of the CaptureService interface
type MockCaptureService struct {
	mock.Mock
}

func (m *MockCaptureService) Capture(ctx context.Context) (models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Location), args.Error(1)
}

func (m *MockCaptureService) ListAll(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Location), args.Error(1)
}

func TestLocationHandler_Capture(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stored := models.Location{ID: 1, Latitude: -23.55, Longitude: -46.63}

	tests := []struct {
		name           string
		mockLocation   models.Location
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "successful capture",
			mockLocation:   stored,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "permission denied",
			mockError:      service.ErrPermissionDenied,
			expectedStatus: http.StatusForbidden,
			expectedBody:   map[string]interface{}{"error": "location permission denied"},
		},
		{
			name:           "capture in progress",
			mockError:      service.ErrCaptureInProgress,
			expectedStatus: http.StatusConflict,
			expectedBody:   map[string]interface{}{"error": "a capture is already in progress"},
		},
		{
			name:           "timeout",
			mockError:      fmt.Errorf("%w after 20s", service.ErrTimeout),
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   map[string]interface{}{"error": "timed out waiting for position"},
		},
		{
			name:           "provider error",
			mockError:      fmt.Errorf("%w: %w", service.ErrProvider, assert.AnError),
			expectedStatus: http.StatusBadGateway,
			expectedBody:   map[string]interface{}{"error": "location unavailable"},
		},
		{
			name:           "storage error",
			mockError:      fmt.Errorf("%w: %w", service.ErrStorage, assert.AnError),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockCaptureService)
			mockSvc.On("Capture", mock.Anything).Return(tt.mockLocation, tt.mockError)
			handler := NewLocationHandler(mockSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/locations", nil)

			// Execute
			handler.Capture(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockError == nil {
				var actual models.Location
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actual))
				assert.Equal(t, tt.mockLocation, actual)
			} else {
				var actual interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actual))
				assert.Equal(t, tt.expectedBody, actual)
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestLocationHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockLocations  []models.Location
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "empty list",
			mockLocations:  []models.Location{},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "records in order",
			mockLocations: []models.Location{
				{ID: 1, Latitude: 35.681236, Longitude: 139.767125},
				{ID: 2, Latitude: -23.55, Longitude: -46.63},
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[
				{"id": 1, "latitude": 35.681236, "longitude": 139.767125, "created_at": "0001-01-01T00:00:00Z"},
				{"id": 2, "latitude": -23.55, "longitude": -46.63, "created_at": "0001-01-01T00:00:00Z"}
			]`,
		},
		{
			name:           "service error",
			mockLocations:  []models.Location(nil),
			mockError:      service.ErrStorage,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error": "internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockCaptureService)
			mockSvc.On("ListAll", mock.Anything).Return(tt.mockLocations, tt.mockError)
			handler := NewLocationHandler(mockSvc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/locations", nil)

			handler.List(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}
