package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPreferenceService is a mock implementation of the PreferenceService interface
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Current() bool {
	return m.Called().Bool(0)
}

func (m *MockPreferenceService) Save(ctx context.Context, value bool) error {
	return m.Called(ctx, value).Error(0)
}

func (m *MockPreferenceService) Toggle(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func TestPreferenceHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockPreferenceService)
	mockSvc.On("Current").Return(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/preferences/dark-mode", nil)

	NewPreferenceHandler(mockSvc).Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dark_mode": true}`, w.Body.String())
}

func TestPreferenceHandler_Set(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		saveValue      bool
		saveError      error
		expectSave     bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "persisted",
			body:           `{"dark_mode": true}`,
			saveValue:      true,
			expectSave:     true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"dark_mode": true, "persisted": true}`,
		},
		{
			name:           "persistence failure keeps new value",
			body:           `{"dark_mode": true}`,
			saveValue:      true,
			saveError:      assert.AnError,
			expectSave:     true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"dark_mode": true, "persisted": false}`,
		},
		{
			name:           "false is a valid value",
			body:           `{"dark_mode": false}`,
			saveValue:      false,
			expectSave:     true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"dark_mode": false, "persisted": true}`,
		},
		{
			name:           "missing field",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "body must be {\"dark_mode\": true|false}"}`,
		},
		{
			name:           "invalid json",
			body:           `dark`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error": "body must be {\"dark_mode\": true|false}"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPreferenceService)
			if tt.expectSave {
				mockSvc.On("Save", mock.Anything, tt.saveValue).Return(tt.saveError)
				mockSvc.On("Current").Return(tt.saveValue)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPut, "/preferences/dark-mode", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			NewPreferenceHandler(mockSvc).Set(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPreferenceHandler_Toggle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockPreferenceService)
	mockSvc.On("Toggle", mock.Anything).Return(false, assert.AnError)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/preferences/dark-mode/toggle", nil)

	NewPreferenceHandler(mockSvc).Toggle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dark_mode": false, "persisted": false}`, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
