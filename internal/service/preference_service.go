package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"location-base/internal/models"

	"github.com/rs/zerolog/log"
)

// PreferenceStore interface for dependency injection
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PreferenceService keeps the dark-mode flag in memory and persists every change
type PreferenceService struct {
	store PreferenceStore

	// writeMu spans a change and its store write so storage sees changes
	// in the order memory does.
	writeMu sync.Mutex

	mu       sync.Mutex
	darkMode bool
}

// NewPreferenceService creates a new preference service starting in light mode
func NewPreferenceService(store PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Load reads the persisted flag. Absent, unreadable or malformed values
// yield false.
func (s *PreferenceService) Load(ctx context.Context) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	value := false

	raw, ok, err := s.store.Get(ctx, models.DarkModeKey)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("failed to load dark mode")
	case ok:
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			log.Warn().Err(err).Str("value", raw).Msg("failed to parse dark mode")
			value = false
		}
	}

	s.mu.Lock()
	s.darkMode = value
	s.mu.Unlock()
	return value
}

// Save sets the flag in memory and then persists it. The in-memory value
// keeps the new state even when the write fails.
func (s *PreferenceService) Save(ctx context.Context, value bool) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.darkMode = value
	s.mu.Unlock()

	return s.persist(ctx, value)
}

// Toggle flips the flag and persists it, returning the new value
func (s *PreferenceService) Toggle(ctx context.Context) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.darkMode = !s.darkMode
	value := s.darkMode
	s.mu.Unlock()

	return value, s.persist(ctx, value)
}

// Current returns the in-memory flag without touching storage
func (s *PreferenceService) Current() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

func (s *PreferenceService) persist(ctx context.Context, value bool) error {
	raw, _ := json.Marshal(value)
	if err := s.store.Set(ctx, models.DarkModeKey, string(raw)); err != nil {
		log.Error().Err(err).Bool("dark_mode", value).Msg("failed to save dark mode")
		return fmt.Errorf("%w: %w", ErrPreferenceIO, err)
	}
	return nil
}
