package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"location-base/internal/location"
	"location-base/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultCaptureTimeout bounds a single position reading.
const DefaultCaptureTimeout = 20 * time.Second

// CaptureState is the step a capture is currently in.
type CaptureState int32

const (
	StateIdle CaptureState = iota
	StateRequestingPermission
	StateCapturing
	StatePersisting
	StateDenied
)

func (s CaptureState) String() string {
	switch s {
	case StateRequestingPermission:
		return "requesting_permission"
	case StateCapturing:
		return "capturing"
	case StatePersisting:
		return "persisting"
	case StateDenied:
		return "denied"
	default:
		return "idle"
	}
}

// LocationRepository interface for dependency injection
type LocationRepository interface {
	InsertLocation(ctx context.Context, lat, lon float64) (models.Location, error)
	SelectAllLocations(ctx context.Context) ([]models.Location, error)
}

// CaptureService runs the permission, read, persist and refresh sequence
type CaptureService struct {
	provider location.Provider
	repo     LocationRepository
	timeout  time.Duration

	inFlight atomic.Bool
	state    atomic.Int32

	mu      sync.RWMutex
	display []models.Location
}

// NewCaptureService creates a new capture service. A non-positive timeout
// uses DefaultCaptureTimeout.
func NewCaptureService(provider location.Provider, repo LocationRepository, timeout time.Duration) *CaptureService {
	if timeout <= 0 {
		timeout = DefaultCaptureTimeout
	}
	return &CaptureService{
		provider: provider,
		repo:     repo,
		timeout:  timeout,
		display:  []models.Location{},
	}
}

// State returns the current capture state
func (s *CaptureService) State() CaptureState {
	return CaptureState(s.state.Load())
}

func (s *CaptureService) setState(state CaptureState) {
	s.state.Store(int32(state))
}

// Capture records the current position. Only one capture runs at a time;
// overlapping calls fail with ErrCaptureInProgress.
func (s *CaptureService) Capture(ctx context.Context) (models.Location, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return models.Location{}, ErrCaptureInProgress
	}
	defer s.inFlight.Store(false)

	s.setState(StateRequestingPermission)
	permission, err := s.provider.RequestPermission(ctx)
	if err != nil {
		s.setState(StateIdle)
		return models.Location{}, fmt.Errorf("%w: failed to request permission: %w", ErrProvider, err)
	}
	if permission != location.Granted {
		s.setState(StateDenied)
		log.Info().Msg("location permission denied")
		return models.Location{}, ErrPermissionDenied
	}

	s.setState(StateCapturing)
	posCtx, cancel := context.WithTimeout(ctx, s.timeout)
	coords, err := s.currentPosition(posCtx)
	timedOut := errors.Is(posCtx.Err(), context.DeadlineExceeded)
	cancel()
	if err != nil {
		s.setState(StateIdle)
		switch {
		case timedOut && ctx.Err() != nil:
			return models.Location{}, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		case timedOut:
			return models.Location{}, fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		return models.Location{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	s.setState(StatePersisting)
	record, err := s.repo.InsertLocation(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		s.setState(StateIdle)
		return models.Location{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// The record is durable at this point; a failed refresh leaves the
	// previous display list in place.
	if err := s.Reload(ctx); err != nil {
		log.Warn().Err(err).Int64("id", record.ID).Msg("failed to refresh locations after capture")
	}

	s.setState(StateIdle)
	log.Info().
		Int64("id", record.ID).
		Float64("latitude", record.Latitude).
		Float64("longitude", record.Longitude).
		Msg("location captured")

	return record, nil
}

type positionResult struct {
	coords location.Coordinates
	err    error
}

// currentPosition returns when the provider answers or ctx is done,
// whichever comes first. A provider that ignores ctx is left to finish on
// its own.
func (s *CaptureService) currentPosition(ctx context.Context) (location.Coordinates, error) {
	done := make(chan positionResult, 1)
	go func() {
		coords, err := s.provider.CurrentPosition(ctx)
		done <- positionResult{coords: coords, err: err}
	}()

	select {
	case res := <-done:
		return res.coords, res.err
	case <-ctx.Done():
		return location.Coordinates{}, ctx.Err()
	}
}

// ListAll returns every stored record in insertion order
func (s *CaptureService) ListAll(ctx context.Context) ([]models.Location, error) {
	locations, err := s.repo.SelectAllLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return locations, nil
}

// Reload replaces the display list with the stored records
func (s *CaptureService) Reload(ctx context.Context) error {
	locations, err := s.ListAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.display = locations
	s.mu.Unlock()
	return nil
}

// Display returns a copy of the last loaded records
func (s *CaptureService) Display() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Location, len(s.display))
	copy(out, s.display)
	return out
}
