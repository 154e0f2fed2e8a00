package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Permission is the outcome of a foreground location permission request.
type Permission int

const (
	Denied Permission = iota
	Granted
)

func (p Permission) String() string {
	if p == Granted {
		return "granted"
	}
	return "denied"
}

// ParsePermission maps a config value to a Permission.
func ParsePermission(s string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted", "":
		return Granted, nil
	case "denied":
		return Denied, nil
	}
	return Denied, fmt.Errorf("location: unknown permission %q", s)
}

// Coordinates is a single position reading.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrUnavailable is returned when the provider cannot produce a position.
var ErrUnavailable = errors.New("location: position unavailable")

// Provider is the platform location capability.
type Provider interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentPosition(ctx context.Context) (Coordinates, error)
}

func validate(c Coordinates) error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("location: invalid latitude: %f", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("location: invalid longitude: %f", c.Longitude)
	}
	return nil
}
