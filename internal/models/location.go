package models

import "time"

// Location is a captured coordinate pair. Records are immutable once stored.
type Location struct {
	ID        int64     `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// DarkModeKey is the preference key the dark-mode flag is stored under.
const DarkModeKey = "darkMode"

// Preference is the dark-mode flag as exposed over the API.
type Preference struct {
	DarkMode  bool `json:"dark_mode"`
	Persisted bool `json:"persisted"`
}
