package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"location-base/internal/models"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) the embedded database file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repository: failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open database: %w", err)
	}
	// One writer keeps inserts and the id sequence strictly ordered.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: failed to connect to database: %w", err)
	}
	return db, nil
}

// SQLiteRepository stores location records in an embedded SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Migrate creates the locations and preferences tables if they do not exist
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// InsertLocation appends a record and returns it with its assigned id
func (r *SQLiteRepository) InsertLocation(ctx context.Context, lat, lon float64) (models.Location, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO locations (latitude, longitude, created_at) VALUES (?, ?, ?)`,
		lat, lon, now.UnixNano(),
	)
	if err != nil {
		return models.Location{}, fmt.Errorf("repository: failed to insert location: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Location{}, fmt.Errorf("repository: failed to read inserted id: %w", err)
	}

	return models.Location{ID: id, Latitude: lat, Longitude: lon, CreatedAt: now}, nil
}

// SelectAllLocations returns every record in insertion order
func (r *SQLiteRepository) SelectAllLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, latitude, longitude, created_at FROM locations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute select query: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var (
			loc     models.Location
			created int64
		)
		if err := rows.Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &created); err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		loc.CreatedAt = time.Unix(0, created).UTC()
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return locations, nil
}

// SQLitePreferenceStore is a key-value store on the preferences table
type SQLitePreferenceStore struct {
	db *sql.DB
}

// NewSQLitePreferenceStore creates a preference store sharing the database
func NewSQLitePreferenceStore(db *sql.DB) *SQLitePreferenceStore {
	return &SQLitePreferenceStore{db: db}
}

// Get returns the value under key; ok is false when the key is absent
func (s *SQLitePreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repository: failed to read preference: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value under key
func (s *SQLitePreferenceStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("repository: failed to write preference: %w", err)
	}
	return nil
}
