package repository

import (
	"context"
	"errors"
	"fmt"

	"location-base/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores location records in PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the locations and preferences tables if they do not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// InsertLocation appends a record and returns it with its assigned id
func (r *PostgresRepository) InsertLocation(ctx context.Context, lat, lon float64) (models.Location, error) {
	sql := `
		INSERT INTO locations (latitude, longitude)
		VALUES ($1, $2)
		RETURNING id, latitude, longitude, created_at
	`

	var loc models.Location
	err := r.db.QueryRow(ctx, sql, lat, lon).Scan(
		&loc.ID,
		&loc.Latitude,
		&loc.Longitude,
		&loc.CreatedAt,
	)
	if err != nil {
		return models.Location{}, fmt.Errorf("repository: failed to insert location: %w", err)
	}

	return loc, nil
}

// SelectAllLocations returns every record in insertion order
func (r *PostgresRepository) SelectAllLocations(ctx context.Context) ([]models.Location, error) {
	sql := `
		SELECT id, latitude, longitude, created_at
		FROM locations
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute select query: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return locations, nil
}

// PostgresPreferenceStore is a key-value store on the preferences table
type PostgresPreferenceStore struct {
	db *pgxpool.Pool
}

// NewPostgresPreferenceStore creates a preference store sharing the pool
func NewPostgresPreferenceStore(db *pgxpool.Pool) *PostgresPreferenceStore {
	return &PostgresPreferenceStore{db: db}
}

// Get returns the value under key; ok is false when the key is absent
func (s *PostgresPreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repository: failed to read preference: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value under key
func (s *PostgresPreferenceStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO preferences (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("repository: failed to write preference: %w", err)
	}
	return nil
}
