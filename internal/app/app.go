package app

import (
	"context"
	"fmt"
	"net/http"

	"location-base/internal/config"
	"location-base/internal/location"
	"location-base/internal/repository"
	"location-base/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// migrator is implemented by both location repositories.
type migrator interface {
	Migrate(ctx context.Context) error
}

// App holds the wired services and the resources they own.
type App struct {
	Capture     *service.CaptureService
	Preferences *service.PreferenceService

	closers []func() error
}

// New opens storage, builds the location provider and loads the initial
// display list and dark-mode flag.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	repo, prefs, err := a.openStorage(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Capture = service.NewCaptureService(provider, repo, cfg.LocationTimeout)
	a.Preferences = service.NewPreferenceService(prefs)

	if err := a.Capture.Reload(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to load stored locations")
	}
	darkMode := a.Preferences.Load(ctx)

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("preference_backend", cfg.PreferenceBackend).
		Str("location_provider", cfg.LocationProvider).
		Bool("dark_mode", darkMode).
		Int("locations", len(a.Capture.Display())).
		Msg("application initialized")

	return a, nil
}

type locationStore interface {
	migrator
	service.LocationRepository
}

func (a *App) openStorage(ctx context.Context, cfg config.Config) (service.LocationRepository, service.PreferenceStore, error) {
	var (
		repo  locationStore
		prefs service.PreferenceStore
	)

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("app: cannot connect to db: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		repo = repository.NewPostgresRepository(pool)
		prefs = repository.NewPostgresPreferenceStore(pool)
	case config.DriverSQLite:
		db, err := repository.OpenSQLite(cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("app: cannot open db: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		repo = repository.NewSQLiteRepository(db)
		prefs = repository.NewSQLitePreferenceStore(db)
	default:
		return nil, nil, fmt.Errorf("app: unsupported db driver %q", cfg.DBDriver)
	}

	if err := repo.Migrate(ctx); err != nil {
		return nil, nil, err
	}

	if cfg.PreferenceBackend == config.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		prefs = repository.NewRedisPreferenceStore(client)
	}

	return repo, prefs, nil
}

// NewProvider builds the location provider named in cfg.
func NewProvider(cfg config.Config) (location.Provider, error) {
	permission, err := location.ParsePermission(cfg.LocationPermission)
	if err != nil {
		return nil, err
	}

	switch cfg.LocationProvider {
	case config.ProviderStatic:
		return location.NewStaticProvider(permission, location.Coordinates{
			Latitude:  cfg.LocationLatitude,
			Longitude: cfg.LocationLongitude,
		})
	case config.ProviderHTTP:
		return location.NewHTTPProvider(cfg.LocationURL, permission, &http.Client{}), nil
	default:
		return nil, fmt.Errorf("app: unsupported location provider %q", cfg.LocationProvider)
	}
}

// Close releases storage connections in reverse order of opening.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
