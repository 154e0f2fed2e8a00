package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBSource string `mapstructure:"DB_SOURCE"`

	PreferenceBackend string `mapstructure:"PREFERENCE_BACKEND"`
	RedisAddress      string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int    `mapstructure:"REDIS_DB"`

	LocationProvider   string        `mapstructure:"LOCATION_PROVIDER"`
	LocationPermission string        `mapstructure:"LOCATION_PERMISSION"`
	LocationLatitude   float64       `mapstructure:"LOCATION_LATITUDE"`
	LocationLongitude  float64       `mapstructure:"LOCATION_LONGITUDE"`
	LocationURL        string        `mapstructure:"LOCATION_URL"`
	LocationTimeout    time.Duration `mapstructure:"LOCATION_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BackendSQL   = "sql"
	BackendRedis = "redis"

	ProviderStatic = "static"
	ProviderHTTP   = "http"
)

var defaults = map[string]interface{}{
	"SERVER_ADDRESS":      "0.0.0.0:8080",
	"DB_DRIVER":           DriverSQLite,
	"DB_SOURCE":           "locations.db",
	"PREFERENCE_BACKEND":  BackendSQL,
	"REDIS_ADDRESS":       "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"LOCATION_PROVIDER":   ProviderStatic,
	"LOCATION_PERMISSION": "granted",
	"LOCATION_LATITUDE":   0.0,
	"LOCATION_LONGITUDE":  0.0,
	"LOCATION_URL":        "",
	"LOCATION_TIMEOUT":    "20s",
	"LOG_LEVEL":           "info",
	"LOG_PRETTY":          false,
}

// LoadConfig reads configuration from app.env in path, with environment
// variables taking precedence. A missing file falls back to defaults.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if err = config.validate(); err != nil {
		return config, err
	}

	return config, nil
}

func (c *Config) validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.PreferenceBackend = strings.ToLower(strings.TrimSpace(c.PreferenceBackend))
	c.LocationProvider = strings.ToLower(strings.TrimSpace(c.LocationProvider))

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.PreferenceBackend {
	case BackendSQL, BackendRedis:
	default:
		return fmt.Errorf("config: unsupported PREFERENCE_BACKEND %q", c.PreferenceBackend)
	}

	switch c.LocationProvider {
	case ProviderStatic:
	case ProviderHTTP:
		if c.LocationURL == "" {
			return fmt.Errorf("config: LOCATION_URL is required for the http provider")
		}
	default:
		return fmt.Errorf("config: unsupported LOCATION_PROVIDER %q", c.LocationProvider)
	}

	if c.LocationTimeout <= 0 {
		return fmt.Errorf("config: LOCATION_TIMEOUT must be positive")
	}

	return nil
}
