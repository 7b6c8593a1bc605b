// Package config assembles runtime settings from an optional config
// file and the environment.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config carries every knob of the enricher. Endpoints for the external
// services are configurable mostly so tests and local setups can point
// at fakes.
type Config struct {
	// static data source
	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	TripBucket     string `mapstructure:"TRIP_BUCKET"`
	// local directory used instead of MinIO when set
	TripDataDir string `mapstructure:"TRIP_DATA_DIR"`

	// key-value persistence; empty DSN runs with in-memory state only
	PostgresDSN string `mapstructure:"POSTGRES_DSN"`

	// status event publishing; empty broker disables it
	KafkaBroker string `mapstructure:"KAFKA_BROKER"`
	KafkaTopic  string `mapstructure:"KAFKA_TOPIC"`

	// geocoding
	UserAgent    string `mapstructure:"GEOCODER_USER_AGENT"`
	CountryCodes string `mapstructure:"GEOCODER_COUNTRY_CODES"`
	PacingMillis int    `mapstructure:"GEOCODER_PACING_MS"`

	// reference location lookup
	GeolocateEndpoint string `mapstructure:"GEOLOCATE_ENDPOINT"`
}

// Pacing returns the configured pacing interval.
func (c Config) Pacing() time.Duration {
	return time.Duration(c.PacingMillis) * time.Millisecond
}

// Load reads app.env from the given path, then lets environment
// variables override. A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Register every key so AutomaticEnv can fill it even without a
	// config file.
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("TRIP_DATA_DIR", "")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("TRIP_BUCKET", "trip-data")
	v.SetDefault("KAFKA_TOPIC", "itinerary.enrichment")
	v.SetDefault("GEOCODER_USER_AGENT", "itinerary-enricher/1.0")
	v.SetDefault("GEOCODER_COUNTRY_CODES", "pt")
	v.SetDefault("GEOCODER_PACING_MS", 1000)
	v.SetDefault("GEOLOCATE_ENDPOINT", "http://ip-api.com/json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
