package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Buildings dataset sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds the configuration settings for the light score service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - HTTPPort: The port of the public light score API.
// - HealthPort: The port for the monitoring server.
// - Provider: Geocoding provider settings.
// - GeocodeTimeout / BuildingsTimeout: Per-request deadlines of the two external lookups.
// - SearchRadius: Radius of the nearby building lookup, meters.
// - Buildings: Where the building dataset is loaded from.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env              string          `mapstructure:"env"`               // Env is the current environment: local, development, production.
	HTTPPort         int             `mapstructure:"http_port"`         // HTTPPort is the public API port.
	HealthPort       int             `mapstructure:"health_port"`       // HealthPort is the monitoring server port.
	Provider         ProviderConfig  `mapstructure:"provider"`          // Provider holds the geocoder settings.
	GeocodeTimeout   time.Duration   `mapstructure:"geocode_timeout"`   // Deadline of a single geocoding call.
	BuildingsTimeout time.Duration   `mapstructure:"buildings_timeout"` // Deadline of a single building lookup.
	SearchRadius     float64         `mapstructure:"search_radius"`     // Nearby building lookup radius, meters.
	Buildings        BuildingsConfig `mapstructure:"buildings"`         // Buildings dataset location.
	Database         PostgresConfig  `mapstructure:"postgres"`          // Database holds the postgres database configuration
}

// ProviderConfig selects and authenticates the geocoding provider.
type ProviderConfig struct {
	Type      string `mapstructure:"type"`       // google, nominatim or locationiq
	APIKey    string `mapstructure:"api_key"`    // Not needed by nominatim.
	RateLimit int    `mapstructure:"rate_limit"` // Requests per second, locationiq only.
}

// BuildingsConfig tells where the building dataset is loaded from at startup.
type BuildingsConfig struct {
	Source string `mapstructure:"source"` // file or postgres
	File   string `mapstructure:"file"`   // CSV export path for the file source.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"user"`     // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"db_name"`  // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (and an optional .env file)
// and returns a Config struct. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	httpPort, err := strconv.Atoi(v.GetString("HELIOS_HTTP_PORT"))
	if err != nil {
		panic("failed to parse port for api server from configuration")
	}

	healthPort, err := strconv.Atoi(v.GetString("HELIOS_HEALTH_PORT"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("HELIOS_PROVIDER_RATE_LIMIT"))
	if err != nil {
		panic("failed to parse provider rate limit from configuration, must be an integer types")
	}

	geocodeTimeout, err := time.ParseDuration(v.GetString("HELIOS_GEOCODE_TIMEOUT"))
	if err != nil {
		panic("failed to parse geocode timeout from configuration")
	}

	buildingsTimeout, err := time.ParseDuration(v.GetString("HELIOS_BUILDINGS_TIMEOUT"))
	if err != nil {
		panic("failed to parse buildings timeout from configuration")
	}

	radius, err := strconv.ParseFloat(v.GetString("HELIOS_SEARCH_RADIUS"), 64)
	if err != nil || radius <= 0 {
		panic("failed to parse search radius from configuration, must be a positive number")
	}

	source := v.GetString("HELIOS_BUILDINGS_SOURCE")
	if source != SourceFile && source != SourcePostgres {
		panic("unknown buildings source, must be one of: file, postgres")
	}

	return &Config{
		Env:        v.GetString("HELIOS_ENV"),
		HTTPPort:   httpPort,
		HealthPort: healthPort,
		Provider: ProviderConfig{
			Type:      v.GetString("HELIOS_PROVIDER_TYPE"),
			APIKey:    v.GetString("HELIOS_PROVIDER_KEY"),
			RateLimit: rateLimit,
		},
		GeocodeTimeout:   geocodeTimeout,
		BuildingsTimeout: buildingsTimeout,
		SearchRadius:     radius,
		Buildings: BuildingsConfig{
			Source: source,
			File:   v.GetString("HELIOS_BUILDINGS_FILE"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HELIOS_ENV", "production")
	v.SetDefault("HELIOS_HTTP_PORT", "8000")
	v.SetDefault("HELIOS_HEALTH_PORT", "8080")
	v.SetDefault("HELIOS_PROVIDER_TYPE", "locationiq")
	v.SetDefault("HELIOS_PROVIDER_KEY", "")
	v.SetDefault("HELIOS_PROVIDER_RATE_LIMIT", "2")
	v.SetDefault("HELIOS_GEOCODE_TIMEOUT", "10s")
	v.SetDefault("HELIOS_BUILDINGS_TIMEOUT", "5s")
	v.SetDefault("HELIOS_SEARCH_RADIUS", "100")
	v.SetDefault("HELIOS_BUILDINGS_SOURCE", SourceFile)
	v.SetDefault("HELIOS_BUILDINGS_FILE", "data/buildings.csv")
	v.SetDefault("DB_PORT", "5432")
}
