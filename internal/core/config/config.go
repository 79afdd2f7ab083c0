package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the admin backend.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Mongo holds the document store connection details.
	Mongo MongoConfig `mapstructure:",squash"`

	// Redis holds the cache connection details.
	Redis RedisConfig `mapstructure:",squash"`

	// Auth holds the admin token settings.
	Auth AuthConfig `mapstructure:",squash"`

	// Reports holds the report generation limits.
	Reports ReportsConfig `mapstructure:",squash"`
}

// MongoConfig holds MongoDB connection details.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string `mapstructure:"MONGO_URI" required:"true"`
	// Database is the database holding the marketplace collections.
	Database string `mapstructure:"MONGO_DATABASE" default:"parcel"`
	// ConnectTimeout bounds the initial connection and ping.
	ConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

// RedisConfig holds the cache connection details. An empty URL disables caching.
type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
}

// AuthConfig holds the JWT verification secret.
type AuthConfig struct {
	// JWTSecret is the HMAC secret shared with the admin login service.
	JWTSecret string `mapstructure:"JWT_SECRET" required:"true"`
}

// ReportsConfig bounds report generation.
type ReportsConfig struct {
	// CacheTTL is how long a generated report page stays cached. 0 disables the cache.
	CacheTTL time.Duration `mapstructure:"REPORT_CACHE_TTL" default:"30s"`
	// Timeout bounds the generation of a single report page.
	Timeout time.Duration `mapstructure:"REPORT_TIMEOUT" default:"30s"`
	// MaxLimit caps the page size a client may request.
	MaxLimit int `mapstructure:"REPORT_MAX_LIMIT" default:"100"`
	// RetryAttempts is the number of attempts for a transiently failing store query.
	RetryAttempts int `mapstructure:"QUERY_RETRY_ATTEMPTS" default:"3"`
	// RetryBaseDelay is the first backoff delay; it doubles on each retry.
	RetryBaseDelay time.Duration `mapstructure:"QUERY_RETRY_BASE_DELAY" default:"100ms"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Reports.MaxLimit <= 0 {
		return nil, fmt.Errorf("invalid configuration: REPORT_MAX_LIMIT must be positive")
	}
	if config.Reports.RetryAttempts < 1 {
		return nil, fmt.Errorf("invalid configuration: QUERY_RETRY_ATTEMPTS must be at least 1")
	}

	return &config, nil
}

// processTags binds every tagged field to its environment key and registers defaults.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}

		if defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	default:
		return v.IsZero()
	}
}
