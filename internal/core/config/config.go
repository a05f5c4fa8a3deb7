package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
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

	// Shopify holds the order source credentials.
	Shopify ShopifyConfig `mapstructure:",squash"`

	// Tracking holds the tracking aggregator configuration.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Cache holds the snapshot cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// HolidaysFile is an optional path to a newline-separated list of
	// YYYY-MM-DD holiday dates. When empty, the embedded Brazilian
	// holiday table is used.
	HolidaysFile string `mapstructure:"HOLIDAYS_FILE"`
}

// ShopifyConfig holds the credentials for the Shopify Admin API.
// Both fields are required: without them no order data can be fetched.
type ShopifyConfig struct {
	// StoreDomain is the myshopify domain of the store (e.g., orne.myshopify.com).
	StoreDomain string `mapstructure:"SHOPIFY_STORE_DOMAIN" required:"true"`
	// AccessToken is the Admin API access token.
	AccessToken string `mapstructure:"SHOPIFY_ACCESS_TOKEN" required:"true"`
}

// TrackingConfig holds the tracking aggregator (17TRACK) configuration.
// The API key is optional: without it tracking calls degrade to no-ops
// and the dashboard renders orders with an awaiting status.
type TrackingConfig struct {
	// APIKey is the 17TRACK API token.
	APIKey string `mapstructure:"TRACKING_API_KEY"`
	// BaseURL is the aggregator API base URL, overridable for tests.
	BaseURL string `mapstructure:"TRACKING_API_URL" default:"https://api.17track.net/track/v2.2"`
}

// CacheConfig holds the Redis snapshot cache settings.
type CacheConfig struct {
	// RedisURL is the Redis connection URL. Empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL"`
	// SnapshotTTLSeconds is how long a dashboard snapshot stays cached.
	// 0 disables caching even when Redis is configured.
	SnapshotTTLSeconds int `mapstructure:"DASHBOARD_CACHE_TTL" default:"60"`
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

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
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

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
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

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
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
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
