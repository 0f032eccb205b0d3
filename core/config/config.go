package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"country-exchange/core/database"
	"country-exchange/core/lock"
	"country-exchange/core/logger"
	"country-exchange/core/server"
	"country-exchange/core/storage"
	"country-exchange/feature/countries/sources"
	"country-exchange/feature/countries/summary"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Sources holds the upstream country and exchange-rate endpoints.
	Sources sources.Config `mapstructure:"sources"`
	// Summary holds configuration for the summary image.
	Summary summary.Config `mapstructure:"summary"`
	// Lock selects how concurrent refreshes are serialized.
	Lock lock.Config `mapstructure:"lock"`
	// Redis holds the connection used by the redis lock driver.
	Redis lock.RedisConfig `mapstructure:"redis"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port must not be empty"))
	}
	if strings.TrimSpace(c.Sources.CountriesURL) == "" {
		errs = append(errs, errors.New("sources.countries_url must not be empty"))
	}
	if strings.TrimSpace(c.Sources.RatesURL) == "" {
		errs = append(errs, errors.New("sources.rates_url must not be empty"))
	}
	if c.Sources.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("sources.timeout_seconds must be > 0"))
	}
	if c.Database.BatchSize <= 0 {
		errs = append(errs, errors.New("database.batch_size must be > 0"))
	}
	if c.Summary.TopN <= 0 {
		errs = append(errs, errors.New("summary.top_n must be > 0"))
	}
	if strings.TrimSpace(c.Summary.ObjectName) == "" {
		errs = append(errs, errors.New("summary.object_name must not be empty"))
	}
	if !c.Summary.IsValidStore() {
		errs = append(errs, fmt.Errorf("summary.store must be %q or %q, got %q", summary.StoreBucket, summary.StoreMemory, c.Summary.Store))
	}
	if !c.Lock.IsValidDriver() {
		errs = append(errs, fmt.Errorf("lock.driver must be %q or %q, got %q", lock.DriverLocal, lock.DriverRedis, c.Lock.Driver))
	}

	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
