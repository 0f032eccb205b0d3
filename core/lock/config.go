package lock

import "time"

// Supported lock drivers.
const (
	DriverLocal = "local"
	DriverRedis = "redis"
)

// Config selects and tunes the lock driver.
type Config struct {
	// Driver is either "local" (in-process) or "redis" (shared across replicas).
	Driver string `mapstructure:"driver" default:"local"`
	// TTLSeconds bounds how long a redis lock survives a crashed holder.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"300"`
	// RetryIntervalMillis is the redis acquire polling interval.
	RetryIntervalMillis int `mapstructure:"retry_interval_millis" default:"250"`
}

// IsValidDriver reports whether Driver names a supported implementation.
func (c Config) IsValidDriver() bool {
	return c.Driver == DriverLocal || c.Driver == DriverRedis
}

// TTL returns the redis lock expiry.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// RetryInterval returns the redis acquire polling interval.
func (c Config) RetryInterval() time.Duration {
	if c.RetryIntervalMillis <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.RetryIntervalMillis) * time.Millisecond
}

// RedisConfig holds the connection settings for the redis driver.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" default:"localhost:6379"`
	Password string `mapstructure:"password" default:""`
	DB       int    `mapstructure:"db" default:"0"`
}
