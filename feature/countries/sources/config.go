package sources

import "time"

// Config describes the two upstream endpoints.
type Config struct {
	CountriesURL   string `mapstructure:"countries_url" default:"https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"`
	CountriesName  string `mapstructure:"countries_name" default:"restcountries.com"`
	RatesURL       string `mapstructure:"rates_url" default:"https://open.er-api.com/v6/latest/USD"`
	RatesName      string `mapstructure:"rates_name" default:"open.er-api.com"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
	MaxBodyBytes   int64  `mapstructure:"max_body_bytes" default:"10485760"`
}

// Timeout returns the per-call deadline.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) maxBody() int64 {
	if c.MaxBodyBytes <= 0 {
		return 10 << 20
	}
	return c.MaxBodyBytes
}
