package server

import (
	"strings"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// BasePath is the prefix every feature route is mounted under.
	BasePath string `mapstructure:"base_path" default:"/api/v1"`
	// ReadTimeoutSeconds bounds reading a full request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"30"`
	// WriteTimeoutSeconds bounds writing a response. Refresh requests wait on both
	// upstream sources, so keep this above sources.timeout_seconds.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"120"`
}

// NormalizedBasePath ensures a leading '/' and strips trailing '/' (root stays "/").
func (c Config) NormalizedBasePath() string {
	p := strings.TrimSpace(c.BasePath)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// ReadTimeout returns the read timeout, zero meaning no limit.
func (c Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSeconds)
}

// WriteTimeout returns the write timeout, zero meaning no limit.
func (c Config) WriteTimeout() time.Duration {
	return seconds(c.WriteTimeoutSeconds)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
