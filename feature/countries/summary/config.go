package summary

import "time"

// Artifact store drivers.
const (
	StoreBucket = "bucket"
	StoreMemory = "memory"
)

// Config controls summary image generation.
type Config struct {
	// Store selects where the image is kept: "bucket" (object storage) or "memory".
	Store string `mapstructure:"store" default:"bucket"`
	// ObjectName is the fixed key the image is stored under.
	ObjectName string `mapstructure:"object_name" default:"summary.png"`
	// TopN is how many countries the image lists.
	TopN int `mapstructure:"top_n" default:"5"`
	// TimeoutSeconds bounds one render and upload.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Width and Height are the image dimensions in pixels.
	Width  int `mapstructure:"width" default:"800"`
	Height int `mapstructure:"height" default:"600"`
}

// Timeout returns the render and upload deadline.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IsValidStore reports whether Store names a supported artifact store.
func (c Config) IsValidStore() bool {
	return c.Store == StoreBucket || c.Store == StoreMemory
}
