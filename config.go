package brushbsp

import (
	"log/slog"

	"github.com/akmonengine/brushbsp/brush"
)

const DEFAULT_EXTENT = brush.DefaultExtent

// Config controls a Compiler.
type Config struct {
	// Half-size of the base winding every brush face is clipped from. It must
	// exceed the largest coordinate of the level.
	Extent float64
	// Destination of progress and dropped-face reports
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used for zero fields.
func DefaultConfig() Config {
	return Config{
		Extent: DEFAULT_EXTENT,
		Logger: slog.Default(),
	}
}

func (c Config) withDefaults() Config {
	if c.Extent <= 0 {
		c.Extent = DEFAULT_EXTENT
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
