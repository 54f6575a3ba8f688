package manager

import (
	"log/slog"

	"github.com/dot5enko/column-limits/distribution"
	"github.com/dot5enko/column-limits/manager/executor"
)

type Config struct {
	// Resolution is the bin count new distribution views start with.
	Resolution int

	// UniqueValueLimit caps the distinct integer values tracked per dimension.
	UniqueValueLimit int

	// MaxEventIterations bounds the rounds a single frame may spend draining
	// events. Exceeding it is a bug and panics.
	MaxEventIterations int

	MaxParallelLoads int64
	PlannerSlots     int

	Decoder executor.Decoder

	ColorDiagnostics bool
	Logger           *slog.Logger
}

func (c Config) withDefaults() Config {

	if c.Resolution < 1 {
		c.Resolution = distribution.DefaultResolution
	}
	if c.UniqueValueLimit < 2 {
		c.UniqueValueLimit = 256
	}
	if c.MaxEventIterations < 1 {
		c.MaxEventIterations = 1024
	}
	if c.MaxParallelLoads < 1 {
		c.MaxParallelLoads = 4
	}
	if c.PlannerSlots < 1 {
		c.PlannerSlots = 8
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	return c
}
