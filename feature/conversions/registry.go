package conversions

import (
	"fmt"

	"blitz-stats/core/transform"
	"blitz-stats/feature/maps"
	"blitz-stats/feature/replay"
	"blitz-stats/feature/stats"
	"blitz-stats/feature/tankopedia"
)

var registrars = []struct {
	name     string
	register func(*transform.Registry) error
}{
	{"tankopedia", tankopedia.RegisterTransforms},
	{"maps", maps.RegisterTransforms},
	{"stats", stats.RegisterTransforms},
	{"replay", replay.RegisterTransforms},
}

// Build registers every conversion of the application and freezes the
// registry.
func Build() (*transform.Registry, error) {
	reg := transform.New()
	for _, r := range registrars {
		if err := r.register(reg); err != nil {
			return nil, fmt.Errorf("register %s conversions: %w", r.name, err)
		}
	}
	reg.Freeze()
	return reg, nil
}

// NewRegistry is Build that panics on error. A registration error is a
// programming mistake and must stop startup.
func NewRegistry() *transform.Registry {
	reg, err := Build()
	if err != nil {
		panic(err)
	}
	return reg
}
