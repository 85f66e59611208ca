package ingest

import (
	"time"

	"blitz-stats/core/region"
)

// Config holds settings for reference-data snapshots and stat ingestion.
type Config struct {
	// TankopediaObject is the object key of the stored vehicle catalog snapshot.
	TankopediaObject string `mapstructure:"tankopedia_object" default:"tankopedia/tankopedia.json"`
	// MapsObject is the object key of the stored map catalog snapshot.
	MapsObject string `mapstructure:"maps_object" default:"maps/maps.json"`
	// CacheTTLSeconds is how long a loaded snapshot is reused. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// MaxClockSkewSeconds is how far ahead of now an upstream timestamp may be
	// before it is clamped.
	MaxClockSkewSeconds int `mapstructure:"max_clock_skew_seconds" default:"36000"`
	// DefaultRegion is used by CLI commands when no region flag is given.
	DefaultRegion string `mapstructure:"default_region" default:"eu"`
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ClockSkew returns MaxClockSkewSeconds as a duration, falling back to 36000s.
func (c Config) ClockSkew() time.Duration {
	if c.MaxClockSkewSeconds <= 0 {
		return 36000 * time.Second
	}
	return time.Duration(c.MaxClockSkewSeconds) * time.Second
}

// Region parses DefaultRegion, falling back to EU.
func (c Config) Region() region.Region {
	r, err := region.Parse(c.DefaultRegion)
	if err != nil {
		return region.EU
	}
	return r
}
