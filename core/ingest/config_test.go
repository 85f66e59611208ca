package ingest_test

import (
	"testing"
	"time"

	"blitz-stats/core/ingest"
	"blitz-stats/core/region"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Durations(t *testing.T) {
	tests := []struct {
		name       string
		cfg        ingest.Config
		wantTTL    time.Duration
		wantSkew   time.Duration
		wantRegion region.Region
	}{
		{"Defaults", ingest.Config{CacheTTLSeconds: 300, MaxClockSkewSeconds: 36000, DefaultRegion: "eu"}, 5 * time.Minute, 10 * time.Hour, region.EU},
		{"Zero values", ingest.Config{}, 0, 10 * time.Hour, region.EU},
		{"Custom", ingest.Config{CacheTTLSeconds: 1, MaxClockSkewSeconds: 60, DefaultRegion: "asia"}, time.Second, time.Minute, region.ASIA},
		{"Bad region", ingest.Config{DefaultRegion: "mars"}, 0, 10 * time.Hour, region.EU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTTL, tt.cfg.CacheTTL())
			assert.Equal(t, tt.wantSkew, tt.cfg.ClockSkew())
			assert.Equal(t, tt.wantRegion, tt.cfg.Region())
		})
	}
}
