package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"int", 42, 42},
		{"float from JSON", float64(1621494665), 1621494665},
		{"json number", json.Number("3100000000"), 3100000000},
		{"json number float", json.Number("12.9"), 12},
		{"numeric string", " 2625 ", 2625},
		{"float string", "73.5", 73},
		{"bytes", []byte("7"), 7},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
		{"uint8", uint8(9), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
	assert.Equal(t, 5, ToInt("5"))
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, 1.5, ToFloat64("1.5"))
	assert.Equal(t, 2.0, ToFloat64(2))
	assert.Equal(t, 0.25, ToFloat64(json.Number("0.25")))
	assert.Equal(t, 0.0, ToFloat64(nil))
	assert.Equal(t, 0.0, ToFloat64(true))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
	assert.Equal(t, "", ToString(nil))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool(float64(1)))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("1")))
	assert.False(t, ToBool("yes"))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool(nil))
}
