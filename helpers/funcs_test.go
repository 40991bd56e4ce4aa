package helpers

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestParseOHLC(t *testing.T) {
	values, err := ParseOHLC("100.5", "110", "99.25", "105")
	require.NoError(t, err)
	assert.Equal(t, [4]float64{100.5, 110, 99.25, 105}, values)

	_, err = ParseOHLC("100", "abc", "99", "105")
	assert.Error(t, err)
}

func TestIntervalToDuration(t *testing.T) {
	d, err := IntervalToDuration("1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	d, err = IntervalToDuration("4h")
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, d)
}

func TestMaxMinPctVariation(t *testing.T) {
	numbers := []float64{3, 1, 4, 1, 5}
	assert.Equal(t, 5.0, Max(numbers))
	assert.Equal(t, 1.0, Min(numbers))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 10.0, PctVariation(100, 110))
	assert.Equal(t, 0.0, PctVariation(0, 110))
}
