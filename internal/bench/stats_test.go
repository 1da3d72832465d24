package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats_Empty(t *testing.T) {
	_, ok := computeStats(nil)
	assert.False(t, ok)
}

func TestComputeStats_Basic(t *testing.T) {
	samples := make([]int64, 0, 100)
	for i := int64(1); i <= 100; i++ {
		samples = append(samples, i)
	}
	stats, ok := computeStats(samples)
	require.True(t, ok)
	assert.Equal(t, 100, stats.N)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 100.0, stats.Max)
	assert.InDelta(t, 50.5, stats.Mean, 1e-9)
	assert.InDelta(t, 99.0, stats.P99, 1.0)
}

func TestComputeStats_SingleSample(t *testing.T) {
	stats, ok := computeStats([]int64{42})
	require.True(t, ok)
	assert.Equal(t, 42.0, stats.Min)
	assert.Equal(t, 42.0, stats.Max)
	assert.Equal(t, 42.0, stats.P50)
}
