package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/sonido-voz/algorithms/common"
)

func TestMean(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.5, common.Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, common.Mean(nil))
}

func TestPopulationStdDev(t *testing.T) {
	t.Parallel()

	// Divisor is N, not N-1
	assert.InDelta(t, 1.118033988749895, common.PopulationStdDev([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, common.PopulationStdDev([]float64{5}))
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Linear interpolation between order statistics
	assert.InDelta(t, 2.35, common.Percentile(data, 15), 1e-12)
	assert.InDelta(t, 5.5, common.Percentile(data, 50), 1e-12)
	assert.InDelta(t, 1.0, common.Percentile(data, 0), 1e-12)
	assert.InDelta(t, 10.0, common.Percentile(data, 100), 1e-12)

	// Percentile must not depend on input order
	shuffled := []float64{7, 1, 9, 3, 10, 5, 2, 8, 6, 4}
	assert.InDelta(t, 2.35, common.Percentile(shuffled, 15), 1e-12)
}

func TestRMS(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, common.RMS([]float64{2, -2, 2, -2}), 1e-12)
	assert.Equal(t, 0.0, common.RMS(nil))
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.0, common.Clamp(5, 0, 10))
	assert.Equal(t, 0.0, common.Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, common.Clamp(11, 0, 10))
}

func TestRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 440.2, common.Round(440.151, 1))
	assert.Equal(t, 440.0, common.Round(440.44, 0))
	assert.Equal(t, 1.23, common.Round(1.234, 2))
}

func TestResampleUpDoublesLength(t *testing.T) {
	t.Parallel()

	in := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	out := common.NewResampler().Resample(in, 8000, 16000)
	assert.Len(t, out, 16)
}

func TestResampleSameRateIsIdentity(t *testing.T) {
	t.Parallel()

	in := []float64{0.1, 0.2, 0.3}
	out := common.NewResampler().Resample(in, 16000, 16000)
	assert.Equal(t, in, out)
}

func TestResampleDownPreservesShape(t *testing.T) {
	t.Parallel()

	// A slow ramp survives 2:1 decimation
	in := make([]float64, 100)
	for i := range in {
		in[i] = float64(i) / 100
	}
	out := common.NewResampler().Resample(in, 32000, 16000)
	assert.Len(t, out, 50)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i], out[i-1])
	}
}
