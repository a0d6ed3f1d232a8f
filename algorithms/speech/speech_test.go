package speech_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-voz/algorithms/speech"
)

const testSampleRate = 16000

func sineAt(freq, seconds, amplitude float64) []float64 {
	n := int(seconds * testSampleRate)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
	}
	return signal
}

func TestPitchTrackerPureTone(t *testing.T) {
	t.Parallel()

	tracker := speech.NewPitchTrackerRange(testSampleRate, 50, 600)
	contour := tracker.Track(sineAt(440, 1.0, 0.5))
	stats := tracker.Stats(contour)

	assert.Positive(t, stats.Voiced)
	assert.InDelta(t, 440, stats.MeanHz, 5)
	assert.InDelta(t, 440, stats.MinHz, 10)
	assert.InDelta(t, 440, stats.MaxHz, 10)
	assert.Less(t, stats.StdHz, 5.0)
}

func TestPitchTrackerLowTone(t *testing.T) {
	t.Parallel()

	tracker := speech.NewPitchTrackerRange(testSampleRate, 50, 600)
	stats := tracker.Stats(tracker.Track(sineAt(110, 1.0, 0.5)))

	assert.InDelta(t, 110, stats.MeanHz, 3)
}

func TestPitchTrackerSilenceIsUnvoiced(t *testing.T) {
	t.Parallel()

	tracker := speech.NewPitchTrackerRange(testSampleRate, 50, 600)
	stats := tracker.Stats(tracker.Track(make([]float64, testSampleRate)))

	assert.Zero(t, stats.Voiced)
	assert.Equal(t, 0.0, stats.MeanHz)
	assert.Equal(t, 0.0, stats.MinHz)
	assert.Equal(t, 0.0, stats.MaxHz)
}

func TestPitchTrackerNoiseIsUnvoiced(t *testing.T) {
	t.Parallel()

	// Deterministic white noise; no lag should correlate strongly
	signal := make([]float64, testSampleRate)
	state := uint64(0x9e3779b97f4a7c15)
	for i := range signal {
		state = state*6364136223846793005 + 1442695040888963407
		signal[i] = 0.5 * (float64(state>>11)/float64(1<<53)*2 - 1)
	}

	tracker := speech.NewPitchTrackerRange(testSampleRate, 50, 600)
	stats := tracker.Stats(tracker.Track(signal))

	assert.Zero(t, stats.Voiced)
}

func TestVoiceQualityStableTone(t *testing.T) {
	t.Parallel()

	result, err := speech.NewVoiceQualityAnalyzer(testSampleRate).Analyze(sineAt(200, 1.0, 0.5))
	require.NoError(t, err)

	// A perfectly periodic constant-amplitude tone has almost no
	// cycle-to-cycle perturbation
	assert.Less(t, result.JitterPercent, 2.0)
	assert.Less(t, result.ShimmerPercent, 5.0)
	assert.Greater(t, result.NumPeriods, 10)
}

func TestVoiceQualitySilenceFails(t *testing.T) {
	t.Parallel()

	_, err := speech.NewVoiceQualityAnalyzer(testSampleRate).Analyze(make([]float64, testSampleRate))
	assert.Error(t, err)
}

func TestVoiceQualityModulatedToneHasShimmer(t *testing.T) {
	t.Parallel()

	// 30% amplitude modulation at 5 Hz produces measurable shimmer
	signal := sineAt(200, 1.0, 0.5)
	for i := range signal {
		mod := 1 + 0.3*math.Sin(2*math.Pi*5*float64(i)/testSampleRate)
		signal[i] *= mod
	}

	result, err := speech.NewVoiceQualityAnalyzer(testSampleRate).Analyze(signal)
	require.NoError(t, err)

	assert.Greater(t, result.ShimmerPercent, 0.1)
}
