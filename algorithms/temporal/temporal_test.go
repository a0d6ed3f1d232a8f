package temporal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RyanBlaney/sonido-voz/algorithms/temporal"
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

func TestSNRAllZeroSignal(t *testing.T) {
	t.Parallel()

	snr := temporal.NewSNREstimator(testSampleRate).Estimate(make([]float64, testSampleRate))
	assert.Equal(t, 0.0, snr)
}

func TestSNREmptySignal(t *testing.T) {
	t.Parallel()

	snr := temporal.NewSNREstimator(testSampleRate).Estimate(nil)
	assert.Equal(t, 0.0, snr)
}

func TestSNRBurstOverSilenceIsHigh(t *testing.T) {
	t.Parallel()

	// Half near-silence, half loud tone: a clear speech/noise split
	quiet := sineAt(440, 1.0, 0.001)
	loud := sineAt(440, 1.0, 0.5)
	signal := append(quiet, loud...)

	snr := temporal.NewSNREstimator(testSampleRate).Estimate(signal)
	assert.Greater(t, snr, 20.0)
	assert.LessOrEqual(t, snr, 60.0)
}

func TestSNRIsClamped(t *testing.T) {
	t.Parallel()

	// Exact digital silence next to a loud burst would blow past 60dB
	// without the clamp
	signal := make([]float64, testSampleRate)
	copy(signal[testSampleRate/2:], sineAt(440, 0.5, 0.9))

	snr := temporal.NewSNREstimator(testSampleRate).Estimate(signal)
	assert.GreaterOrEqual(t, snr, 0.0)
	assert.LessOrEqual(t, snr, 60.0)
}

func TestDynamicRangeConstantToneIsSmall(t *testing.T) {
	t.Parallel()

	dr := temporal.NewDynamicRange(testSampleRate).Compute(sineAt(440, 1.0, 0.5))
	assert.Less(t, dr, 1.0)
}

func TestDynamicRangeLoudQuietContrast(t *testing.T) {
	t.Parallel()

	quiet := sineAt(440, 1.0, 0.005)
	loud := sineAt(440, 1.0, 0.5)
	dr := temporal.NewDynamicRange(testSampleRate).Compute(append(quiet, loud...))
	assert.Greater(t, dr, 10.0)
}

func TestDynamicRangeEmptySignal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, temporal.NewDynamicRange(testSampleRate).Compute(nil))
}

func TestTrimRemovesLeadingAndTrailingSilence(t *testing.T) {
	t.Parallel()

	silence := make([]float64, testSampleRate/2)
	voiced := sineAt(440, 1.0, 0.5)
	signal := append(append(append([]float64{}, silence...), voiced...), silence...)

	trimmed := temporal.NewSilenceTrimmer().Trim(signal, 30)
	assert.Less(t, len(trimmed), len(signal))
	// Trimming is frame-granular and a frame with only a handful of
	// voiced samples already clears the threshold, so allow up to a
	// frame-and-hop of slack on each side
	assert.InDelta(t, len(voiced), len(trimmed), 5500)
}

func TestTrimAllSilenceReturnsEmpty(t *testing.T) {
	t.Parallel()

	trimmed := temporal.NewSilenceTrimmer().Trim(make([]float64, testSampleRate), 30)
	assert.Empty(t, trimmed)
}

func TestTrimKeepsLoudSignalIntact(t *testing.T) {
	t.Parallel()

	signal := sineAt(440, 1.0, 0.5)
	trimmed := temporal.NewSilenceTrimmer().Trim(signal, 30)
	assert.InDelta(t, len(signal), len(trimmed), 3000)
}

func TestSyllableRateCountsBursts(t *testing.T) {
	t.Parallel()

	// Four voiced bursts in two seconds, a 2 syl/sec proxy. Bursts
	// dominate the clip so the adaptive threshold lands between the
	// silence floor and the burst level.
	var signal []float64
	gap := make([]float64, int(0.15*testSampleRate))
	burst := sineAt(200, 0.35, 0.5)
	for n := 0; n < 4; n++ {
		signal = append(signal, gap...)
		signal = append(signal, burst...)
	}

	rate := temporal.NewSyllableRate(testSampleRate).Estimate(signal)
	assert.InDelta(t, 2.0, rate, 1.0)
}

func TestSyllableRateSilence(t *testing.T) {
	t.Parallel()

	rate := temporal.NewSyllableRate(testSampleRate).Estimate(make([]float64, testSampleRate))
	assert.Equal(t, 0.0, rate)
}
