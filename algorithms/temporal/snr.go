package temporal

import (
	"math"

	"github.com/RyanBlaney/sonido-voz/algorithms/common"
)

// SNREstimator estimates the signal-to-noise ratio of a speech recording
// from the distribution of frame energies: the quietest frames are taken
// as the noise floor, everything above as speech.
type SNREstimator struct {
	energy          *Energy
	noisePercentile float64
	maxDB           float64
}

// NewSNREstimator creates an estimator with 25ms/10ms framing and the
// noise/speech split at the 15th percentile of positive frame energies
func NewSNREstimator(sampleRate int) *SNREstimator {
	return &SNREstimator{
		energy:          NewSpeechEnergy(sampleRate),
		noisePercentile: 15.0,
		maxDB:           60.0,
	}
}

// Estimate returns the SNR in dB, clamped to [0, maxDB]. Degenerate
// inputs (no frames, all-zero energy) yield 0.0 rather than NaN.
func (sn *SNREstimator) Estimate(signal []float64) float64 {
	energies := sn.energy.ComputeMeanSquare(signal)
	if len(energies) == 0 {
		return 0.0
	}

	positive := make([]float64, 0, len(energies))
	for _, e := range energies {
		if e > 0 {
			positive = append(positive, e)
		}
	}

	threshold := 0.0
	if len(positive) > 0 {
		threshold = common.Percentile(positive, sn.noisePercentile)
	}

	speechSum, speechCount := 0.0, 0
	noiseSum, noiseCount := 0.0, 0
	for _, e := range energies {
		if e > threshold {
			speechSum += e
			speechCount++
		} else {
			noiseSum += e
			noiseCount++
		}
	}

	speechEnergy := 1e-10
	if speechCount > 0 {
		speechEnergy = speechSum / float64(speechCount)
	}

	noiseEnergy := 1e-10
	if noiseCount > 0 {
		noiseEnergy = noiseSum / float64(noiseCount)
	}
	if noiseEnergy <= 0 {
		noiseEnergy = 1e-10
	}

	snr := 10.0 * math.Log10(speechEnergy/noiseEnergy)
	return common.Clamp(snr, 0.0, sn.maxDB)
}
