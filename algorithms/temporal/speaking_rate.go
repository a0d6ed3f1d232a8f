package temporal

import (
	"github.com/RyanBlaney/sonido-voz/algorithms/common"
)

// SyllableRate estimates speaking rate from the intensity contour.
// Each transition from below to above an adaptive threshold marks the
// onset of a syllable-like energy burst.
type SyllableRate struct {
	energy     *Energy
	sampleRate int
}

// NewSyllableRate creates an estimator with 25ms/10ms framing
func NewSyllableRate(sampleRate int) *SyllableRate {
	return &SyllableRate{
		energy:     NewSpeechEnergy(sampleRate),
		sampleRate: sampleRate,
	}
}

// Estimate returns syllable-like onsets per second. The threshold sits
// one standard deviation below the mean intensity, so sustained speech
// stays above it while inter-syllable dips fall below.
func (sr *SyllableRate) Estimate(signal []float64) float64 {
	duration := float64(len(signal)) / float64(sr.sampleRate)
	if duration <= 0 {
		return 0.0
	}

	intensity := sr.energy.ComputeLogEnergy(signal, 1e-10)
	if len(intensity) < 2 {
		return 0.0
	}

	threshold := common.Mean(intensity) - common.PopulationStdDev(intensity)

	transitions := 0
	for i := 1; i < len(intensity); i++ {
		if intensity[i] > threshold && intensity[i-1] <= threshold {
			transitions++
		}
	}

	return float64(transitions) / duration
}
