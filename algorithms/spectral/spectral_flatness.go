package spectral

import (
	"math"
)

// SpectralFlatness computes spectral flatness (Wiener entropy) on the
// power spectrum. Lower values (0.0-0.3) indicate tonal content, higher
// values (0.7-1.0) indicate noise-like content.
type SpectralFlatness struct {
	minThreshold float64 // Minimum value to avoid log(0)
}

// NewSpectralFlatness creates a new spectral flatness calculator
func NewSpectralFlatness() *SpectralFlatness {
	return &SpectralFlatness{
		minThreshold: 1e-10,
	}
}

// Compute calculates spectral flatness for a single magnitude spectrum.
// Returns the ratio of geometric mean to arithmetic mean of the power
// spectrum (0-1 range).
func (sf *SpectralFlatness) Compute(magnitudeSpectrum []float64) float64 {
	if len(magnitudeSpectrum) == 0 {
		return 0.0
	}

	// Geometric mean in the log domain for numerical stability
	logSum := 0.0
	arithmeticMean := 0.0

	for _, magnitude := range magnitudeSpectrum {
		power := magnitude * magnitude
		if power < sf.minThreshold {
			power = sf.minThreshold
		}
		logSum += math.Log(power)
		arithmeticMean += power
	}

	geometricMean := math.Exp(logSum / float64(len(magnitudeSpectrum)))
	arithmeticMean /= float64(len(magnitudeSpectrum))

	if arithmeticMean <= sf.minThreshold {
		return 0.0
	}

	flatness := geometricMean / arithmeticMean
	if flatness > 1.0 {
		flatness = 1.0
	}

	return flatness
}

// ComputeMean calculates the mean flatness across all frames of a spectrogram
func (sf *SpectralFlatness) ComputeMean(spectrogram [][]float64) float64 {
	if len(spectrogram) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, magnitudeSpectrum := range spectrogram {
		sum += sf.Compute(magnitudeSpectrum)
	}

	return sum / float64(len(spectrogram))
}
