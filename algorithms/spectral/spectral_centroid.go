package spectral

// SpectralCentroid computes the spectral centroid (center of mass) of a
// spectrum in Hz. Correlates with perceived brightness.
type SpectralCentroid struct {
	sampleRate int
	freqBins   []float64 // Pre-calculated frequency bins for efficiency
}

// NewSpectralCentroid creates a new spectral centroid calculator
func NewSpectralCentroid(sampleRate int) *SpectralCentroid {
	return &SpectralCentroid{
		sampleRate: sampleRate,
	}
}

// Compute calculates the spectral centroid for a single magnitude spectrum
func (sc *SpectralCentroid) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	if len(sc.freqBins) != len(spectrum) {
		sc.initializeFreqBins(len(spectrum))
	}

	numerator := 0.0
	denominator := 0.0

	for i := range spectrum {
		numerator += sc.freqBins[i] * spectrum[i]
		denominator += spectrum[i]
	}

	if denominator == 0 {
		return 0.0
	}

	return numerator / denominator
}

// ComputeMean calculates the mean centroid across all frames of a spectrogram
func (sc *SpectralCentroid) ComputeMean(spectrogram [][]float64) float64 {
	if len(spectrogram) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, spectrum := range spectrogram {
		sum += sc.Compute(spectrum)
	}

	return sum / float64(len(spectrogram))
}

// initializeFreqBins pre-calculates the bin center frequencies.
// numBins is windowSize/2+1, so (numBins-1)*2 recovers the FFT size.
func (sc *SpectralCentroid) initializeFreqBins(numBins int) {
	sc.freqBins = make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		sc.freqBins[i] = float64(i) * float64(sc.sampleRate) / float64((numBins-1)*2)
	}
}
