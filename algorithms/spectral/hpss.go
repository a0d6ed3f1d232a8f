package spectral

import (
	"fmt"
	"sort"
)

// HPSS performs harmonic/percussive source separation by median filtering
// the magnitude spectrogram: harmonic content is smooth across time at a
// fixed frequency, percussive content is smooth across frequency within a
// single frame.
//
// References:
//   - Fitzgerald, D. (2010). "Harmonic/Percussive Separation Using Median Filtering"
//   - Driedger, J., Müller, M., Disch, S. (2014). "Extending Harmonic-Percussive
//     Separation of Audio Signals"
type HPSS struct {
	stft       *STFT
	windowSize int
	hopSize    int
	kernelSize int
}

// HPSSResult holds the energies of the separated components
type HPSSResult struct {
	HarmonicEnergy   float64 `json:"harmonic_energy"`
	PercussiveEnergy float64 `json:"percussive_energy"`
	TotalEnergy      float64 `json:"total_energy"`
	TimeFrames       int     `json:"time_frames"`
}

// NewHPSS creates a separator with standard analysis parameters
// (2048-sample window, 512 hop, 31-tap median kernel)
func NewHPSS() *HPSS {
	return &HPSS{
		stft:       NewSTFT(),
		windowSize: 2048,
		hopSize:    512,
		kernelSize: 31,
	}
}

// Separate computes the harmonic and percussive energy of a signal.
// Each time-frequency bin is assigned to the component with the stronger
// median response; ties go to the harmonic component so a perfectly
// stationary tone carries no percussive energy.
func (h *HPSS) Separate(signal []float64, sampleRate int) (*HPSSResult, error) {
	stftResult, err := h.stft.Compute(signal, h.windowSize, h.hopSize, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("hpss stft: %w", err)
	}

	mag := stftResult.Magnitude
	numFrames := stftResult.TimeFrames
	numBins := stftResult.FreqBins
	half := h.kernelSize / 2

	var harmonicEnergy, percussiveEnergy float64
	window := make([]float64, 0, h.kernelSize)

	for t := 0; t < numFrames; t++ {
		for f := 0; f < numBins; f++ {
			power := mag[t][f] * mag[t][f]
			if power == 0 {
				continue
			}

			// Median across time at this frequency bin
			window = window[:0]
			for i := max(0, t-half); i <= min(numFrames-1, t+half); i++ {
				window = append(window, mag[i][f])
			}
			harmonicMedian := median(window)

			// Median across frequency within this frame
			window = window[:0]
			for i := max(0, f-half); i <= min(numBins-1, f+half); i++ {
				window = append(window, mag[t][i])
			}
			percussiveMedian := median(window)

			if harmonicMedian >= percussiveMedian {
				harmonicEnergy += power
			} else {
				percussiveEnergy += power
			}
		}
	}

	return &HPSSResult{
		HarmonicEnergy:   harmonicEnergy,
		PercussiveEnergy: percussiveEnergy,
		TotalEnergy:      harmonicEnergy + percussiveEnergy,
		TimeFrames:       numFrames,
	}, nil
}

// median computes the median of a small window, reordering it in place
func median(window []float64) float64 {
	if len(window) == 0 {
		return 0.0
	}

	sort.Float64s(window)

	mid := len(window) / 2
	if len(window)%2 == 1 {
		return window[mid]
	}
	return (window[mid-1] + window[mid]) / 2.0
}
