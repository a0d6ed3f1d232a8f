package speech

import (
	"math"

	"github.com/RyanBlaney/sonido-voz/algorithms/common"
)

// PitchTracker extracts a frame-wise fundamental frequency contour using
// normalized autocorrelation with parabolic peak refinement.
//
// References:
//   - Boersma, P. (1993). "Accurate short-term analysis of the fundamental frequency"
//   - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
type PitchTracker struct {
	sampleRate int
	minF0      float64
	maxF0      float64
	stepSize   int // hop between analysis frames (samples)
	frameSize  int // analysis frame length (samples)
	minLag     int
	maxLag     int

	voicingThreshold float64
	octaveTolerance  float64
}

// PitchStats summarizes a pitch contour over its voiced frames
type PitchStats struct {
	MeanHz float64 `json:"mean_hz"`
	MinHz  float64 `json:"min_hz"`
	MaxHz  float64 `json:"max_hz"`
	StdHz  float64 `json:"std_hz"`
	Voiced int     `json:"voiced"` // number of voiced frames
	Frames int     `json:"frames"` // total analysis frames
}

// NewPitchTracker creates a tracker for the 50-600 Hz voice range with a
// 10ms analysis step
func NewPitchTracker(sampleRate int) *PitchTracker {
	return NewPitchTrackerRange(sampleRate, 50.0, 600.0)
}

// NewPitchTrackerRange creates a tracker with an explicit F0 search range
func NewPitchTrackerRange(sampleRate int, minF0, maxF0 float64) *PitchTracker {
	maxLag := int(float64(sampleRate) / minF0)
	minLag := int(float64(sampleRate) / maxF0)
	if minLag < 2 {
		minLag = 2
	}

	return &PitchTracker{
		sampleRate: sampleRate,
		minF0:      minF0,
		maxF0:      maxF0,
		stepSize:   int(0.010 * float64(sampleRate)),
		frameSize:  2 * maxLag, // at least two periods of the lowest F0
		minLag:     minLag,
		maxLag:     maxLag,

		voicingThreshold: 0.5,
		octaveTolerance:  0.85,
	}
}

// Track returns one F0 value per analysis frame. Unvoiced frames are
// reported as 0.
func (pt *PitchTracker) Track(signal []float64) []float64 {
	if len(signal) < pt.frameSize {
		return []float64{}
	}

	numFrames := (len(signal)-pt.frameSize)/pt.stepSize + 1
	contour := make([]float64, numFrames)

	frame := make([]float64, pt.frameSize)
	for i := 0; i < numFrames; i++ {
		start := i * pt.stepSize
		copy(frame, signal[start:start+pt.frameSize])
		contour[i] = pt.estimateFrame(frame)
	}

	return contour
}

// Stats computes summary statistics over the voiced frames of a contour.
// All pitch fields are 0 when no frame is voiced.
func (pt *PitchTracker) Stats(contour []float64) PitchStats {
	voiced := make([]float64, 0, len(contour))
	for _, f0 := range contour {
		if f0 > 0 {
			voiced = append(voiced, f0)
		}
	}

	stats := PitchStats{Frames: len(contour), Voiced: len(voiced)}
	if len(voiced) == 0 {
		return stats
	}

	stats.MeanHz = common.Mean(voiced)
	stats.MinHz = common.Min(voiced)
	stats.MaxHz = common.Max(voiced)
	stats.StdHz = common.PopulationStdDev(voiced)

	return stats
}

// estimateFrame returns the F0 of a single frame, or 0 when unvoiced
func (pt *PitchTracker) estimateFrame(frame []float64) float64 {
	// Remove DC so silence and constant offsets do not correlate
	mean := common.Mean(frame)
	for i := range frame {
		frame[i] -= mean
	}

	r0 := 0.0
	for _, s := range frame {
		r0 += s * s
	}
	if r0 < 1e-12 {
		return 0.0
	}

	maxLag := pt.maxLag
	if maxLag > len(frame)-1 {
		maxLag = len(frame) - 1
	}

	// Normalized autocorrelation over the candidate lag range
	autocorr := make([]float64, maxLag+1)
	for lag := pt.minLag - 1; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i < len(frame)-lag; i++ {
			sum += frame[i] * frame[i+lag]
		}
		autocorr[lag] = sum / r0
	}

	// Highest local maximum establishes the voicing strength
	best := 0.0
	for lag := pt.minLag; lag < maxLag; lag++ {
		if autocorr[lag] >= autocorr[lag-1] && autocorr[lag] >= autocorr[lag+1] && autocorr[lag] > best {
			best = autocorr[lag]
		}
	}

	if best < pt.voicingThreshold {
		return 0.0
	}

	// Prefer the shortest lag whose peak is close to the maximum; the
	// global peak often sits an octave low on strongly periodic frames
	chosen := 0
	for lag := pt.minLag; lag < maxLag; lag++ {
		if autocorr[lag] >= autocorr[lag-1] && autocorr[lag] >= autocorr[lag+1] &&
			autocorr[lag] >= best*pt.octaveTolerance {
			chosen = lag
			break
		}
	}
	if chosen == 0 {
		return 0.0
	}

	refined := refineLag(autocorr, chosen)
	f0 := float64(pt.sampleRate) / refined
	if f0 < pt.minF0 || f0 > pt.maxF0 {
		return 0.0
	}

	return f0
}

// refineLag applies parabolic interpolation around an integer lag peak
func refineLag(autocorr []float64, lag int) float64 {
	if lag <= 0 || lag >= len(autocorr)-1 {
		return float64(lag)
	}

	alpha := autocorr[lag-1]
	beta := autocorr[lag]
	gamma := autocorr[lag+1]
	denom := alpha - 2*beta + gamma
	if math.Abs(denom) < 1e-12 {
		return float64(lag)
	}

	delta := 0.5 * (alpha - gamma) / denom
	if delta < -0.5 || delta > 0.5 {
		return float64(lag)
	}

	return float64(lag) + delta
}
