package speech

import (
	"fmt"
	"math"
)

// VoiceQualityAnalyzer measures cycle-to-cycle perturbation of the voice.
// WHY: jitter and shimmer are the standard clinical indicators of vocal
// stability and map directly onto perceived roughness of a recording.
type VoiceQualityAnalyzer struct {
	sampleRate int
	minF0      float64
	maxF0      float64
	tracker    *PitchTracker
}

// VoiceQualityResult contains perturbation measurements
type VoiceQualityResult struct {
	JitterPercent  float64 `json:"jitter_percent"`  // Pitch period irregularity (%)
	ShimmerPercent float64 `json:"shimmer_percent"` // Amplitude irregularity (%)
	NumPeriods     int     `json:"num_periods"`     // Number of pitch periods analyzed
}

// NewVoiceQualityAnalyzer creates an analyzer for the 50-600 Hz range
func NewVoiceQualityAnalyzer(sampleRate int) *VoiceQualityAnalyzer {
	return &VoiceQualityAnalyzer{
		sampleRate: sampleRate,
		minF0:      50.0,
		maxF0:      600.0,
		tracker:    NewPitchTrackerRange(sampleRate, 50.0, 600.0),
	}
}

// Analyze reconstructs a periodic point process from the pitch contour and
// measures jitter and shimmer over the resulting cycles. An error means
// the signal does not carry enough voiced material to measure; callers
// treat that as zero perturbation rather than a pipeline failure.
func (vqa *VoiceQualityAnalyzer) Analyze(signal []float64) (*VoiceQualityResult, error) {
	periodLengths, periodAmps := vqa.extractPeriods(signal)

	if len(periodLengths) < 3 {
		return nil, fmt.Errorf("insufficient pitch periods for analysis (found %d, need at least 3)", len(periodLengths))
	}

	return &VoiceQualityResult{
		JitterPercent:  relativePerturbation(periodLengths),
		ShimmerPercent: relativePerturbation(periodAmps),
		NumPeriods:     len(periodLengths),
	}, nil
}

// extractPeriods walks the voiced part of the signal, laying consecutive
// pitch periods end to end. Period length comes from the refined F0 of
// the frame containing the period start; amplitude is the RMS over the
// period samples.
func (vqa *VoiceQualityAnalyzer) extractPeriods(signal []float64) (lengths, amplitudes []float64) {
	contour := vqa.tracker.Track(signal)
	if len(contour) == 0 {
		return nil, nil
	}

	step := vqa.tracker.stepSize
	pos := 0

	for pos < len(signal) {
		frameIdx := pos / step
		if frameIdx >= len(contour) {
			break
		}

		f0 := contour[frameIdx]
		if f0 <= 0 {
			// Unvoiced region: skip to the next analysis frame
			pos = (frameIdx + 1) * step
			continue
		}

		periodLen := float64(vqa.sampleRate) / f0
		end := pos + int(periodLen)
		if end > len(signal) {
			break
		}

		rms := 0.0
		for _, s := range signal[pos:end] {
			rms += s * s
		}
		rms = math.Sqrt(rms / float64(end-pos))

		lengths = append(lengths, periodLen)
		amplitudes = append(amplitudes, rms)
		pos = end
	}

	return lengths, amplitudes
}

// relativePerturbation computes the mean absolute difference between
// consecutive values, relative to the overall mean, as a percentage.
// This is the "local" jitter/shimmer formulation.
func relativePerturbation(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if mean == 0 {
		return 0.0
	}

	diffSum := 0.0
	for i := 1; i < len(values); i++ {
		diffSum += math.Abs(values[i] - values[i-1])
	}

	return (diffSum / float64(len(values)-1)) / mean * 100.0
}
