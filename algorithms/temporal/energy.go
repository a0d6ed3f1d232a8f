package temporal

import (
	"math"
)

// Energy computes frame-based energy features over a sliding window.
// Speech measurements conventionally use 25ms frames with a 10ms hop.
type Energy struct {
	frameSize int
	hopSize   int
}

// NewEnergy creates a new energy calculator with explicit frame sizes
func NewEnergy(frameSize, hopSize int) *Energy {
	return &Energy{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// NewSpeechEnergy creates an energy calculator with 25ms/10ms framing
func NewSpeechEnergy(sampleRate int) *Energy {
	return &Energy{
		frameSize: int(0.025 * float64(sampleRate)),
		hopSize:   int(0.010 * float64(sampleRate)),
	}
}

// ComputeMeanSquare calculates per-frame mean-square energy
func (e *Energy) ComputeMeanSquare(signal []float64) []float64 {
	return e.computeFrames(signal, func(frame []float64) float64 {
		sumSquares := 0.0
		for _, s := range frame {
			sumSquares += s * s
		}
		return sumSquares / float64(len(frame))
	})
}

// ComputeRMS calculates per-frame root-mean-square amplitude
func (e *Energy) ComputeRMS(signal []float64) []float64 {
	return e.computeFrames(signal, func(frame []float64) float64 {
		sumSquares := 0.0
		for _, s := range frame {
			sumSquares += s * s
		}
		return math.Sqrt(sumSquares / float64(len(frame)))
	})
}

// ComputeLogEnergy calculates per-frame RMS in dB, flooring values to
// avoid log(0)
func (e *Energy) ComputeLogEnergy(signal []float64, floor float64) []float64 {
	rmsValues := e.ComputeRMS(signal)
	logEnergies := make([]float64, len(rmsValues))

	for i, rms := range rmsValues {
		if rms < floor {
			rms = floor
		}
		logEnergies[i] = 20.0 * math.Log10(rms)
	}

	return logEnergies
}

func (e *Energy) computeFrames(signal []float64, fn func([]float64) float64) []float64 {
	if len(signal) < e.frameSize || e.frameSize <= 0 || e.hopSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-e.frameSize)/e.hopSize + 1
	values := make([]float64, 0, numFrames)

	for i := 0; i+e.frameSize <= len(signal); i += e.hopSize {
		values = append(values, fn(signal[i:i+e.frameSize]))
	}

	return values
}
