package temporal

import (
	"math"
)

// SilenceTrimmer removes leading and trailing silence using a frame-level
// energy threshold relative to the loudest frame.
type SilenceTrimmer struct {
	frameSize int
	hopSize   int
}

// NewSilenceTrimmer creates a trimmer with 2048/512 framing
func NewSilenceTrimmer() *SilenceTrimmer {
	return &SilenceTrimmer{
		frameSize: 2048,
		hopSize:   512,
	}
}

// Trim returns the sub-slice of signal between the first and last frame
// whose RMS level is within topDB of the peak frame. Signals shorter than
// one frame are returned unchanged; an entirely silent signal returns an
// empty slice so the caller can decide on a fallback.
func (st *SilenceTrimmer) Trim(signal []float64, topDB float64) []float64 {
	if len(signal) < st.frameSize {
		return signal
	}

	energy := NewEnergy(st.frameSize, st.hopSize)
	rmsValues := energy.ComputeRMS(signal)
	if len(rmsValues) == 0 {
		return signal
	}

	ref := 0.0
	for _, rms := range rmsValues {
		if rms > ref {
			ref = rms
		}
	}
	if ref <= 0 {
		return []float64{}
	}

	firstFrame, lastFrame := -1, -1
	for i, rms := range rmsValues {
		if rms <= 0 {
			continue
		}
		if 20.0*math.Log10(rms/ref) > -topDB {
			if firstFrame < 0 {
				firstFrame = i
			}
			lastFrame = i
		}
	}

	if firstFrame < 0 {
		return []float64{}
	}

	start := firstFrame * st.hopSize
	end := lastFrame*st.hopSize + st.frameSize
	if end > len(signal) {
		end = len(signal)
	}

	return signal[start:end]
}
