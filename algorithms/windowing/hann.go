package windowing

import (
	"fmt"
	"math"
)

// Hann represents a Hann window function. The periodic (non-symmetric)
// variant matches the convention of STFT analysis frameworks.
type Hann struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewHann creates a new periodic Hann window
func NewHann(size int) *Hann {
	h := &Hann{size: size}
	h.generate()
	return h
}

// NewHannSymmetric creates a symmetric Hann window for filter design
func NewHannSymmetric(size int) *Hann {
	h := &Hann{size: size, symmetric: true}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size)
	if h.symmetric {
		denominator = float64(h.size - 1)
	}

	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hann) ApplyInPlace(signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	for i := range signal {
		signal[i] *= h.coefficients[i]
	}

	return nil
}

// Apply applies the window to a signal, returning a new slice
func (h *Hann) Apply(signal []float64) []float64 {
	if len(signal) != h.size {
		return nil
	}

	windowed := make([]float64, h.size)
	for i := range signal {
		windowed[i] = signal[i] * h.coefficients[i]
	}

	return windowed
}

// Size returns the window size
func (h *Hann) Size() int {
	return h.size
}
