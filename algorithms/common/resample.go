package common

// Resampler converts a signal between sample rates using linear
// interpolation. Voice measurements run at a fixed analysis rate, so
// interpolation quality matters less than determinism here.
type Resampler struct{}

// NewResampler creates a new linear resampler
func NewResampler() *Resampler {
	return &Resampler{}
}

// Resample converts signal from srcRate to dstRate. The input is returned
// unchanged when the rates already match.
func (r *Resampler) Resample(signal []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(signal) == 0 || srcRate <= 0 || dstRate <= 0 {
		return signal
	}

	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(float64(len(signal)) * float64(dstRate) / float64(srcRate))
	if outLen == 0 {
		return []float64{}
	}

	out := make([]float64, outLen)
	for i := 0; i < outLen; i++ {
		pos := float64(i) * ratio
		out[i] = interpolateLinear(signal, pos)
	}

	return out
}

// interpolateLinear evaluates the signal at a fractional index
func interpolateLinear(data []float64, index float64) float64 {
	if index <= 0 {
		return data[0]
	}
	if index >= float64(len(data)-1) {
		return data[len(data)-1]
	}

	i := int(index)
	frac := index - float64(i)

	return data[i] + frac*(data[i+1]-data[i])
}
