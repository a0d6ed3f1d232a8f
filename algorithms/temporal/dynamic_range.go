package temporal

import (
	"math"

	"github.com/RyanBlaney/sonido-voz/algorithms/common"
)

// DynamicRange measures the spread between loud and quiet parts of a
// recording as the distance between high and low percentiles of the
// per-frame level, which keeps single clicks or dropouts from dominating.
type DynamicRange struct {
	energy         *Energy
	lowPercentile  float64
	highPercentile float64
}

// NewDynamicRange creates an analyzer with 25ms/10ms framing and the
// 5th/95th percentile bounds
func NewDynamicRange(sampleRate int) *DynamicRange {
	return &DynamicRange{
		energy:         NewSpeechEnergy(sampleRate),
		lowPercentile:  5.0,
		highPercentile: 95.0,
	}
}

// Compute returns the dynamic range in dB. Frames with zero amplitude are
// excluded; 0.0 is returned when no frame carries signal.
func (dr *DynamicRange) Compute(signal []float64) float64 {
	rmsValues := dr.energy.ComputeRMS(signal)

	levels := make([]float64, 0, len(rmsValues))
	for _, rms := range rmsValues {
		if rms > 0 {
			levels = append(levels, 20.0*math.Log10(rms))
		}
	}

	if len(levels) == 0 {
		return 0.0
	}

	loud := common.Percentile(levels, dr.highPercentile)
	quiet := common.Percentile(levels, dr.lowPercentile)

	return loud - quiet
}
