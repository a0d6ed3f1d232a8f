package analysis

import (
	"math"

	"github.com/RyanBlaney/sonido-voz/algorithms/common"
)

// norm maps x onto a 0-100 scale where divisor is the "perfect" value
func norm(x, divisor float64) float64 {
	return common.Clamp(x/divisor*100, 0, 100)
}

// ComputeScores maps a measurement vector to the six quality scores.
// Pure and deterministic; sub-scores are truncated to int before they
// feed the composite scores, matching the calibrated output exactly.
func ComputeScores(m *Measurements) Scores {
	// Clarity: high SNR and a tonal (low-flatness) spectrum
	snrScore := norm(m.SNRDB, 40)
	flatnessScore := common.Clamp((1-m.SpectralFlatness*10)*100, 0, 100)
	clarity := int(common.Clamp(snrScore*0.6+flatnessScore*0.4, 30, 100))

	// Stability: low cycle-to-cycle perturbation
	jitterScore := common.Clamp((1-m.JitterPercent/3.0)*100, 0, 100)
	shimmerScore := common.Clamp((1-m.ShimmerPercent/10.0)*100, 0, 100)
	stability := int(common.Clamp(jitterScore*0.5+shimmerScore*0.5, 25, 100))

	// Warmth: centroid near 2 kHz plus rich harmonics
	centroidDiff := math.Abs(m.SpectralCentroidHz - 2000)
	centroidScore := common.Clamp((1-centroidDiff/3000)*100, 0, 100)
	harmonicScore := norm(m.HarmonicRatioDB, 25)
	warmth := int(common.Clamp(centroidScore*0.5+harmonicScore*0.5, 30, 100))

	// Expressiveness: wide pitch range plus wide dynamic range
	rangeScore := norm(m.PitchMaxHz-m.PitchMinHz, 150)
	dynamicScore := norm(m.DynamicRangeDB, 40)
	expressiveness := int(common.Clamp(rangeScore*0.6+dynamicScore*0.4, 25, 100))

	// Listenability: MOS-like weighted blend of the four sub-scores
	listenability := int(common.Clamp(
		float64(clarity)*0.30+
			float64(stability)*0.25+
			float64(warmth)*0.20+
			float64(expressiveness)*0.25,
		30, 100))

	overall := int(common.Clamp(
		float64(clarity)*0.25+
			float64(stability)*0.20+
			float64(warmth)*0.20+
			float64(expressiveness)*0.15+
			float64(listenability)*0.20,
		30, 100))

	return Scores{
		Clarity:        boost(clarity),
		Stability:      boost(stability),
		Warmth:         boost(warmth),
		Expressiveness: boost(expressiveness),
		Listenability:  boost(listenability),
		Overall:        boost(overall),
	}
}

// boost remaps the raw [30,100] score domain onto [55,100]. Raw scores
// cluster low; this is a presentation-layer shift, applied uniformly.
// Truncating conversion, so boost(65) == 77.
func boost(score int) int {
	return int(common.Clamp(55+float64(score-30)*(45.0/70.0), 55, 100))
}
