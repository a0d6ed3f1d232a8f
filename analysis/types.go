package analysis

// Measurements is the raw acoustic measurement vector produced by one
// pass over a normalized clip. Pitch fields are 0 when no voiced
// frames were found; SNR is clamped to [0,60] dB and the harmonic
// ratio to [0,40] dB.
type Measurements struct {
	PitchMeanHz float64 `json:"pitch_mean_hz"`
	PitchMinHz  float64 `json:"pitch_min_hz"`
	PitchMaxHz  float64 `json:"pitch_max_hz"`
	PitchStdHz  float64 `json:"pitch_std_hz"`

	JitterPercent  float64 `json:"jitter_percent"`
	ShimmerPercent float64 `json:"shimmer_percent"`

	SpeakingRateSylPerSec float64 `json:"speaking_rate_syl_per_sec"`
	DurationSec           float64 `json:"duration_sec"`

	SNRDB              float64 `json:"snr_db"`
	SpectralFlatness   float64 `json:"spectral_flatness"`
	SpectralCentroidHz float64 `json:"spectral_centroid_hz"`
	HarmonicRatioDB    float64 `json:"harmonic_ratio_db"`
	DynamicRangeDB     float64 `json:"dynamic_range_db"`
}

// Scores is the six-way quality score vector. Every field is an
// integer in [55,100] after the boost remap.
type Scores struct {
	Clarity        int `json:"clarity"`
	Stability      int `json:"stability"`
	Warmth         int `json:"warmth"`
	Expressiveness int `json:"expressiveness"`
	Listenability  int `json:"listenability"`
	Overall        int `json:"overall"`
}

// ReportAnalysis is the measurement subset exposed on the wire
type ReportAnalysis struct {
	PitchMeanHz           float64    `json:"pitch_mean_hz"`
	PitchRangeHz          [2]float64 `json:"pitch_range_hz"`
	SNRDB                 float64    `json:"snr_db"`
	JitterPercent         float64    `json:"jitter_percent"`
	ShimmerPercent        float64    `json:"shimmer_percent"`
	SpeakingRateSylPerSec float64    `json:"speaking_rate_syl_per_sec"`
	SpectralCentroidHz    float64    `json:"spectral_centroid_hz"`
	HarmonicRatioDB       float64    `json:"harmonic_ratio_db"`
	DynamicRangeDB        float64    `json:"dynamic_range_db"`
	DurationSec           float64    `json:"duration_sec"`
}

// Report is the full analysis response for one clip
type Report struct {
	Scores           Scores         `json:"scores"`
	Analysis         ReportAnalysis `json:"analysis"`
	VoiceType        VoiceType      `json:"voice_type"`
	LanguageDetected string         `json:"language_detected"`
}
