package analysis

import "github.com/RyanBlaney/sonido-voz/transcode"

// Config holds pipeline parameters. The defaults are the values the
// measurements and score formulas were calibrated against; changing
// them shifts score distributions.
type Config struct {
	// TargetSampleRate is the rate all audio is resampled to before
	// measurement
	TargetSampleRate int `json:"target_sample_rate"`

	// MinDurationSec rejects clips shorter than this after decoding
	MinDurationSec float64 `json:"min_duration_sec"`

	// TrimTopDB is the silence-trim threshold relative to peak
	TrimTopDB float64 `json:"trim_top_db"`

	// TrimFallbackSec keeps the untrimmed signal when trimming leaves
	// less than this much audio
	TrimFallbackSec float64 `json:"trim_fallback_sec"`

	// PitchFloorHz and PitchCeilingHz bound the pitch search
	PitchFloorHz   float64 `json:"pitch_floor_hz"`
	PitchCeilingHz float64 `json:"pitch_ceiling_hz"`

	// Decoder configures the format-probing decode step
	Decoder *transcode.DecoderConfig `json:"decoder"`
}

// DefaultConfig returns the calibrated pipeline defaults
func DefaultConfig() *Config {
	return &Config{
		TargetSampleRate: 16000,
		MinDurationSec:   0.5,
		TrimTopDB:        30.0,
		TrimFallbackSec:  0.3,
		PitchFloorHz:     50.0,
		PitchCeilingHz:   600.0,
		Decoder:          transcode.DefaultDecoderConfig(),
	}
}
