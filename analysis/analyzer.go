package analysis

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-voz/algorithms/common"
	"github.com/RyanBlaney/sonido-voz/algorithms/spectral"
	"github.com/RyanBlaney/sonido-voz/algorithms/speech"
	"github.com/RyanBlaney/sonido-voz/algorithms/temporal"
	"github.com/RyanBlaney/sonido-voz/logging"
	"github.com/RyanBlaney/sonido-voz/transcode"
)

const (
	stftWindowSize = 2048
	stftHopSize    = 512

	// Relative floor below which percussive energy is treated as zero.
	// A pure tone leaks a sliver of energy into the percussive mask, so
	// an absolute zero check would never fire.
	percussiveFloor = 1e-4

	// Fixed ceiling reported when a clip has no percussive content
	pureHarmonicDB = 30.0
)

// Analyzer runs the full voice-quality pipeline: decode, normalize,
// measure, score, classify. Stateless across requests; one Analyzer is
// safe for concurrent use.
type Analyzer struct {
	config   *Config
	decoder  *transcode.Decoder
	detector LanguageDetector
}

// NewAnalyzer creates an analyzer. A nil config uses DefaultConfig.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Analyzer{
		config:   config,
		decoder:  transcode.NewDecoder(config.Decoder),
		detector: &HeuristicDetector{},
	}
}

// SetLanguageDetector swaps in a different language-ID collaborator
func (a *Analyzer) SetLanguageDetector(d LanguageDetector) {
	if d != nil {
		a.detector = d
	}
}

// AnalyzeBytes decodes an audio payload, normalizes it and produces a
// full quality report. declaredRate is the caller's optional sample
// rate hint (0 means unknown).
func (a *Analyzer) AnalyzeBytes(data []byte, declaredRate int) (*Report, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	audio, err := a.decoder.DecodeBytes(data, declaredRate)
	if err != nil {
		return nil, err
	}

	signal, err := a.normalize(audio)
	if err != nil {
		return nil, err
	}

	m := a.Measure(signal, a.config.TargetSampleRate)
	scores := ComputeScores(m)
	voiceType := ClassifyVoiceType(m.PitchMeanHz)
	language := a.detector.Detect(signal, a.config.TargetSampleRate)

	return &Report{
		Scores: scores,
		Analysis: ReportAnalysis{
			PitchMeanHz:           m.PitchMeanHz,
			PitchRangeHz:          [2]float64{m.PitchMinHz, m.PitchMaxHz},
			SNRDB:                 common.Round(m.SNRDB, 1),
			JitterPercent:         m.JitterPercent,
			ShimmerPercent:        m.ShimmerPercent,
			SpeakingRateSylPerSec: m.SpeakingRateSylPerSec,
			SpectralCentroidHz:    common.Round(m.SpectralCentroidHz, 0),
			HarmonicRatioDB:       common.Round(m.HarmonicRatioDB, 1),
			DynamicRangeDB:        common.Round(m.DynamicRangeDB, 1),
			DurationSec:           m.DurationSec,
		},
		VoiceType:        voiceType,
		LanguageDetected: language,
	}, nil
}

// normalize resamples to the target rate, enforces the minimum
// duration and trims leading/trailing silence. When trimming leaves
// too little audio the untrimmed signal is kept; a quiet-but-valid
// clip should not fail because the trimmer ate it.
func (a *Analyzer) normalize(audio *transcode.AudioData) ([]float64, error) {
	rate := a.config.TargetSampleRate
	signal := audio.PCM
	if audio.SampleRate != rate {
		signal = common.NewResampler().Resample(signal, audio.SampleRate, rate)
	}

	duration := float64(len(signal)) / float64(rate)
	if duration < a.config.MinDurationSec {
		return nil, fmt.Errorf("%w: %.2fs (minimum %.1fs)", ErrTooShort, duration, a.config.MinDurationSec)
	}

	trimmed := temporal.NewSilenceTrimmer().Trim(signal, a.config.TrimTopDB)
	if float64(len(trimmed))/float64(rate) < a.config.TrimFallbackSec {
		trimmed = signal
	}

	return trimmed, nil
}

// Measure computes the raw acoustic measurement vector over a
// normalized mono signal. Pitch, jitter, shimmer, speaking rate and
// duration are rounded to their reported precision here because the
// score formulas are calibrated against the rounded values; the
// spectral and energy metrics stay raw until report assembly.
func (a *Analyzer) Measure(signal []float64, sampleRate int) *Measurements {
	logger := logging.WithFields(logging.Fields{
		"component":   "analyzer",
		"samples":     len(signal),
		"sample_rate": sampleRate,
	})

	m := &Measurements{
		DurationSec: common.Round(float64(len(signal))/float64(sampleRate), 2),
	}

	tracker := speech.NewPitchTrackerRange(sampleRate, a.config.PitchFloorHz, a.config.PitchCeilingHz)
	contour := tracker.Track(signal)
	stats := tracker.Stats(contour)
	m.PitchMeanHz = common.Round(stats.MeanHz, 1)
	m.PitchMinHz = common.Round(stats.MinHz, 1)
	m.PitchMaxHz = common.Round(stats.MaxHz, 1)
	m.PitchStdHz = common.Round(stats.StdHz, 2)

	// Perturbation extraction can fail on aperiodic signals; report
	// zeros and keep going
	if vq, err := speech.NewVoiceQualityAnalyzer(sampleRate).Analyze(signal); err == nil {
		m.JitterPercent = common.Round(vq.JitterPercent, 2)
		m.ShimmerPercent = common.Round(vq.ShimmerPercent, 2)
	} else {
		logger.Debug("jitter/shimmer extraction failed", logging.Fields{"reason": err.Error()})
	}

	m.SpeakingRateSylPerSec = common.Round(temporal.NewSyllableRate(sampleRate).Estimate(signal), 1)
	m.SNRDB = temporal.NewSNREstimator(sampleRate).Estimate(signal)
	m.DynamicRangeDB = temporal.NewDynamicRange(sampleRate).Compute(signal)

	if stft, err := spectral.NewSTFT().Compute(signal, stftWindowSize, stftHopSize, sampleRate); err == nil {
		m.SpectralFlatness = spectral.NewSpectralFlatness().ComputeMean(stft.Magnitude)
		m.SpectralCentroidHz = spectral.NewSpectralCentroid(sampleRate).ComputeMean(stft.Magnitude)
	} else {
		logger.Warn("short-time spectral analysis failed", logging.Fields{"reason": err.Error()})
	}

	m.HarmonicRatioDB = a.harmonicRatio(signal, sampleRate, logger)

	logger.Debug("measurements computed", logging.Fields{
		"pitch_mean_hz": m.PitchMeanHz,
		"snr_db":        m.SNRDB,
		"voiced_frames": stats.Voiced,
	})

	return m
}

// harmonicRatio separates harmonic and percussive energy and reports
// their ratio in dB, clamped to [0,40]. A clip with essentially no
// percussive energy reports the fixed ceiling instead of a blown-up
// ratio.
func (a *Analyzer) harmonicRatio(signal []float64, sampleRate int, logger logging.Logger) float64 {
	hp, err := spectral.NewHPSS().Separate(signal, sampleRate)
	if err != nil {
		logger.Warn("harmonic/percussive separation failed", logging.Fields{"reason": err.Error()})
		return 0.0
	}

	if hp.PercussiveEnergy <= hp.HarmonicEnergy*percussiveFloor {
		return pureHarmonicDB
	}

	ratio := 10 * math.Log10(hp.HarmonicEnergy/hp.PercussiveEnergy)
	return common.Clamp(ratio, 0, 40)
}
