package analysis_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-voz/analysis"
	"github.com/RyanBlaney/sonido-voz/transcode"
)

const testSampleRate = 16000

func sineAt(freq, seconds, amplitude float64) []float64 {
	n := int(seconds * testSampleRate)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/testSampleRate)
	}
	return signal
}

// wavBytes encodes samples as a 16-bit mono WAV payload
func wavBytes(t *testing.T, samples []float64, rate int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s * 32767)
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestAnalyzePureToneEndToEnd(t *testing.T) {
	t.Parallel()

	payload := wavBytes(t, sineAt(440, 2.0, 0.5), testSampleRate)
	report, err := analysis.NewAnalyzer(nil).AnalyzeBytes(payload, 0)
	require.NoError(t, err)

	assert.InDelta(t, 440, report.Analysis.PitchMeanHz, 5)
	assert.InDelta(t, 440, report.Analysis.PitchRangeHz[0], 10)
	assert.InDelta(t, 440, report.Analysis.PitchRangeHz[1], 10)
	assert.Equal(t, analysis.VoiceSoprano, report.VoiceType)

	// A stationary tone carries no percussive content; the ratio reports
	// the fixed ceiling instead of a divide-by-near-zero blowup
	assert.Equal(t, 30.0, report.Analysis.HarmonicRatioDB)

	for name, v := range map[string]int{
		"clarity":        report.Scores.Clarity,
		"stability":      report.Scores.Stability,
		"warmth":         report.Scores.Warmth,
		"expressiveness": report.Scores.Expressiveness,
		"listenability":  report.Scores.Listenability,
		"overall":        report.Scores.Overall,
	} {
		assert.GreaterOrEqual(t, v, 55, name)
		assert.LessOrEqual(t, v, 100, name)
	}

	assert.Equal(t, "ja", report.LanguageDetected)
	assert.InDelta(t, 2.0, report.Analysis.DurationSec, 0.15)
	assert.GreaterOrEqual(t, report.Analysis.SNRDB, 0.0)
	assert.LessOrEqual(t, report.Analysis.SNRDB, 60.0)
}

func TestAnalyzeResamplesHighRateInput(t *testing.T) {
	t.Parallel()

	// 1 second at 32 kHz; the pipeline normalizes to 16 kHz before
	// measuring, so pitch lands in the same place
	n := 32000
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/32000)
	}

	report, err := analysis.NewAnalyzer(nil).AnalyzeBytes(wavBytes(t, samples, 32000), 0)
	require.NoError(t, err)

	assert.InDelta(t, 220, report.Analysis.PitchMeanHz, 5)
	assert.InDelta(t, 1.0, report.Analysis.DurationSec, 0.15)
}

func TestAnalyzeTooShortClip(t *testing.T) {
	t.Parallel()

	payload := wavBytes(t, sineAt(440, 0.3, 0.5), testSampleRate)
	_, err := analysis.NewAnalyzer(nil).AnalyzeBytes(payload, 0)
	assert.ErrorIs(t, err, analysis.ErrTooShort)
}

func TestAnalyzeEmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := analysis.NewAnalyzer(nil).AnalyzeBytes(nil, 0)
	assert.ErrorIs(t, err, analysis.ErrEmptyPayload)
}

func TestAnalyzeUndecodablePayload(t *testing.T) {
	t.Parallel()

	_, err := analysis.NewAnalyzer(nil).AnalyzeBytes([]byte("definitely not audio data"), 0)
	require.Error(t, err)
	assert.True(t, transcode.IsDecodeError(err))
}

func TestAnalyzeTrimFallbackKeepsQuietClip(t *testing.T) {
	t.Parallel()

	// 1s clip, almost all silence with a 0.05s voiced burst. Trimming
	// would leave under 0.3s, so the untrimmed clip must be analyzed.
	samples := make([]float64, testSampleRate)
	burst := sineAt(200, 0.05, 0.5)
	copy(samples[int(0.45*testSampleRate):], burst)

	report, err := analysis.NewAnalyzer(nil).AnalyzeBytes(wavBytes(t, samples, testSampleRate), 0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.Analysis.DurationSec, 0.05)
}

func TestAnalyzerHonorsCustomLanguageDetector(t *testing.T) {
	t.Parallel()

	a := analysis.NewAnalyzer(nil)
	a.SetLanguageDetector(stubDetector("en"))

	report, err := a.AnalyzeBytes(wavBytes(t, sineAt(300, 1.0, 0.5), testSampleRate), 0)
	require.NoError(t, err)
	assert.Equal(t, "en", report.LanguageDetected)
}

type stubDetector string

func (s stubDetector) Detect(_ []float64, _ int) string { return string(s) }
