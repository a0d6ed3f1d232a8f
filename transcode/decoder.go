package transcode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RyanBlaney/sonido-voz/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono PCM samples
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Always 1 after downmix
	Duration   time.Duration `json:"duration"`
	Format     string        `json:"format"` // Name of the strategy that decoded the payload
}

// DecodeError reports that no decode strategy accepted the payload
type DecodeError struct {
	Tried  []string
	Causes []error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("no decoder matched audio payload (tried %s)", strings.Join(e.Tried, ", "))
}

func (e *DecodeError) Unwrap() []error {
	return e.Causes
}

// IsDecodeError reports whether err is a payload-format failure
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// DecodeStrategy decodes one container format. Strategies are tried in
// priority order; the first success wins.
type DecodeStrategy interface {
	Name() string
	Decode(data []byte) (*AudioData, error)
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	FFmpegPath  string        `json:"ffmpeg_path"`  // Path to ffmpeg binary
	FFprobePath string        `json:"ffprobe_path"` // Path to ffprobe binary
	Timeout     time.Duration `json:"timeout"`      // Timeout for ffmpeg operations
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		FFmpegPath:  "ffmpeg",  // Assume in PATH
		FFprobePath: "ffprobe", // Assume in PATH
		Timeout:     30 * time.Second,
	}
}

// Decoder turns an audio payload of unknown container format into mono
// PCM. Pure-Go strategies (wav, mp3, ogg) are tried first; an FFmpeg
// pipe handles webm/m4a and anything else FFmpeg can probe.
type Decoder struct {
	config     *DecoderConfig
	strategies []DecodeStrategy
}

// NewDecoder creates a decoder with the standard strategy order
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}

	return &Decoder{
		config: config,
		strategies: []DecodeStrategy{
			&WAVStrategy{},
			&MP3Strategy{},
			&OggStrategy{},
			&FFmpegStrategy{Path: config.FFmpegPath, ProbePath: config.FFprobePath, Timeout: config.Timeout},
		},
	}
}

// DecodeBytes decodes an audio payload and downmixes it to mono.
// declaredRate is used only when the winning strategy cannot determine
// the sample rate itself (raw PCM through FFmpeg); 0 means unknown.
func (d *Decoder) DecodeBytes(data []byte, declaredRate int) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"data_size": len(data),
	})

	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio data")
	}

	decodeErr := &DecodeError{}
	for _, strategy := range d.strategies {
		audio, err := strategy.Decode(data)
		if err != nil {
			logger.Debug("decode strategy rejected payload", logging.Fields{
				"strategy": strategy.Name(),
				"reason":   err.Error(),
			})
			decodeErr.Tried = append(decodeErr.Tried, strategy.Name())
			decodeErr.Causes = append(decodeErr.Causes, fmt.Errorf("%s: %w", strategy.Name(), err))
			continue
		}

		if audio.SampleRate <= 0 {
			audio.SampleRate = declaredRate
		}
		if audio.SampleRate <= 0 {
			// Still a payload problem: treat it like a strategy
			// rejection so callers see a DecodeError.
			logger.Debug("decode strategy produced unknown sample rate", logging.Fields{
				"strategy": strategy.Name(),
			})
			decodeErr.Tried = append(decodeErr.Tried, strategy.Name())
			decodeErr.Causes = append(decodeErr.Causes, fmt.Errorf("%s: unknown sample rate", strategy.Name()))
			continue
		}

		if audio.Channels > 1 {
			audio.PCM = downmix(audio.PCM, audio.Channels)
			audio.Channels = 1
		}
		audio.Duration = time.Duration(len(audio.PCM)) * time.Second / time.Duration(audio.SampleRate)

		logger.Debug("audio decoded", logging.Fields{
			"strategy":    strategy.Name(),
			"sample_rate": audio.SampleRate,
			"samples":     len(audio.PCM),
			"duration":    audio.Duration.Seconds(),
		})

		return audio, nil
	}

	return nil, decodeErr
}

// downmix averages interleaved channels into a mono signal
func downmix(interleaved []float64, channels int) []float64 {
	frames := len(interleaved) / channels
	mono := make([]float64, frames)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}

	return mono
}
