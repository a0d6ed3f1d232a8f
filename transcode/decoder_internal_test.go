package transcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rateLessStrategy decodes any payload but cannot tell its sample rate,
// like raw PCM through the FFmpeg pipe.
type rateLessStrategy struct{}

func (s *rateLessStrategy) Name() string { return "rateless" }

func (s *rateLessStrategy) Decode(data []byte) (*AudioData, error) {
	return &AudioData{PCM: make([]float64, len(data)), Channels: 1}, nil
}

func TestDecodeBytesUnknownSampleRateIsDecodeError(t *testing.T) {
	t.Parallel()

	d := &Decoder{
		config:     DefaultDecoderConfig(),
		strategies: []DecodeStrategy{&rateLessStrategy{}},
	}

	_, err := d.DecodeBytes(make([]byte, 256), 0)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.Contains(t, err.Error(), "rateless")
}

func TestDecodeBytesDeclaredRateFallback(t *testing.T) {
	t.Parallel()

	d := &Decoder{
		config:     DefaultDecoderConfig(),
		strategies: []DecodeStrategy{&rateLessStrategy{}},
	}

	audio, err := d.DecodeBytes(make([]byte, 16000), 16000)
	require.NoError(t, err)
	assert.Equal(t, 16000, audio.SampleRate)
	assert.Equal(t, time.Second, audio.Duration)
}
