package transcode_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-voz/transcode"
)

// encodeWAV writes 16-bit PCM with the given channel layout and returns
// the file bytes
func encodeWAV(t *testing.T, interleaved []float64, rate, channels int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, len(interleaved)),
	}
	for i, s := range interleaved {
		buf.Data[i] = int(s * 32767)
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestDecodeWAVMono(t *testing.T) {
	t.Parallel()

	samples := make([]float64, 16000)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}

	decoded, err := transcode.NewDecoder(nil).DecodeBytes(encodeWAV(t, samples, 16000, 1), 0)
	require.NoError(t, err)

	assert.Equal(t, "wav", decoded.Format)
	assert.Equal(t, 16000, decoded.SampleRate)
	assert.Equal(t, 1, decoded.Channels)
	assert.Len(t, decoded.PCM, 16000)
	assert.InDelta(t, 1.0, decoded.Duration.Seconds(), 0.01)

	// Samples survive the int16 round trip within quantization error
	assert.InDelta(t, samples[100], decoded.PCM[100], 0.01)
}

func TestDecodeWAVStereoDownmix(t *testing.T) {
	t.Parallel()

	// L and R cancel exactly, so the mono mix is silence
	frames := 8000
	interleaved := make([]float64, frames*2)
	for i := 0; i < frames; i++ {
		interleaved[i*2] = 0.5
		interleaved[i*2+1] = -0.5
	}

	decoded, err := transcode.NewDecoder(nil).DecodeBytes(encodeWAV(t, interleaved, 16000, 2), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, decoded.Channels)
	assert.Len(t, decoded.PCM, frames)
	for _, s := range decoded.PCM {
		assert.InDelta(t, 0.0, s, 0.001)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := transcode.NewDecoder(nil).DecodeBytes(nil, 0)
	assert.Error(t, err)
}

func TestDecodeGarbageReportsAllStrategies(t *testing.T) {
	t.Parallel()

	_, err := transcode.NewDecoder(nil).DecodeBytes([]byte("this is not an audio container"), 0)
	require.Error(t, err)
	require.True(t, transcode.IsDecodeError(err))

	var decodeErr *transcode.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Tried, "wav")
	assert.Contains(t, decodeErr.Tried, "mp3")
	assert.Contains(t, decodeErr.Tried, "ogg")
	assert.Contains(t, decodeErr.Tried, "ffmpeg")
}
