package transcode

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// WAVStrategy decodes RIFF/WAVE payloads with go-audio
type WAVStrategy struct{}

func (s *WAVStrategy) Name() string { return "wav" }

func (s *WAVStrategy) Decode(data []byte) (*AudioData, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav pcm read: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("wav file contains no samples")
	}

	bitDepth := int(d.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	pcm := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		pcm[i] = float64(v) / scale
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		Format:     s.Name(),
	}, nil
}

// MP3Strategy decodes MPEG audio with go-mp3. The decoder always yields
// 16-bit little-endian stereo.
type MP3Strategy struct{}

func (s *MP3Strategy) Name() string { return "mp3" }

func (s *MP3Strategy) Decode(data []byte) (*AudioData, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3 header: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 stream: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("mp3 stream contains no samples")
	}

	frames := len(raw) / 4
	pcm := make([]float64, frames*2)
	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		right := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		pcm[i*2] = float64(left) / 32768.0
		pcm[i*2+1] = float64(right) / 32768.0
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: dec.SampleRate(),
		Channels:   2,
		Format:     s.Name(),
	}, nil
}

// OggStrategy decodes Ogg/Vorbis payloads
type OggStrategy struct{}

func (s *OggStrategy) Name() string { return "ogg" }

func (s *OggStrategy) Decode(data []byte) (*AudioData, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ogg/vorbis: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("ogg stream contains no samples")
	}

	pcm := make([]float64, len(samples))
	for i, v := range samples {
		pcm[i] = float64(v)
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Format:     s.Name(),
	}, nil
}

// FFmpegStrategy shells out to FFmpeg for formats without a pure-Go
// decoder (webm, m4a) and as the final catch-all probe.
type FFmpegStrategy struct {
	Path      string
	ProbePath string
	Timeout   time.Duration
}

func (s *FFmpegStrategy) Name() string { return "ffmpeg" }

func (s *FFmpegStrategy) Decode(data []byte) (*AudioData, error) {
	sampleRate, channels, err := s.probe(data)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
	defer cancel()

	// Decode to raw float64 at the native rate; resampling happens in
	// the analysis pipeline, not here
	cmd := exec.CommandContext(ctx, s.path(),
		"-v", "error",
		"-i", "pipe:0",
		"-vn",
		"-f", "f64le",
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(sampleRate),
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(data)

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffmpeg decode failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	pcm := bytesToFloat64(output)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio samples decoded")
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		Format:     s.Name(),
	}, nil
}

// probe runs ffprobe over the payload to learn the native sample rate
// and channel count
func (s *FFmpegStrategy) probe(data []byte) (sampleRate, channels int, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, s.probePath(),
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		"pipe:0",
	)
	cmd.Stdin = bytes.NewReader(data)

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return 0, 0, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return 0, 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return 0, 0, fmt.Errorf("no audio streams found")
	}

	stream := probe.Streams[0]
	if stream.CodecType != "audio" {
		return 0, 0, fmt.Errorf("stream is not audio type: %s", stream.CodecType)
	}

	sampleRate, err = strconv.Atoi(stream.SampleRate)
	if err != nil || sampleRate <= 0 {
		return 0, 0, fmt.Errorf("invalid sample rate %q", stream.SampleRate)
	}
	if stream.Channels <= 0 || stream.Channels > 8 {
		return 0, 0, fmt.Errorf("invalid channel count: %d", stream.Channels)
	}

	return sampleRate, stream.Channels, nil
}

func (s *FFmpegStrategy) path() string {
	if s.Path == "" {
		return "ffmpeg"
	}
	return s.Path
}

func (s *FFmpegStrategy) probePath() string {
	if s.ProbePath == "" {
		return "ffprobe"
	}
	return s.ProbePath
}

func (s *FFmpegStrategy) timeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return s.Timeout
}

// bytesToFloat64 converts raw little-endian float64 bytes to samples
func bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		data = data[:len(data)-(len(data)%8)]
	}
	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)
	for i := 0; i < sampleCount; i++ {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return samples
}
