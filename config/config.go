package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-voz/analysis"
	"github.com/RyanBlaney/sonido-voz/transcode"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxPayloadChars int    `mapstructure:"max_payload_chars"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_sec"`
}

type AnalysisConfig struct {
	TargetSampleRate int     `mapstructure:"target_sample_rate"`
	MinDurationSec   float64 `mapstructure:"min_duration_sec"`
	TrimTopDB        float64 `mapstructure:"trim_top_db"`
	TrimFallbackSec  float64 `mapstructure:"trim_fallback_sec"`
	FFmpegPath       string  `mapstructure:"ffmpeg_path"`
	FFprobePath      string  `mapstructure:"ffprobe_path"`
	DecodeTimeoutSec int     `mapstructure:"decode_timeout_sec"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	pipeline := analysis.DefaultConfig()
	return Config{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxPayloadChars: 10_000_000,
			ShutdownTimeout: 10,
		},
		Analysis: AnalysisConfig{
			TargetSampleRate: pipeline.TargetSampleRate,
			MinDurationSec:   pipeline.MinDurationSec,
			TrimTopDB:        pipeline.TrimTopDB,
			TrimFallbackSec:  pipeline.TrimFallbackSec,
			FFmpegPath:       "ffmpeg",
			FFprobePath:      "ffprobe",
			DecodeTimeoutSec: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// PipelineConfig converts the flat file/flag view into the analysis
// package's config
func (c Config) PipelineConfig() *analysis.Config {
	cfg := analysis.DefaultConfig()
	cfg.TargetSampleRate = c.Analysis.TargetSampleRate
	cfg.MinDurationSec = c.Analysis.MinDurationSec
	cfg.TrimTopDB = c.Analysis.TrimTopDB
	cfg.TrimFallbackSec = c.Analysis.TrimFallbackSec
	cfg.Decoder = &transcode.DecoderConfig{
		FFmpegPath:  c.Analysis.FFmpegPath,
		FFprobePath: c.Analysis.FFprobePath,
		Timeout:     time.Duration(c.Analysis.DecodeTimeoutSec) * time.Second,
	}
	return cfg
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-payload-chars", defaults.Server.MaxPayloadChars, "Maximum base64 payload length in characters")
	fs.Int("server-shutdown-timeout-sec", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.Int("analysis-target-sample-rate", defaults.Analysis.TargetSampleRate, "Sample rate audio is normalized to before measurement")
	fs.Float64("analysis-min-duration-sec", defaults.Analysis.MinDurationSec, "Minimum clip duration in seconds")
	fs.Float64("analysis-trim-top-db", defaults.Analysis.TrimTopDB, "Silence trim threshold in dB below peak")
	fs.Float64("analysis-trim-fallback-sec", defaults.Analysis.TrimFallbackSec, "Keep the untrimmed clip when trimming leaves less than this")
	fs.String("analysis-ffmpeg-path", defaults.Analysis.FFmpegPath, "Path to ffmpeg binary")
	fs.String("analysis-ffprobe-path", defaults.Analysis.FFprobePath, "Path to ffprobe binary")
	fs.Int("analysis-decode-timeout-sec", defaults.Analysis.DecodeTimeoutSec, "FFmpeg decode timeout in seconds")
	fs.String("logging-level", defaults.Logging.Level, "Log level (debug, info, warn, error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("VOZ")
	replacer := strings.NewReplacer("-", "_", ".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("sonidovoz")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Analysis.TargetSampleRate <= 0 {
		return fmt.Errorf("analysis.target_sample_rate must be positive, got %d", c.Analysis.TargetSampleRate)
	}
	if c.Analysis.MinDurationSec < c.Analysis.TrimFallbackSec {
		return fmt.Errorf("analysis.min_duration_sec (%.2f) must be >= analysis.trim_fallback_sec (%.2f)",
			c.Analysis.MinDurationSec, c.Analysis.TrimFallbackSec)
	}
	if c.Server.MaxPayloadChars <= 0 {
		return fmt.Errorf("server.max_payload_chars must be positive, got %d", c.Server.MaxPayloadChars)
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_payload_chars", c.Server.MaxPayloadChars)
	v.SetDefault("server.shutdown_timeout_sec", c.Server.ShutdownTimeout)
	v.SetDefault("analysis.target_sample_rate", c.Analysis.TargetSampleRate)
	v.SetDefault("analysis.min_duration_sec", c.Analysis.MinDurationSec)
	v.SetDefault("analysis.trim_top_db", c.Analysis.TrimTopDB)
	v.SetDefault("analysis.trim_fallback_sec", c.Analysis.TrimFallbackSec)
	v.SetDefault("analysis.ffmpeg_path", c.Analysis.FFmpegPath)
	v.SetDefault("analysis.ffprobe_path", c.Analysis.FFprobePath)
	v.SetDefault("analysis.decode_timeout_sec", c.Analysis.DecodeTimeoutSec)
	v.SetDefault("logging.level", c.Logging.Level)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_payload_chars", "server-max-payload-chars")
	v.RegisterAlias("server.shutdown_timeout_sec", "server-shutdown-timeout-sec")
	v.RegisterAlias("analysis.target_sample_rate", "analysis-target-sample-rate")
	v.RegisterAlias("analysis.min_duration_sec", "analysis-min-duration-sec")
	v.RegisterAlias("analysis.trim_top_db", "analysis-trim-top-db")
	v.RegisterAlias("analysis.trim_fallback_sec", "analysis-trim-fallback-sec")
	v.RegisterAlias("analysis.ffmpeg_path", "analysis-ffmpeg-path")
	v.RegisterAlias("analysis.ffprobe_path", "analysis-ffprobe-path")
	v.RegisterAlias("analysis.decode_timeout_sec", "analysis-decode-timeout-sec")
	v.RegisterAlias("logging.level", "logging-level")
}
