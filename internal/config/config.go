// Package config loads prompter settings from the config file, a .env file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFontSize    = 16
	DefaultTextColor   = "#F5F5F5"
	DefaultBackground  = "#1E1E1E"
	DefaultMaxDuration = 5 * time.Minute
	DefaultSampleRate  = 44100
	DefaultFFmpeg      = "ffmpeg"
	DefaultLogLevel    = "info"
)

type Config struct {
	Style struct {
		FontSize   int    `yaml:"font_size"`
		TextColor  string `yaml:"text_color"`
		Background string `yaml:"background"`
	} `yaml:"style"`

	Capture struct {
		Device        string        `yaml:"device"`
		MaxDuration   time.Duration `yaml:"max_duration"`
		SampleRate    int           `yaml:"sample_rate"`
		FFmpeg        string        `yaml:"ffmpeg"`
		InputFormat   string        `yaml:"input_format"`
		RecordingsDir string        `yaml:"recordings_dir"`
	} `yaml:"capture"`

	AutoAdvance bool   `yaml:"auto_advance"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns a Config with every field populated.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path when it exists, then applies a .env file
// from the working directory and PROMPTER_* environment overrides.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()

	cfg.Style.FontSize = envInt("PROMPTER_FONT_SIZE", cfg.Style.FontSize)
	cfg.Style.TextColor = envOr("PROMPTER_TEXT_COLOR", cfg.Style.TextColor)
	cfg.Style.Background = envOr("PROMPTER_BACKGROUND", cfg.Style.Background)
	cfg.Capture.Device = envOr("PROMPTER_DEVICE", cfg.Capture.Device)
	cfg.Capture.MaxDuration = envDuration("PROMPTER_MAX_DURATION", cfg.Capture.MaxDuration)
	cfg.Capture.SampleRate = envInt("PROMPTER_SAMPLE_RATE", cfg.Capture.SampleRate)
	cfg.Capture.FFmpeg = envOr("PROMPTER_FFMPEG", cfg.Capture.FFmpeg)
	cfg.Capture.InputFormat = envOr("PROMPTER_INPUT_FORMAT", cfg.Capture.InputFormat)
	cfg.Capture.RecordingsDir = envOr("PROMPTER_RECORDINGS_DIR", cfg.Capture.RecordingsDir)
	cfg.AutoAdvance = envBool("PROMPTER_AUTO_ADVANCE", cfg.AutoAdvance)
	cfg.LogLevel = envOr("PROMPTER_LOG_LEVEL", cfg.LogLevel)

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Style.FontSize <= 0 {
		c.Style.FontSize = DefaultFontSize
	}
	if c.Style.TextColor == "" {
		c.Style.TextColor = DefaultTextColor
	}
	if c.Style.Background == "" {
		c.Style.Background = DefaultBackground
	}
	if c.Capture.MaxDuration <= 0 {
		c.Capture.MaxDuration = DefaultMaxDuration
	}
	if c.Capture.SampleRate <= 0 {
		c.Capture.SampleRate = DefaultSampleRate
	}
	if c.Capture.FFmpeg == "" {
		c.Capture.FFmpeg = DefaultFFmpeg
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
