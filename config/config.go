// Package config loads the YAML configuration shared by the sonify commands.
package config

import "fmt"
import "os"
import "strings"
import "time"

import "gopkg.in/yaml.v3"

import "github.com/neurlang/sonify"
import "github.com/neurlang/sonify/grid"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/plot"
import "github.com/neurlang/sonify/session"
import "github.com/neurlang/sonify/spectrogram"
import "github.com/neurlang/sonify/synth"

// Config is the top-level configuration.
type Config struct {
	Synth    SynthConfig    `yaml:"synth"`
	Image    ImageConfig    `yaml:"image"`
	Sound    SoundConfig    `yaml:"sound"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Plot     PlotConfig     `yaml:"plot"`
	Playback PlaybackConfig `yaml:"playback"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// SynthConfig configures the synthesizer.
type SynthConfig struct {
	SampleRate int `yaml:"sample_rate"`
	// Threshold is the amplitude at or below which a row stays silent.
	// A pointer so that an explicit 0 disables thresholding.
	Threshold   *float64 `yaml:"threshold"`
	Mode        string   `yaml:"mode"`        // sparse or dense
	Orientation string   `yaml:"orientation"` // top-high or top-low
}

// ImageConfig configures image sampling.
type ImageConfig struct {
	MaxSize int     `yaml:"max_size"`
	Density float64 `yaml:"density"`
	Scaler  string  `yaml:"scaler"` // catmullrom, bilinear, approxbilinear, nearest
}

// SoundConfig configures the audible result.
type SoundConfig struct {
	Duration float64 `yaml:"duration"` // seconds
	MinFreq  float64 `yaml:"min_freq"`
	MaxFreq  float64 `yaml:"max_freq"`
}

// AnalysisConfig configures the spectrogram.
type AnalysisConfig struct {
	Window  int      `yaml:"window"`
	Overlap *float64 `yaml:"overlap"`
}

// PlotConfig sizes rendered plots.
type PlotConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	MaxFrequency float64 `yaml:"max_frequency"` // 0 plots up to Nyquist
}

// PlaybackConfig selects the audio backend.
type PlaybackConfig struct {
	Backend  string `yaml:"backend"` // speaker or malgo
	BufferMs int    `yaml:"buffer_ms"`
}

// UIConfig configures the interactive front end.
type UIConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file and expands ${VAR} references
// from the environment.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	setDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// setDefaults fills every unset field.
func setDefaults(cfg *Config) {
	d := session.DefaultSettings()
	if cfg.Synth.SampleRate == 0 {
		cfg.Synth.SampleRate = d.SampleRate
	}
	if cfg.Synth.Threshold == nil {
		v := d.Threshold
		cfg.Synth.Threshold = &v
	}
	if cfg.Synth.Mode == "" {
		cfg.Synth.Mode = synth.ModeSparse.String()
	}
	if cfg.Synth.Orientation == "" {
		cfg.Synth.Orientation = "top-high"
	}
	if cfg.Image.MaxSize == 0 {
		cfg.Image.MaxSize = d.MaxSize
	}
	if cfg.Image.Density == 0 {
		cfg.Image.Density = d.Density
	}
	if cfg.Image.Scaler == "" {
		cfg.Image.Scaler = "catmullrom"
	}
	if cfg.Sound.Duration == 0 {
		cfg.Sound.Duration = d.Duration
	}
	if cfg.Sound.MinFreq == 0 {
		cfg.Sound.MinFreq = d.MinFreq
	}
	if cfg.Sound.MaxFreq == 0 {
		cfg.Sound.MaxFreq = d.MaxFreq
	}
	if cfg.Analysis.Window == 0 {
		cfg.Analysis.Window = spectrogram.DefaultWindow
	}
	if cfg.Analysis.Overlap == nil {
		v := spectrogram.New().Overlap
		cfg.Analysis.Overlap = &v
	}
	p := plot.DefaultOptions()
	if cfg.Plot.Width == 0 {
		cfg.Plot.Width = p.Width
	}
	if cfg.Plot.Height == 0 {
		cfg.Plot.Height = p.Height
	}
	if cfg.Playback.Backend == "" {
		cfg.Playback.Backend = "speaker"
	}
	if cfg.Playback.BufferMs == 0 {
		cfg.Playback.BufferMs = 100
	}
	if cfg.UI.DebounceMs == 0 {
		cfg.UI.DebounceMs = int(session.DefaultDelay / time.Millisecond)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return err
	}
	if _, ok := grid.ScalerByName(c.Image.Scaler); !ok {
		return fmt.Errorf("%w: unknown scaler %q", sonify.ErrInvalidParameters, c.Image.Scaler)
	}
	if c.Analysis.Window <= 0 {
		return sonify.Invalid("analysis.window", float64(c.Analysis.Window), "must be positive")
	}
	if o := *c.Analysis.Overlap; !(o >= 0 && o < 1) {
		return sonify.Invalid("analysis.overlap", o, "must be within [0, 1)")
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return sonify.Invalid("plot.width", float64(c.Plot.Width), "plot size must be positive")
	}
	if c.Plot.MaxFrequency < 0 {
		return sonify.Invalid("plot.max_frequency", c.Plot.MaxFrequency, "must not be negative")
	}
	switch strings.ToLower(c.Playback.Backend) {
	case "speaker", "beep", "malgo", "miniaudio":
	default:
		return fmt.Errorf("%w: unknown playback backend %q", sonify.ErrInvalidParameters, c.Playback.Backend)
	}
	if c.Playback.BufferMs < 0 {
		return sonify.Invalid("playback.buffer_ms", float64(c.Playback.BufferMs), "must not be negative")
	}
	if c.UI.DebounceMs < 0 {
		return sonify.Invalid("ui.debounce_ms", float64(c.UI.DebounceMs), "must not be negative")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", sonify.ErrInvalidParameters, err)
	}
	return nil
}

// Settings returns the validated synthesis settings.
func (c *Config) Settings() (session.Settings, error) {
	mode, ok := synth.ParseMode(c.Synth.Mode)
	if !ok {
		return session.Settings{}, fmt.Errorf("%w: unknown synthesis mode %q", sonify.ErrInvalidParameters, c.Synth.Mode)
	}
	orientation, ok := synth.ParseOrientation(c.Synth.Orientation)
	if !ok {
		return session.Settings{}, fmt.Errorf("%w: unknown orientation %q", sonify.ErrInvalidParameters, c.Synth.Orientation)
	}
	threshold := synth.DefaultThreshold
	if c.Synth.Threshold != nil {
		threshold = *c.Synth.Threshold
	}
	s := session.Settings{
		MaxSize:     c.Image.MaxSize,
		Density:     c.Image.Density,
		Duration:    c.Sound.Duration,
		MinFreq:     c.Sound.MinFreq,
		MaxFreq:     c.Sound.MaxFreq,
		SampleRate:  c.Synth.SampleRate,
		Threshold:   threshold,
		Mode:        mode,
		Orientation: orientation,
	}
	if err := s.Validate(); err != nil {
		return session.Settings{}, err
	}
	return s, nil
}

// Sampler returns the image resampling options.
func (c *Config) Sampler() grid.Options {
	scaler, _ := grid.ScalerByName(c.Image.Scaler)
	return grid.Options{Scaler: scaler}
}

// Analyzer returns the spectrogram configuration.
func (c *Config) Analyzer() *spectrogram.Analyzer {
	a := spectrogram.New()
	a.Window = c.Analysis.Window
	if c.Analysis.Overlap != nil {
		a.Overlap = *c.Analysis.Overlap
	}
	return a
}

// PlotOptions returns the plot size.
func (c *Config) PlotOptions() plot.Options {
	return plot.Options{Width: c.Plot.Width, Height: c.Plot.Height, MaxFrequency: c.Plot.MaxFrequency}
}

// PlaybackBuffer returns the device buffer length.
func (c *Config) PlaybackBuffer() time.Duration {
	return time.Duration(c.Playback.BufferMs) * time.Millisecond
}

// Debounce returns the quiet period before a changed setting is rendered.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMs) * time.Millisecond
}

// Logger returns the logger configuration.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
	}
}
