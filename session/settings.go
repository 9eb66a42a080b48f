package session

import "math"

import "github.com/neurlang/sonify"
import "github.com/neurlang/sonify/grid"
import "github.com/neurlang/sonify/synth"

// Settings are the user-adjustable synthesis controls.
type Settings struct {
	MaxSize     int     // image edge in pixels
	Density     float64 // grid edge = MaxSize / Density
	Duration    float64 // seconds of audio for the whole image
	MinFreq     float64 // Hz
	MaxFreq     float64 // Hz
	SampleRate  int
	Threshold   float64
	Mode        synth.Mode
	Orientation synth.Orientation
}

// Limits of the adjustable settings.
const (
	MinMaxSize  = 64
	MaxMaxSize  = 1024
	MinDensity  = 0.1
	MaxDensity  = 10.0
	MinDuration = 1.0
	MaxDuration = 20.0
	MinMinFreq  = 20.0
	MaxMinFreq  = 1000.0
	MinMaxFreq  = 1000.0
	MaxMaxFreq  = 20000.0
)

// DefaultSettings returns a 256 pixel image over six seconds between 200 and 8000 Hz.
func DefaultSettings() Settings {
	p := synth.NewParams()
	return Settings{
		MaxSize:     256,
		Density:     1,
		Duration:    6,
		MinFreq:     p.MinFrequency,
		MaxFreq:     p.MaxFrequency,
		SampleRate:  p.SampleRate,
		Threshold:   p.AmplitudeThreshold,
		Mode:        p.Mode,
		Orientation: p.Orientation,
	}
}

func within(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return sonify.Invalid(name, v, "out of range")
	}
	return nil
}

// Validate checks every setting against its range.
func (s Settings) Validate() error {
	if err := within("maxSize", float64(s.MaxSize), MinMaxSize, MaxMaxSize); err != nil {
		return err
	}
	if err := within("density", s.Density, MinDensity, MaxDensity); err != nil {
		return err
	}
	if err := within("duration", s.Duration, MinDuration, MaxDuration); err != nil {
		return err
	}
	if err := within("minFrequency", s.MinFreq, MinMinFreq, MaxMinFreq); err != nil {
		return err
	}
	if err := within("maxFrequency", s.MaxFreq, MinMaxFreq, MaxMaxFreq); err != nil {
		return err
	}
	if s.MaxFreq <= s.MinFreq {
		return sonify.Invalid("maxFrequency", s.MaxFreq, "must be greater than minFrequency")
	}
	w := s.Width()
	return s.Params(w).Validate(w, w)
}

// Width returns the edge of the square grid the image is sampled into.
func (s Settings) Width() int {
	return grid.Size(s.MaxSize, s.Density)
}

// Params spreads Duration over width columns.
func (s Settings) Params(width int) *synth.Params {
	p := synth.NewParams()
	p.SampleRate = s.SampleRate
	p.DurationPerColumn = s.Duration / float64(max(1, width))
	p.MinFrequency = s.MinFreq
	p.MaxFrequency = s.MaxFreq
	p.AmplitudeThreshold = s.Threshold
	p.Mode = s.Mode
	p.Orientation = s.Orientation
	return p
}
