package synth

import "math"

import "github.com/neurlang/sonify"

// Mode selects how the per-column sum is evaluated.
type Mode int

const (
	// ModeSparse skips rows at or below the amplitude threshold.
	ModeSparse Mode = iota
	// ModeDense sums all rows as a matrix-vector product, ignoring the threshold.
	ModeDense
)

func (m Mode) String() string {
	switch m {
	case ModeSparse:
		return "sparse"
	case ModeDense:
		return "dense"
	}
	return "unknown"
}

// ParseMode maps "sparse" or "dense" to a Mode; empty means sparse.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "sparse":
		return ModeSparse, true
	case "dense":
		return ModeDense, true
	}
	return ModeSparse, false
}

// Orientation selects which end of the grid plays the highest frequency.
type Orientation int

const (
	// TopHigh gives the top row the highest frequency.
	TopHigh Orientation = iota
	// TopLow gives the top row the lowest frequency.
	TopLow
)

// ParseOrientation maps "top-high" or "top-low" to an Orientation; empty means top-high.
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "", "top-high":
		return TopHigh, true
	case "top-low":
		return TopLow, true
	}
	return TopHigh, false
}

// Params configures a synthesis call.
type Params struct {
	SampleRate         int     // Hz
	DurationPerColumn  float64 // seconds
	MinFrequency       float64 // Hz
	MaxFrequency       float64 // Hz
	AmplitudeThreshold float64 // samples at or below contribute no tone in ModeSparse
	Mode               Mode
	Orientation        Orientation
}

// DefaultThreshold is the amplitude at or below which a row is silent in ModeSparse.
const DefaultThreshold = 0.01

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		SampleRate:         44100,
		DurationPerColumn:  0.02,
		MinFrequency:       200,
		MaxFrequency:       8000,
		AmplitudeThreshold: DefaultThreshold,
	}
}

// SamplesPerColumn is round(SampleRate × DurationPerColumn).
func (p *Params) SamplesPerColumn() int {
	return int(math.Round(float64(p.SampleRate) * p.DurationPerColumn))
}

// Validate checks p against a rows×cols grid.
func (p *Params) Validate(rows, cols int) error {
	if p.SampleRate <= 0 {
		return sonify.Invalid("sampleRate", float64(p.SampleRate), "must be positive")
	}
	if !(p.DurationPerColumn > 0) || math.IsInf(p.DurationPerColumn, 0) {
		return sonify.Invalid("durationPerColumn", p.DurationPerColumn, "must be positive")
	}
	if rows < 1 {
		return sonify.Invalid("rows", float64(rows), "must be at least 1")
	}
	if cols < 1 {
		return sonify.Invalid("columns", float64(cols), "must be at least 1")
	}
	if !(p.MinFrequency > 0) || math.IsInf(p.MinFrequency, 0) {
		return sonify.Invalid("minFrequency", p.MinFrequency, "must be positive")
	}
	if !(p.MaxFrequency > p.MinFrequency) || math.IsInf(p.MaxFrequency, 0) {
		return sonify.Invalid("maxFrequency", p.MaxFrequency, "must be greater than minFrequency")
	}
	if !(p.AmplitudeThreshold >= 0) {
		return sonify.Invalid("amplitudeThreshold", p.AmplitudeThreshold, "must not be negative")
	}
	if n := p.SamplesPerColumn(); n < 1 {
		return sonify.Invalid("samplesPerColumn", float64(n), "sampleRate × durationPerColumn must round to at least 1")
	}
	if p.Mode != ModeSparse && p.Mode != ModeDense {
		return sonify.Invalid("mode", float64(p.Mode), "unknown synthesis mode")
	}
	if p.Orientation != TopHigh && p.Orientation != TopLow {
		return sonify.Invalid("orientation", float64(p.Orientation), "unknown orientation")
	}
	return nil
}

// Frequencies returns the frequency of every grid row, row 0 being the top.
func (p *Params) Frequencies(rows int) []float64 {
	if rows < 1 {
		return nil
	}
	var step float64
	if rows > 1 {
		step = (p.MaxFrequency - p.MinFrequency) / float64(rows-1)
	}
	freqs := make([]float64, rows)
	for r := range freqs {
		i := r
		if p.Orientation == TopHigh {
			i = rows - 1 - r
		}
		freqs[r] = p.MinFrequency + float64(i)*step
	}
	return freqs
}
