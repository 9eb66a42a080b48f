package plot

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/neurlang/sonify/pcm"
	"github.com/neurlang/sonify/spectrogram"
)

func sweep(rate, n int) *pcm.Buffer {
	b := &pcm.Buffer{SampleRate: rate, Samples: make([]float32, n)}
	for k := range b.Samples {
		t := float64(k) / float64(rate)
		b.Samples[k] = float32(0.8 * math.Sin(2*math.Pi*(200+400*t)*t))
	}
	return b
}

func TestInferno(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    float64
		want color.RGBA
	}{
		{-1, inferno[0]},
		{0, inferno[0]},
		{math.NaN(), inferno[0]},
		{0.5, inferno[4]},
		{1, inferno[8]},
		{2, inferno[8]},
	}
	for _, tt := range tests {
		if got := Inferno(tt.v); got != tt.want {
			t.Errorf("Inferno(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}

	// brighter towards the top of the scale
	prev := -1
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		c := Inferno(v)
		sum := int(c.R) + int(c.G) + int(c.B)
		if sum <= prev {
			t.Errorf("Inferno(%v) not brighter than the previous stop", v)
		}
		prev = sum
	}
}

func TestSpectrogramImage(t *testing.T) {
	t.Parallel()

	s, err := spectrogram.Analyze(sweep(8000, 8000), 256)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	o := DefaultOptions()
	o.MaxFrequency = 2000
	img, err := SpectrogramImage(s, o)
	if err != nil {
		t.Fatalf("SpectrogramImage() error = %v", err)
	}
	if got := img.Bounds().Dx(); got != o.Width {
		t.Errorf("width = %d, want %d", got, o.Width)
	}
	if got := img.Bounds().Dy(); got != o.Height {
		t.Errorf("height = %d, want %d", got, o.Height)
	}

	// the plot area is painted from the colour map, never left white
	c := img.RGBAAt(marginLeft+10, marginTop+10)
	if c == background {
		t.Errorf("plot area pixel left as background")
	}

	var buf bytes.Buffer
	if err := Spectrogram(&buf, s, o); err != nil {
		t.Fatalf("Spectrogram() error = %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != o.Width || cfg.Height != o.Height {
		t.Errorf("png size = %dx%d, want %dx%d", cfg.Width, cfg.Height, o.Width, o.Height)
	}
}

func TestWaveformImage(t *testing.T) {
	t.Parallel()

	b := &pcm.Buffer{SampleRate: 1000, Samples: make([]float32, 1000)}
	for k := range b.Samples {
		b.Samples[k] = 1
		if k%2 == 1 {
			b.Samples[k] = -1
		}
	}
	o := Options{Width: 400, Height: 200}
	img, err := WaveformImage(b, o)
	if err != nil {
		t.Fatalf("WaveformImage() error = %v", err)
	}
	// a full-scale square wave covers the whole plot height in every column
	x := marginLeft + (o.Width-marginLeft-marginRight)/2
	for _, y := range []int{marginTop + 1, o.Height - marginBottom - 2} {
		if got := img.RGBAAt(x, y); got != trace {
			t.Errorf("pixel (%d,%d) = %v, want trace colour", x, y, got)
		}
	}

	var buf bytes.Buffer
	if err := Waveform(&buf, b, o); err != nil {
		t.Fatalf("Waveform() error = %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
}

func TestPlotErrors(t *testing.T) {
	t.Parallel()

	if _, err := WaveformImage(&pcm.Buffer{SampleRate: 8000}, DefaultOptions()); !errors.Is(err, errNoData) {
		t.Errorf("WaveformImage(empty) error = %v, want errNoData", err)
	}
	if _, err := SpectrogramImage(nil, DefaultOptions()); !errors.Is(err, errNoData) {
		t.Errorf("SpectrogramImage(nil) error = %v, want errNoData", err)
	}
	if _, err := WaveformImage(sweep(8000, 800), Options{Width: 50, Height: 50}); !errors.Is(err, errTooSmall) {
		t.Errorf("WaveformImage(50x50) error = %v, want errTooSmall", err)
	}
}
