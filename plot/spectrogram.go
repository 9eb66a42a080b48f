package plot

import "fmt"
import "image"
import "io"
import "math"

import "github.com/neurlang/sonify/spectrogram"

// dynamicRange limits how far below the peak the colour scale reaches.
const dynamicRange = 120.0

// Spectrogram renders s as a PNG heat map.
func Spectrogram(w io.Writer, s *spectrogram.Spectrogram, o Options) error {
	f, err := spectrogramFrame(s, o)
	if err != nil {
		return err
	}
	return f.encode(w)
}

// SpectrogramImage renders s as an RGBA heat map.
func SpectrogramImage(s *spectrogram.Spectrogram, o Options) (*image.RGBA, error) {
	f, err := spectrogramFrame(s, o)
	if err != nil {
		return nil, err
	}
	return f.img, nil
}

func spectrogramFrame(s *spectrogram.Spectrogram, o Options) (*frame, error) {
	if s == nil || len(s.Power) < 2 || len(s.Times) == 0 {
		return nil, errNoData
	}
	f, err := newFrame(o)
	if err != nil {
		return nil, err
	}
	t, err := newTypesetter()
	if err != nil {
		return nil, err
	}

	nyquist := s.Frequencies[len(s.Frequencies)-1]
	fmax := o.MaxFrequency
	if fmax <= 0 || fmax > nyquist {
		fmax = nyquist
	}
	df := s.Frequencies[1] - s.Frequencies[0]
	lo, hi := s.Range()
	lo = math.Max(lo, hi-dynamicRange)
	scale := func(v float64) float64 {
		if hi <= lo {
			return 0
		}
		return (v - lo) / (hi - lo)
	}

	a := f.area
	times := len(s.Times)
	for x := 0; x < a.Dx(); x++ {
		i := min(times-1, x*times/a.Dx())
		for y := 0; y < a.Dy(); y++ {
			freq := fmax * float64(a.Dy()-1-y) / float64(max(1, a.Dy()-1))
			k := min(len(s.Power)-1, int(math.Round(freq/df)))
			f.img.SetRGBA(a.Min.X+x, a.Min.Y+y, Inferno(scale(s.Power[k][i])))
		}
	}

	// colour bar
	bar := image.Rect(a.Max.X+12, a.Min.Y, a.Max.X+24, a.Max.Y)
	for y := bar.Min.Y; y < bar.Max.Y; y++ {
		c := Inferno(float64(bar.Max.Y-1-y) / float64(max(1, bar.Dy()-1)))
		for x := bar.Min.X; x < bar.Max.X; x++ {
			f.img.SetRGBA(x, y, c)
		}
	}
	t.left(f.img, fmt.Sprintf("%.0f dB", hi), bar.Max.X+4, bar.Min.Y+8)
	t.left(f.img, fmt.Sprintf("%.0f dB", lo), bar.Max.X+4, bar.Max.Y)

	f.axes()
	duration := s.Times[times-1]
	f.xTicks(4, func(frac float64) string { return fmt.Sprintf("%.2f", frac*duration) }, t)
	f.yTicks(4, func(frac float64) string { return fmt.Sprintf("%.0f", frac*fmax) }, t)
	t.centered(f.img, "Time [sec]", a.Min.X+a.Dx()/2, o.Height-8)
	t.left(f.img, "Frequency [Hz]", 4, a.Min.Y-10)
	title := o.Title
	if title == "" {
		title = "Spectrogram"
	}
	t.centered(f.img, title, a.Min.X+a.Dx()/2, a.Min.Y-10)
	return f, nil
}
