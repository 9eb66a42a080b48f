package plot

import "fmt"
import "image"
import "io"
import "math"

import "github.com/neurlang/sonify/pcm"

// Waveform renders b as a PNG amplitude-over-time plot.
func Waveform(w io.Writer, b *pcm.Buffer, o Options) error {
	f, err := waveformFrame(b, o)
	if err != nil {
		return err
	}
	return f.encode(w)
}

// WaveformImage renders b as an RGBA amplitude-over-time plot.
func WaveformImage(b *pcm.Buffer, o Options) (*image.RGBA, error) {
	f, err := waveformFrame(b, o)
	if err != nil {
		return nil, err
	}
	return f.img, nil
}

func waveformFrame(b *pcm.Buffer, o Options) (*frame, error) {
	points := pcm.ToTimeSeries(b)
	if len(points) == 0 {
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

	a := f.area
	limit := math.Max(1, b.Peak())
	duration := b.Seconds()
	yOf := func(v float64) int {
		return a.Min.Y + int(math.Round((1-v/limit)/2*float64(a.Dy()-1)))
	}

	// min/max envelope per pixel column
	lows := make([]float64, a.Dx())
	highs := make([]float64, a.Dx())
	seen := make([]bool, a.Dx())
	for _, p := range points {
		x := min(a.Dx()-1, int(p.Time/duration*float64(a.Dx())))
		if !seen[x] {
			lows[x], highs[x], seen[x] = p.Amplitude, p.Amplitude, true
			continue
		}
		lows[x] = math.Min(lows[x], p.Amplitude)
		highs[x] = math.Max(highs[x], p.Amplitude)
	}

	zero := yOf(0)
	for x := 0; x < a.Dx(); x++ {
		f.img.SetRGBA(a.Min.X+x, zero, gridline)
	}
	for x := 0; x < a.Dx(); x++ {
		if !seen[x] {
			continue
		}
		for y := yOf(highs[x]); y <= yOf(lows[x]); y++ {
			f.img.SetRGBA(a.Min.X+x, y, trace)
		}
	}

	f.axes()
	f.xTicks(4, func(frac float64) string { return fmt.Sprintf("%.2f", frac*duration) }, t)
	f.yTicks(4, func(frac float64) string { return fmt.Sprintf("%.1f", (2*frac-1)*limit) }, t)
	t.centered(f.img, "Time [sec]", a.Min.X+a.Dx()/2, o.Height-8)
	t.left(f.img, "Amplitude", 4, a.Min.Y-10)
	title := o.Title
	if title == "" {
		title = "Waveform"
	}
	t.centered(f.img, title, a.Min.X+a.Dx()/2, a.Min.Y-10)
	return f, nil
}
