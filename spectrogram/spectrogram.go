package spectrogram

import "math"

import "github.com/mjibson/go-dsp/window"
import "github.com/r9y9/gossp/stft"

import "github.com/neurlang/sonify"
import "github.com/neurlang/sonify/pcm"

// DefaultWindow is the default frame length in samples.
const DefaultWindow = 1024

// Epsilon keeps log10 finite for silent bins.
const Epsilon = 1e-10

// Analyzer represents the configuration for computing spectrograms.
type Analyzer struct {
	Window  int     // frame length in samples
	Overlap float64 // fraction of a frame shared with the next, in [0, 1)
}

// New creates an Analyzer with default values.
func New() *Analyzer {
	return &Analyzer{
		Window:  DefaultWindow,
		Overlap: 0.5,
	}
}

// Spectrogram is a time×frequency power surface.
type Spectrogram struct {
	Frequencies []float64   // Hz, 0 .. sampleRate/2
	Times       []float64   // seconds, frame centres
	Power       [][]float64 // dB, indexed [frequency][time]
}

// Analyze computes the spectrogram of buf with windowSize-sample frames and 50% overlap.
func Analyze(buf *pcm.Buffer, windowSize int) (*Spectrogram, error) {
	a := New()
	a.Window = windowSize
	return a.Analyze(buf)
}

// Hop is the distance in samples between consecutive frames.
func (a *Analyzer) Hop() int {
	return max(1, int(math.Round(float64(a.Window)*(1-a.Overlap))))
}

// Analyze computes the spectrogram of buf.
func (a *Analyzer) Analyze(buf *pcm.Buffer) (*Spectrogram, error) {
	if buf == nil {
		return nil, sonify.Invalid("buffer", 0, "must not be nil")
	}
	if buf.SampleRate <= 0 {
		return nil, sonify.Invalid("sampleRate", float64(buf.SampleRate), "must be positive")
	}
	if a.Window <= 0 {
		return nil, sonify.Invalid("windowSize", float64(a.Window), "must be positive")
	}
	if a.Window > buf.Len() {
		return nil, sonify.Invalid("windowSize", float64(a.Window), "exceeds buffer length")
	}
	if !(a.Overlap >= 0 && a.Overlap < 1) {
		return nil, sonify.Invalid("overlap", a.Overlap, "must be within [0, 1)")
	}

	hop := a.Hop()
	s := stft.New(hop, a.Window)
	s.Window = window.Hann(a.Window)

	var wsum float64
	for _, w := range s.Window {
		wsum += w * w
	}
	rate := float64(buf.SampleRate)
	scale := 1 / (rate * wsum)

	frames := s.STFT(buf.Float64())
	bins := a.Window/2 + 1

	out := &Spectrogram{
		Frequencies: make([]float64, bins),
		Times:       make([]float64, len(frames)),
		Power:       make([][]float64, bins),
	}
	for k := range out.Frequencies {
		out.Frequencies[k] = float64(k) * rate / float64(a.Window)
	}
	for i := range out.Times {
		out.Times[i] = float64(i*hop+a.Window/2) / rate
	}
	for k := 0; k < bins; k++ {
		// one-sided: fold the mirrored half onto every bin except DC and Nyquist
		fold := 2.0
		if k == 0 || (a.Window%2 == 0 && k == a.Window/2) {
			fold = 1
		}
		row := make([]float64, len(frames))
		for i, frame := range frames {
			x := frame[k]
			p := (real(x)*real(x) + imag(x)*imag(x)) * scale * fold
			row[i] = DB(p)
		}
		out.Power[k] = row
	}
	return out, nil
}

// DB converts a linear power to decibels.
func DB(power float64) float64 {
	return 10 * math.Log10(power+Epsilon)
}

// Range returns the smallest and largest dB values.
func (s *Spectrogram) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range s.Power {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// PeakFrequency returns the frequency whose power, summed over time, is largest.
func (s *Spectrogram) PeakFrequency() float64 {
	best, bestK := math.Inf(-1), 0
	for k, row := range s.Power {
		var sum float64
		for _, v := range row {
			sum += math.Pow(10, v/10)
		}
		if sum > best {
			best, bestK = sum, k
		}
	}
	if len(s.Frequencies) == 0 {
		return 0
	}
	return s.Frequencies[bestK]
}
