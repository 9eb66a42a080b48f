package pcm

import "math"

import "github.com/faiface/beep"

// Buffer is a mono signal at SampleRate, nominally within [-1, 1].
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Seconds returns the buffer duration.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	var peak float64
	for _, s := range b.Samples {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

// Float64 returns the samples widened to float64.
func (b *Buffer) Float64() []float64 {
	out := make([]float64, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = float64(s)
	}
	return out
}

// Int16 quantizes the samples to 16-bit PCM, clipping outside [-1, 1].
func (b *Buffer) Int16() []int16 {
	out := make([]int16, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = int16(clip(float64(s)) * math.MaxInt16)
	}
	return out
}

// Point is one sample of a time series.
type Point struct {
	Time      float64
	Amplitude float64
}

// ToTimeSeries pairs every sample k with its time k/sampleRate.
func ToTimeSeries(b *Buffer) []Point {
	if b == nil || len(b.Samples) == 0 || b.SampleRate <= 0 {
		return []Point{}
	}
	out := make([]Point, len(b.Samples))
	rate := float64(b.SampleRate)
	for k, s := range b.Samples {
		out[k] = Point{Time: float64(k) / rate, Amplitude: float64(s)}
	}
	return out
}

// Streamer returns a seekable beep stream that plays the buffer on both channels.
func (b *Buffer) Streamer() beep.StreamSeeker {
	return &streamer{samples: b.Samples}
}

type streamer struct {
	samples []float32
	pos     int
}

func (s *streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.samples) {
		v := float64(s.samples[s.pos])
		samples[n][0], samples[n][1] = v, v
		n++
		s.pos++
	}
	return n, true
}

func (s *streamer) Err() error { return nil }

func (s *streamer) Len() int { return len(s.samples) }

func (s *streamer) Position() int { return s.pos }

func (s *streamer) Seek(p int) error {
	if p < 0 || p > len(s.samples) {
		return errSeek
	}
	s.pos = p
	return nil
}

func clip(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
