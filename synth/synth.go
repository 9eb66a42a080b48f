package synth

import "context"
import "math"

import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/sonify/grid"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/pcm"

// tableLimit caps the precomputed sinusoid table at rows×samplesPerColumn entries.
var tableLimit = 1 << 22

// columns between cancellation checks
const checkEvery = 16

// Synthesize renders g into a peak-normalized mono buffer.
func Synthesize(g *grid.Grid, p *Params) (*pcm.Buffer, error) {
	return SynthesizeContext(context.Background(), g, p)
}

// SynthesizeContext is Synthesize with best-effort cancellation between columns.
func SynthesizeContext(ctx context.Context, g *grid.Grid, p *Params) (*pcm.Buffer, error) {
	var rows, cols int
	if g != nil {
		rows, cols = g.Rows(), g.Cols()
	}
	if err := p.Validate(rows, cols); err != nil {
		return nil, err
	}
	if p.MaxFrequency > float64(p.SampleRate)/2 {
		logger.L.Warnw("max frequency above Nyquist, tones will alias",
			"maxFrequency", p.MaxFrequency, "nyquist", float64(p.SampleRate)/2)
	}

	spc := p.SamplesPerColumn()
	freqs := p.Frequencies(rows)
	out := make([]float64, cols*spc)

	var err error
	if p.Mode == ModeDense && rows*spc <= tableLimit {
		err = dense(ctx, g, freqs, p.SampleRate, spc, out)
	} else {
		threshold := p.AmplitudeThreshold
		if p.Mode == ModeDense {
			threshold = math.Inf(-1)
		}
		err = sparse(ctx, g, freqs, p.SampleRate, spc, threshold, out)
	}
	if err != nil {
		return nil, err
	}

	peak := normalize(out)
	logger.L.Debugw("synthesized", "rows", rows, "columns", cols,
		"samplesPerColumn", spc, "mode", p.Mode.String(), "peak", peak)

	buf := &pcm.Buffer{SampleRate: p.SampleRate, Samples: make([]float32, len(out))}
	for i, v := range out {
		buf.Samples[i] = float32(v)
	}
	return buf, nil
}

// sparse adds amp×sin for every row whose amplitude exceeds threshold.
func sparse(ctx context.Context, g *grid.Grid, freqs []float64, rate, spc int, threshold float64, out []float64) error {
	tab := newTable(freqs, rate, spc)
	col := make([]float64, len(freqs))
	for c := 0; c < g.Cols(); c++ {
		if c%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		seg := out[c*spc : (c+1)*spc]
		for r, amp := range g.Column(c, col) {
			if amp <= threshold {
				continue
			}
			if wave := tab.row(r); wave != nil {
				floats.AddScaled(seg, amp, wave)
				continue
			}
			w := 2 * math.Pi * freqs[r] / float64(rate)
			for k := range seg {
				seg[k] += amp * math.Sin(w*float64(k))
			}
		}
	}
	return nil
}

// dense evaluates every column as sinusoidsᵀ × column.
func dense(ctx context.Context, g *grid.Grid, freqs []float64, rate, spc int, out []float64) error {
	rows := len(freqs)
	tab := newTable(freqs, rate, spc)
	s := mat.NewDense(rows, spc, nil)
	for r := 0; r < rows; r++ {
		s.SetRow(r, tab.row(r))
	}

	col := make([]float64, rows)
	for c := 0; c < g.Cols(); c++ {
		if c%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		a := mat.NewVecDense(rows, g.Column(c, col))
		y := mat.NewVecDense(spc, out[c*spc:(c+1)*spc])
		y.MulVec(s.T(), a)
	}
	return nil
}

// normalize divides x by its peak magnitude when that is non-zero and returns the peak.
func normalize(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	peak := floats.Norm(x, math.Inf(1))
	if peak > 0 {
		for i := range x {
			x[i] /= peak
		}
	}
	return peak
}

// table lazily caches one sinusoid of spc samples per row.
type table struct {
	freqs []float64
	rate  float64
	spc   int
	waves [][]float64
}

func newTable(freqs []float64, rate, spc int) *table {
	t := &table{freqs: freqs, rate: float64(rate), spc: spc}
	if len(freqs)*spc <= tableLimit {
		t.waves = make([][]float64, len(freqs))
	}
	return t
}

// row returns sin(2π f(r) k / rate) for k < spc, or nil when the table is disabled.
func (t *table) row(r int) []float64 {
	if t.waves == nil {
		return nil
	}
	if t.waves[r] == nil {
		w := 2 * math.Pi * t.freqs[r] / t.rate
		wave := make([]float64, t.spc)
		for k := range wave {
			wave[k] = math.Sin(w * float64(k))
		}
		t.waves[r] = wave
	}
	return t.waves[r]
}
