package session

import "context"
import "errors"
import "fmt"
import "image"
import "io"
import "sync"

import "github.com/neurlang/sonify"
import "github.com/neurlang/sonify/grid"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/pcm"
import "github.com/neurlang/sonify/playback"
import "github.com/neurlang/sonify/plot"
import "github.com/neurlang/sonify/spectrogram"
import "github.com/neurlang/sonify/synth"

var (
	// ErrNoSource is returned by Render before an image was opened.
	ErrNoSource = errors.New("session: no image loaded")
	// ErrNoBuffer is returned by Play, Export and Plot before a render succeeded.
	ErrNoBuffer = errors.New("session: nothing rendered yet")

	errStale = errors.New("session: source replaced during render")
	errEmpty = errors.New("empty image")
)

// View selects which plot is produced from the current buffer.
type View int

const (
	ViewSpectrogram View = iota
	ViewWaveform
)

func (v View) String() string {
	if v == ViewWaveform {
		return "waveform"
	}
	return "spectrogram"
}

// Next toggles between the two views.
func (v View) Next() View {
	if v == ViewWaveform {
		return ViewSpectrogram
	}
	return ViewWaveform
}

// Session holds the current image, the last rendered buffer and the
// playback handle. It is safe for concurrent use.
type Session struct {
	// Sampler resamples the image; Analyzer and PlotOptions shape Plot.
	// They are read on every call and must not be changed concurrently.
	Sampler     grid.Options
	Analyzer    *spectrogram.Analyzer
	PlotOptions plot.Options

	sink playback.Sink

	mu       sync.Mutex
	source   string
	img      image.Image
	buf      *pcm.Buffer
	settings Settings
	handle   *playback.Handle
}

// New returns an empty session playing through sink, which may be nil
// when playback is not needed.
func New(sink playback.Sink) *Session {
	return &Session{
		Analyzer:    spectrogram.New(),
		PlotOptions: plot.DefaultOptions(),
		sink:        sink,
	}
}

// Open decodes the image at path and makes it the current source.
func (s *Session) Open(path string) error {
	img, err := grid.Open(path)
	if err != nil {
		return err
	}
	s.setSource(path, img)
	return nil
}

// OpenImage makes an in-memory image, such as a camera frame, the current source.
func (s *Session) OpenImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return &sonify.LoadError{Source: "image", Err: errEmpty}
	}
	s.setSource("image", img)
	return nil
}

func (s *Session) setSource(name string, img image.Image) {
	s.mu.Lock()
	s.source, s.img, s.buf = name, img, nil
	s.mu.Unlock()
}

// Source names the current image, empty when none is loaded.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Render samples the current image with settings, synthesizes it and
// keeps the result as the current buffer. A cancelled render leaves the
// previous buffer in place.
func (s *Session) Render(ctx context.Context, settings Settings) (*pcm.Buffer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	source, img := s.source, s.img
	s.mu.Unlock()
	if img == nil {
		return nil, ErrNoSource
	}

	w := settings.Width()
	g, err := s.Sampler.FromImage(img, w, w, source)
	if err != nil {
		return nil, err
	}
	buf, err := synth.SynthesizeContext(ctx, g, settings.Params(w))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img != img {
		return nil, errStale
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.buf, s.settings = buf, settings
	logger.L.Debugw("rendered", "source", source, "grid", w, "seconds", buf.Seconds())
	return buf, nil
}

// Buffer returns the last rendered buffer, or nil.
func (s *Session) Buffer() *pcm.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Settings returns the settings of the last successful render.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Play starts the current buffer on the sink. While a playback is
// running Play returns its handle instead of starting another.
func (s *Session) Play() (*playback.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sink == nil {
		return nil, fmt.Errorf("%w: no playback sink", sonify.ErrDeviceUnavailable)
	}
	if s.buf == nil {
		return nil, ErrNoBuffer
	}
	if s.handle != nil && s.handle.Playing() {
		return s.handle, nil
	}
	h, err := s.sink.Start(s.buf)
	if err != nil {
		return nil, err
	}
	s.handle = h
	return h, nil
}

// Stop ends the running playback, if any.
func (s *Session) Stop() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()
	if h != nil {
		h.Stop()
	}
}

// Playing reports whether a playback started by Play is still running.
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil && s.handle.Playing()
}

// Export saves the current buffer to path; see pcm.Save for formats.
func (s *Session) Export(path string, bits int) error {
	buf := s.Buffer()
	if buf == nil {
		return ErrNoBuffer
	}
	return pcm.Save(path, buf, bits)
}

// Plot renders the current buffer in view v as PNG to w.
func (s *Session) Plot(v View, w io.Writer) error {
	buf := s.Buffer()
	if buf == nil {
		return ErrNoBuffer
	}
	if v == ViewWaveform {
		return plot.Waveform(w, buf, s.PlotOptions)
	}
	sg, err := s.Analyzer.Analyze(buf)
	if err != nil {
		return err
	}
	return plot.Spectrogram(w, sg, s.PlotOptions)
}

// Close stops playback and releases the sink.
func (s *Session) Close() error {
	s.Stop()
	if s.sink == nil {
		return nil
	}
	return s.sink.Close()
}
