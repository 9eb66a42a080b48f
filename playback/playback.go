package playback

import "errors"
import "fmt"
import "strings"
import "sync"
import "time"

import "github.com/neurlang/sonify/pcm"

// Sink starts playback of whole buffers on an output device.
type Sink interface {
	// Start begins playing buf and returns without waiting for it to end.
	// A playback already running on the sink is stopped first.
	Start(buf *pcm.Buffer) (*Handle, error)
	// Close stops any playback and releases the device.
	Close() error
}

// DefaultBuffer is the device buffer length used when none is configured.
const DefaultBuffer = 100 * time.Millisecond

var (
	errNoSamples      = errors.New("playback: empty buffer")
	errUnknownBackend = errors.New("playback: unknown backend")
	errClosed         = errors.New("playback: sink closed")
)

// New returns the sink named by backend: "speaker" (or empty) or "malgo".
func New(backend string, buffer time.Duration) (Sink, error) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	switch strings.ToLower(backend) {
	case "", "speaker", "beep":
		s := NewSpeaker()
		s.Buffer = buffer
		return s, nil
	case "malgo", "miniaudio":
		m := NewMalgo()
		m.Buffer = buffer
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownBackend, backend)
}

// Handle controls one running playback.
type Handle struct {
	done     chan struct{}
	stop     func()
	stopOnce sync.Once
	doneOnce sync.Once
	err      error
}

// NewHandle returns a running Handle whose Stop calls stop once.
// Sink implementations call Finish when the device has drained.
func NewHandle(stop func()) *Handle {
	return &Handle{done: make(chan struct{}), stop: stop}
}

// Finish marks the playback as ended with err. Only the first call counts.
func (h *Handle) Finish(err error) {
	h.doneOnce.Do(func() {
		h.err = err
		close(h.done)
	})
}

// Stop ends the playback early. It is safe to call more than once and
// after the playback has finished.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		if h.stop != nil {
			h.stop()
		}
	})
	h.Finish(nil)
}

// Done is closed when the playback ends or is stopped.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the playback ends and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Playing reports whether the playback is still running.
func (h *Handle) Playing() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// watch returns a Handle that runs teardown once drained closes or the
// handle is stopped. Stop returns only after teardown has finished, and
// the handle is finished only after it.
func watch(drained <-chan struct{}, teardown func()) *Handle {
	stop := make(chan struct{})
	torn := make(chan struct{})
	h := NewHandle(func() {
		close(stop)
		<-torn
	})
	go func() {
		select {
		case <-drained:
		case <-stop:
		}
		teardown()
		close(torn)
		h.Finish(nil)
	}()
	return h
}

func check(buf *pcm.Buffer) error {
	if buf == nil || buf.Len() == 0 {
		return errNoSamples
	}
	if buf.SampleRate <= 0 {
		return fmt.Errorf("playback: bad sample rate %d", buf.SampleRate)
	}
	return nil
}
