package playback

import "sync"
import "time"

import "github.com/faiface/beep"
import "github.com/faiface/beep/speaker"

import "github.com/neurlang/sonify"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/pcm"

// Speaker plays through beep's global speaker. The speaker is
// reinitialised whenever the sample rate changes.
type Speaker struct {
	Buffer time.Duration

	mu      sync.Mutex
	rate    beep.SampleRate
	current *Handle
	closed  bool
}

// NewSpeaker returns a Speaker with the default buffer length.
func NewSpeaker() *Speaker {
	return &Speaker{Buffer: DefaultBuffer}
}

// Start implements Sink.
func (s *Speaker) Start(buf *pcm.Buffer) (*Handle, error) {
	if err := check(buf); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errClosed
	}
	if s.current != nil {
		s.current.Stop()
		s.current = nil
	}

	rate := beep.SampleRate(buf.SampleRate)
	if rate != s.rate {
		if err := speaker.Init(rate, rate.N(s.Buffer)); err != nil {
			s.rate = 0
			return nil, sonify.DeviceError("speaker", err)
		}
		s.rate = rate
	}

	ctrl := &beep.Ctrl{Streamer: buf.Streamer()}
	h := NewHandle(func() {
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	})
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		h.Finish(nil)
	})))
	s.current = h

	logger.L.Debugw("playback started", "backend", "speaker", "seconds", buf.Seconds())
	return h, nil
}

// Close implements Sink.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.current != nil {
		s.current.Stop()
		s.current = nil
	}
	if s.rate != 0 {
		speaker.Close()
		s.rate = 0
	}
	return nil
}
