package playback

import "encoding/binary"
import "sync"
import "time"

import "github.com/gen2brain/malgo"

import "github.com/neurlang/sonify"
import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/pcm"

// Malgo plays through miniaudio, opening one device per playback.
type Malgo struct {
	Buffer time.Duration

	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	current *Handle
	closed  bool
}

// NewMalgo returns a Malgo sink with the default buffer length.
func NewMalgo() *Malgo {
	return &Malgo{Buffer: DefaultBuffer}
}

// Start implements Sink.
func (m *Malgo) Start(buf *pcm.Buffer) (*Handle, error) {
	if err := check(buf); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errClosed
	}
	if m.current != nil {
		m.current.Stop()
		m.current = nil
	}
	if m.ctx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return nil, sonify.DeviceError("malgo", err)
		}
		m.ctx = ctx
	}

	samples := buf.Int16()
	pos := 0
	drained := make(chan struct{})
	var drainOnce sync.Once

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = 1
	cfg.SampleRate = uint32(buf.SampleRate)
	cfg.Periods = 2
	cfg.PeriodSizeInFrames = uint32(max(64, int(m.Buffer.Seconds()*float64(buf.SampleRate))/2))

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frames uint32) {
			n := int(frames)
			for i := 0; i < n; i++ {
				var v int16
				if pos < len(samples) {
					v = samples[pos]
					pos++
				}
				binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
			}
			if pos >= len(samples) {
				drainOnce.Do(func() { close(drained) })
			}
		},
	}

	device, err := malgo.InitDevice(m.ctx.Context, cfg, callbacks)
	if err != nil {
		return nil, sonify.DeviceError("malgo", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, sonify.DeviceError("malgo", err)
	}

	h := watch(drained, func() {
		_ = device.Stop()
		device.Uninit()
	})
	m.current = h

	logger.L.Debugw("playback started", "backend", "malgo", "seconds", buf.Seconds())
	return h, nil
}

// Close implements Sink.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if m.current != nil {
		m.current.Stop()
		m.current = nil
	}
	if m.ctx != nil {
		if err := m.ctx.Uninit(); err != nil {
			logger.L.Warnw("malgo context uninit", "error", err)
		}
		m.ctx.Free()
		m.ctx = nil
	}
	return nil
}
