package session

import "context"
import "sync"
import "time"

import "github.com/google/uuid"

import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/pcm"

// DefaultDelay is the quiet period a Scheduler waits for before rendering.
const DefaultDelay = 150 * time.Millisecond

// RenderFunc produces a buffer for settings; Session.Render is one.
type RenderFunc func(ctx context.Context, settings Settings) (*pcm.Buffer, error)

// Result reports a finished render.
type Result struct {
	ID       uuid.UUID
	Settings Settings
	Buffer   *pcm.Buffer
	Err      error
	Elapsed  time.Duration
}

type request struct {
	id       uuid.UUID
	settings Settings
}

// Scheduler coalesces bursts of Submit calls. Once no request arrived for
// the delay, the newest one is handed to a single worker. A newer request
// cancels the render in flight, and superseded renders are never delivered.
type Scheduler struct {
	render  RenderFunc
	deliver func(Result)
	delay   time.Duration

	ctx  context.Context
	stop context.CancelFunc
	wake chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	timer   *time.Timer
	pending *request // waiting for the timer
	ready   *request // waiting for the worker
	cancel  context.CancelFunc
	closed  bool
}

// NewScheduler starts a scheduler that runs render after delay and passes
// each surviving result to deliver on the worker goroutine.
func NewScheduler(render RenderFunc, delay time.Duration, deliver func(Result)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	ctx, stop := context.WithCancel(context.Background())
	s := &Scheduler{
		render:  render,
		deliver: deliver,
		delay:   delay,
		ctx:     ctx,
		stop:    stop,
		wake:    make(chan struct{}, 1),
	}
	s.wg.Add(1)
	go s.work()
	return s
}

// Submit queues settings, replacing any request not yet started, and
// returns the id its Result will carry. It returns uuid.Nil after Close.
func (s *Scheduler) Submit(settings Settings) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return uuid.Nil
	}
	id := uuid.New()
	s.pending = &request{id: id, settings: settings}
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
	} else {
		s.timer.Reset(s.delay)
	}
	return id
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.pending != nil {
		if s.ready != nil {
			logger.L.Debugw("render dropped", "id", s.ready.id)
		}
		s.ready, s.pending = s.pending, nil
	}
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) work() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.wake:
		}

		s.mu.Lock()
		req := s.ready
		s.ready = nil
		if req == nil || s.closed {
			s.mu.Unlock()
			continue
		}
		ctx, cancel := context.WithCancel(s.ctx)
		s.cancel = cancel
		s.mu.Unlock()

		start := time.Now()
		buf, err := s.render(ctx, req.settings)
		elapsed := time.Since(start)

		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		superseded := ctx.Err() != nil
		cancel()

		if superseded {
			logger.L.Debugw("render superseded", "id", req.id, "elapsed", elapsed)
			continue
		}
		if s.deliver != nil {
			s.deliver(Result{ID: req.id, Settings: req.settings, Buffer: buf, Err: err, Elapsed: elapsed})
		}
	}
}

// Close cancels pending and running renders and waits for the worker.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.pending, s.ready = nil, nil
	s.mu.Unlock()
	s.stop()
	s.wg.Wait()
}
