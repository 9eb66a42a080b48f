package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/neurlang/sonify/pcm"
)

func collect() (func(Result), func() []Result) {
	var mu sync.Mutex
	var got []Result
	return func(r Result) {
			mu.Lock()
			got = append(got, r)
			mu.Unlock()
		}, func() []Result {
			mu.Lock()
			defer mu.Unlock()
			return append([]Result(nil), got...)
		}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerCoalesces(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var rendered []float64
	render := func(_ context.Context, s Settings) (*pcm.Buffer, error) {
		mu.Lock()
		rendered = append(rendered, s.Duration)
		mu.Unlock()
		return &pcm.Buffer{SampleRate: 8000, Samples: []float32{0}}, nil
	}
	deliver, results := collect()
	sched := NewScheduler(render, 50*time.Millisecond, deliver)
	defer sched.Close()

	var last uuid.UUID
	for d := 1; d <= 5; d++ {
		s := DefaultSettings()
		s.Duration = float64(d)
		last = sched.Submit(s)
	}
	waitFor(t, "result", func() bool { return len(results()) > 0 })
	time.Sleep(150 * time.Millisecond)

	got := results()
	if len(got) != 1 {
		t.Fatalf("delivered %d results, want 1", len(got))
	}
	if got[0].ID != last {
		t.Errorf("result id = %v, want newest %v", got[0].ID, last)
	}
	if got[0].Settings.Duration != 5 || got[0].Err != nil {
		t.Errorf("result = %+v, want duration 5 without error", got[0])
	}
	mu.Lock()
	defer mu.Unlock()
	if len(rendered) != 1 || rendered[0] != 5 {
		t.Errorf("rendered %v, want only [5]", rendered)
	}
}

func TestSchedulerSupersedesInFlight(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	render := func(ctx context.Context, s Settings) (*pcm.Buffer, error) {
		if s.Duration == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &pcm.Buffer{SampleRate: 8000, Samples: []float32{0}}, nil
	}
	deliver, results := collect()
	sched := NewScheduler(render, 10*time.Millisecond, deliver)
	defer sched.Close()

	first := DefaultSettings()
	first.Duration = 1
	sched.Submit(first)
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first render never started")
	}

	second := DefaultSettings()
	second.Duration = 2
	id := sched.Submit(second)
	waitFor(t, "second result", func() bool { return len(results()) > 0 })

	got := results()
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("results = %+v, want only the second request", got)
	}
	if got[0].Err != nil || got[0].Buffer == nil {
		t.Errorf("second result = %+v, want a buffer", got[0])
	}
}

func TestSchedulerClose(t *testing.T) {
	t.Parallel()

	calls := make(chan struct{}, 4)
	render := func(context.Context, Settings) (*pcm.Buffer, error) {
		calls <- struct{}{}
		return nil, nil
	}
	sched := NewScheduler(render, 20*time.Millisecond, nil)
	sched.Submit(DefaultSettings())
	sched.Close()
	sched.Close()

	if id := sched.Submit(DefaultSettings()); id != uuid.Nil {
		t.Errorf("Submit after Close = %v, want uuid.Nil", id)
	}
	time.Sleep(60 * time.Millisecond)
	if n := len(calls); n != 0 {
		t.Errorf("render ran %d times after Close, want 0", n)
	}
}

func TestSchedulerWithSession(t *testing.T) {
	t.Parallel()

	s := New(nil)
	if err := s.OpenImage(gradient(32, 32)); err != nil {
		t.Fatal(err)
	}
	done := make(chan Result, 1)
	sched := NewScheduler(s.Render, 10*time.Millisecond, func(r Result) { done <- r })
	defer sched.Close()

	sched.Submit(small())
	select {
	case r := <-done:
		if r.Err != nil {
			t.Fatalf("render error = %v", r.Err)
		}
		if s.Buffer() != r.Buffer {
			t.Error("session buffer is not the delivered buffer")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("no result")
	}
}
