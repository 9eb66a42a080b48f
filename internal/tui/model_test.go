package tui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/neurlang/sonify/pcm"
	"github.com/neurlang/sonify/playback"
	"github.com/neurlang/sonify/session"
)

type recorder struct {
	submitted []session.Settings
	ids       []uuid.UUID
}

func (r *recorder) submit(s session.Settings) uuid.UUID {
	id := uuid.New()
	r.submitted = append(r.submitted, s)
	r.ids = append(r.ids, id)
	return id
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T, sink playback.Sink) (Model, *recorder, *session.Session) {
	t.Helper()
	sess := session.New(sink)
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.SetGray(0, 0, color.Gray{Y: 255})
	if err := sess.OpenImage(img); err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	s := session.DefaultSettings()
	s.MaxSize = 64
	s.Duration = 1
	dir := t.TempDir()
	opts := Options{Output: filepath.Join(dir, "out.wav"), PlotFile: filepath.Join(dir, "plot.png")}
	return NewModel(sess, s, rec.submit, opts), rec, sess
}

func TestNewModel(t *testing.T) {
	m, rec, _ := newTestModel(t, nil)

	if m.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", m.cursor)
	}
	if m.view != session.ViewSpectrogram {
		t.Errorf("expected spectrogram view, got %v", m.view)
	}
	if len(rec.submitted) != 0 {
		t.Error("NewModel should not submit")
	}

	msg := m.Init()()
	m = send(m, msg)
	if len(rec.submitted) != 1 || !m.rendering {
		t.Errorf("Init should queue one render, got %d", len(rec.submitted))
	}
}

func TestAdjustSubmits(t *testing.T) {
	m, rec, _ := newTestModel(t, nil)

	m = send(m, key("right"))
	if m.settings.MaxSize != 96 {
		t.Errorf("expected max size 96, got %d", m.settings.MaxSize)
	}
	m = send(m, key("down"), key("down"), key("left"), key("left"))
	if m.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", m.cursor)
	}
	// duration 1 is the lower bound
	if m.settings.Duration != 1 {
		t.Errorf("expected duration clamped at 1, got %v", m.settings.Duration)
	}
	if len(rec.submitted) != 1 {
		t.Errorf("expected 1 submit, got %d", len(rec.submitted))
	}

	m = send(m, key("up"), key("right"), key("right"), key("right"))
	if m.settings.Density != 1.3 {
		t.Errorf("expected density 1.3, got %v", m.settings.Density)
	}
	if len(rec.submitted) != 4 {
		t.Errorf("expected 4 submits, got %d", len(rec.submitted))
	}
	if m.pending != rec.ids[len(rec.ids)-1] {
		t.Error("pending id is not the newest submit")
	}

	m = send(m, key("up"), key("up"), key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.cursor)
	}
}

func TestRenderedMsg(t *testing.T) {
	m, rec, sess := newTestModel(t, nil)
	m = send(m, submitMsg{})

	buf, err := sess.Render(context.Background(), rec.submitted[0])
	if err != nil {
		t.Fatal(err)
	}

	// stale results are ignored
	m = send(m, RenderedMsg{ID: uuid.New(), Buffer: buf})
	if !m.rendering {
		t.Error("stale result cleared the rendering flag")
	}

	m = send(m, RenderedMsg{ID: rec.ids[0], Settings: rec.submitted[0], Buffer: buf})
	if m.rendering || m.err != nil {
		t.Errorf("rendering = %v, err = %v", m.rendering, m.err)
	}
	if !strings.Contains(m.status, "44100 Hz") {
		t.Errorf("status = %q", m.status)
	}
	if _, err := os.Stat(m.opts.PlotFile); err != nil {
		t.Errorf("plot not written: %v", err)
	}

	boom := errors.New("boom")
	m = send(m, key("r"))
	m = send(m, RenderedMsg{ID: rec.ids[1], Err: boom})
	if !errors.Is(m.err, boom) || !strings.Contains(m.View(), "boom") {
		t.Errorf("render error not shown, err = %v", m.err)
	}
}

type fakeSink struct{ started int }

func (f *fakeSink) Start(*pcm.Buffer) (*playback.Handle, error) {
	f.started++
	return playback.NewHandle(nil), nil
}

func (f *fakeSink) Close() error { return nil }

func TestPlayStopSave(t *testing.T) {
	sink := &fakeSink{}
	m, rec, sess := newTestModel(t, sink)

	m = send(m, key("p"))
	if !errors.Is(m.err, session.ErrNoBuffer) {
		t.Errorf("play before render: err = %v, want ErrNoBuffer", m.err)
	}

	m = send(m, submitMsg{})
	if _, err := sess.Render(context.Background(), rec.submitted[0]); err != nil {
		t.Fatal(err)
	}

	next, cmd := m.Update(key("p"))
	m = next.(Model)
	if m.playing == nil || cmd == nil || sink.started != 1 {
		t.Fatalf("play did not start: playing = %v, started = %d", m.playing, sink.started)
	}
	h := m.playing

	m = send(m, key("s"))
	if m.playing != nil || sess.Playing() {
		t.Error("stop left playback running")
	}
	done := cmd().(PlaybackDoneMsg)
	if done.Handle != h {
		t.Error("done message carries another handle")
	}
	m = send(m, done)

	m = send(m, key("w"))
	if m.err != nil {
		t.Fatalf("save error = %v", m.err)
	}
	if _, err := os.Stat(m.opts.Output); err != nil {
		t.Errorf("output not written: %v", err)
	}

	m = send(m, key("v"))
	if m.view != session.ViewWaveform {
		t.Errorf("expected waveform view, got %v", m.view)
	}
	if !strings.Contains(m.View(), "view waveform") {
		t.Error("View() does not show the current view")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value, total float64
		want         string
	}{
		{0, 10, "░░░░"},
		{5, 10, "██░░"},
		{10, 10, "████"},
		{20, 10, "████"},
		{1, 0, "░░░░"},
	}
	for _, tt := range tests {
		if got := renderBar(tt.value, tt.total, 4); got != tt.want {
			t.Errorf("renderBar(%v, %v) = %q, want %q", tt.value, tt.total, got, tt.want)
		}
	}
}
