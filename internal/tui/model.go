// Package tui is the interactive terminal front end of a sonify session.
package tui

import "fmt"
import "os"
import "strings"
import "time"

import tea "github.com/charmbracelet/bubbletea"
import "github.com/charmbracelet/lipgloss"
import "github.com/google/uuid"

import "github.com/neurlang/sonify/internal/logger"
import "github.com/neurlang/sonify/playback"
import "github.com/neurlang/sonify/session"

// RenderedMsg carries a finished render from the scheduler.
type RenderedMsg session.Result

// PlaybackDoneMsg reports that a playback ended.
type PlaybackDoneMsg struct {
	Handle *playback.Handle
	Err    error
}

type submitMsg struct{}

// control is one adjustable setting row.
type control struct {
	label string
	unit  string
	step  float64
	lo    float64
	hi    float64
	get   func(*session.Settings) float64
	set   func(*session.Settings, float64)
}

var controls = []control{
	{"Max Size", "px", 32, session.MinMaxSize, session.MaxMaxSize,
		func(s *session.Settings) float64 { return float64(s.MaxSize) },
		func(s *session.Settings, v float64) { s.MaxSize = int(v) }},
	{"Density", "", 0.1, session.MinDensity, session.MaxDensity,
		func(s *session.Settings) float64 { return s.Density },
		func(s *session.Settings, v float64) { s.Density = v }},
	{"Duration", "s", 0.5, session.MinDuration, session.MaxDuration,
		func(s *session.Settings) float64 { return s.Duration },
		func(s *session.Settings, v float64) { s.Duration = v }},
	{"Min Freq", "Hz", 10, session.MinMinFreq, session.MaxMinFreq,
		func(s *session.Settings) float64 { return s.MinFreq },
		func(s *session.Settings, v float64) { s.MinFreq = v }},
	{"Max Freq", "Hz", 100, session.MinMaxFreq, session.MaxMaxFreq,
		func(s *session.Settings) float64 { return s.MaxFreq },
		func(s *session.Settings, v float64) { s.MaxFreq = v }},
}

// Options are the output paths of the front end.
type Options struct {
	Output   string // audio written by 'w'
	Bits     int    // 16 when zero
	PlotFile string // PNG refreshed after every render, none when empty
}

// Model is the bubbletea model of the session screen.
type Model struct {
	sess     *session.Session
	submit   func(session.Settings) uuid.UUID
	opts     Options
	settings session.Settings

	cursor    int
	view      session.View
	pending   uuid.UUID
	rendering bool
	playing   *playback.Handle
	status    string
	err       error

	width  int
	height int
}

// NewModel returns a model that sends every settings change to submit.
func NewModel(sess *session.Session, settings session.Settings, submit func(session.Settings) uuid.UUID, opts Options) Model {
	if opts.Output == "" {
		opts.Output = "sonify.wav"
	}
	if opts.Bits == 0 {
		opts.Bits = 16
	}
	return Model{
		sess:     sess,
		submit:   submit,
		opts:     opts,
		settings: settings,
		status:   "idle",
	}
}

// Init queues the first render.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return submitMsg{} }
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case submitMsg:
		m.request()
	case RenderedMsg:
		m.applyResult(session.Result(msg))
	case PlaybackDoneMsg:
		if msg.Handle == m.playing {
			m.playing = nil
			m.err = msg.Err
			m.status = "stopped"
		}
	}
	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Stop()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(controls)-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(+1)
	case "r":
		m.request()
	case "p":
		return m.play()
	case "s":
		m.sess.Stop()
		m.playing = nil
		m.status = "stopped"
	case "w":
		m.err = m.sess.Export(m.opts.Output, m.opts.Bits)
		if m.err == nil {
			m.status = "saved " + m.opts.Output
		}
	case "v":
		m.view = m.view.Next()
		m.writePlot()
	}
	return m, nil
}

func (m *Model) adjust(dir float64) {
	c := controls[m.cursor]
	v := c.get(&m.settings) + dir*c.step
	v = max(c.lo, min(c.hi, v))
	// keep decimal steps from drifting
	v = float64(int64(v*1000+0.5)) / 1000
	if v == c.get(&m.settings) {
		return
	}
	c.set(&m.settings, v)
	m.request()
}

func (m *Model) request() {
	if m.submit == nil {
		return
	}
	m.pending = m.submit(m.settings)
	m.rendering = true
	m.status = "rendering"
}

func (m *Model) applyResult(r session.Result) {
	if r.ID != m.pending {
		logger.L.Debugw("stale render ignored", "id", r.ID)
		return
	}
	m.rendering = false
	m.err = r.Err
	if r.Err != nil {
		m.status = "render failed"
		return
	}
	m.status = fmt.Sprintf("%.2fs at %d Hz, rendered in %v",
		r.Buffer.Seconds(), r.Buffer.SampleRate, r.Elapsed.Round(time.Millisecond))
	m.writePlot()
}

func (m Model) play() (tea.Model, tea.Cmd) {
	h, err := m.sess.Play()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.playing = h
	m.status = "playing"
	return m, func() tea.Msg {
		return PlaybackDoneMsg{Handle: h, Err: h.Wait()}
	}
}

func (m *Model) writePlot() {
	if m.opts.PlotFile == "" || m.sess.Buffer() == nil {
		return
	}
	f, err := os.Create(m.opts.PlotFile)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := m.sess.Plot(m.view, f); err != nil {
		m.err = err
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Image to Sound"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Image: "))
	source := m.sess.Source()
	if source == "" {
		source = "(none)"
	}
	b.WriteString(valueStyle.Render(source))
	b.WriteString("\n\n")

	for i, c := range controls {
		v := c.get(&m.settings)
		line := fmt.Sprintf("%-9s [%s] %s", c.label, renderBar(v-c.lo, c.hi-c.lo, 20), formatValue(v, c.unit))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\ngrid %d×%d  view %s\n", m.settings.Width(), m.settings.Width(), m.view))

	b.WriteString(labelStyle.Render("Status: "))
	b.WriteString(valueStyle.Render(m.status))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓:select  ←/→:adjust  p:play  s:stop  w:save  v:view  r:render  q:quit"))
	b.WriteString("\n")
	return b.String()
}

func renderBar(value, total float64, width int) string {
	filled := 0
	if total > 0 {
		filled = int(value / total * float64(width))
	}
	return strings.Repeat("█", min(width, filled)) + strings.Repeat("░", width-min(width, filled))
}

func formatValue(v float64, unit string) string {
	s := fmt.Sprintf("%g", v)
	if unit != "" {
		s += " " + unit
	}
	return s
}
