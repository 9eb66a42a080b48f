package tui

import "time"

import tea "github.com/charmbracelet/bubbletea"

import "github.com/neurlang/sonify/session"

// Run drives sess interactively until the user quits. Renders go through
// a Scheduler with the given debounce delay.
func Run(sess *session.Session, settings session.Settings, debounce time.Duration, opts Options) error {
	var p *tea.Program
	sched := session.NewScheduler(sess.Render, debounce, func(r session.Result) {
		p.Send(RenderedMsg(r))
	})
	defer sched.Close()

	p = tea.NewProgram(NewModel(sess, settings, sched.Submit, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
