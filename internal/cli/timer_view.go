package cli

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/timer"
)

type watchTickMsg time.Time

type watchKeymap struct {
	Quit key.Binding
}

func newWatchKeymap() watchKeymap {
	return watchKeymap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "exit"),
		),
	}
}

// watchModel is the live elapsed-time view shown by "start --watch".
// The elapsed figure comes from the controller each tick, so the view
// stays correct even when ticks are delayed or the host suspends.
type watchModel struct {
	app    *App
	taskID string
	keys   watchKeymap
	spin   spinner.Model
	done   bool
}

func newWatchModel(app *App, taskID string) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	return watchModel{app: app, taskID: taskID, keys: newWatchKeymap(), spin: s}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(watchTick(), m.spin.Tick)
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.done = true
			return m, tea.Quit
		}
	case watchTickMsg:
		if _, ok := m.app.Timers.Session(m.taskID); !ok {
			m.done = true
			return m, tea.Quit
		}
		return m, watchTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}

	sess, ok := m.app.Timers.Session(m.taskID)
	if !ok {
		return ""
	}

	state := m.spin.View() + formatter.StyleGreen.Render("tracking")
	if sess.State == timer.StateStopped {
		state = formatter.StyleYellow.Render("■ pending save")
	}

	return formatter.Header("tally") + "\n" +
		state + "  " +
		formatter.StyleBold.Render(formatter.Elapsed(m.app.Timers.Elapsed(m.taskID))) + "\n" +
		formatter.Dim("task "+m.taskID+"  ·  q to exit") + "\n"
}
