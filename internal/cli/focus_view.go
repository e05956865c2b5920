package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/cli/formatter"
	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/focuslock"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const focusBarWidth = 30

// focusTickMsg carries the runner's session state after each second and
// whether that tick completed a held break.
type focusTickMsg struct {
	session domain.FocusSession
	broken  bool
}

// focusDoneMsg is sent when the runner returns.
type focusDoneMsg struct {
	completion *focuslock.Completion
	err        error
}

type focusOutcome int

const (
	focusRunning focusOutcome = iota
	focusCompleted
	focusBroken
	focusQuit
)

type focusKeyMap struct {
	Break key.Binding
	Quit  key.Binding
}

func defaultFocusKeyMap() focusKeyMap {
	return focusKeyMap{
		Break: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "hold to break")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "abandon")),
	}
}

// focusModel renders a running focus lock. The countdown itself is driven
// by focuslock.Runner; the model only displays ticks and handles the
// emergency break, which must be held for the configured seconds.
type focusModel struct {
	state    domain.FocusSession
	settings domain.FocusLockSettings
	hold     *focuslock.BreakHold
	keys     focusKeyMap
	cancel   context.CancelFunc

	outcome focusOutcome
	err     error
}

func newFocusModel(settings domain.FocusLockSettings, minutes int, cancel context.CancelFunc) *focusModel {
	total := minutes * 60
	return &focusModel{
		state:    domain.FocusSession{Active: true, DurationSeconds: total, RemainingSeconds: total},
		settings: settings,
		hold:     focuslock.NewBreakHold(settings.BreakDurationSec),
		keys:     defaultFocusKeyMap(),
		cancel:   cancel,
	}
}

func (m *focusModel) Init() tea.Cmd { return nil }

// observeTick runs on the runner goroutine. A break completed on this tick
// cancels the run before the runner can credit it.
func (m *focusModel) observeTick(s domain.FocusSession) focusTickMsg {
	broken := m.hold.Tick()
	if broken {
		m.cancel()
	}
	return focusTickMsg{session: s, broken: broken}
}

func (m *focusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusTickMsg:
		if m.outcome != focusRunning {
			return m, nil
		}
		m.state = msg.session
		if msg.broken {
			m.outcome = focusBroken
			return m, tea.Quit
		}
		return m, nil

	case focusDoneMsg:
		if m.outcome != focusRunning {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.outcome = focusCompleted
			m.state.Active = false
			m.state.RemainingSeconds = 0
		} else {
			m.outcome = focusQuit
		}
		return m, tea.Quit

	case tea.KeyMsg:
		// Any key releases a break in progress.
		if m.hold.Holding() {
			m.hold.Release()
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.outcome = focusQuit
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Break):
			m.hold.Begin()
		}
	}
	return m, nil
}

func (m *focusModel) View() string {
	var b strings.Builder

	clock := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).
		Render(focuslock.FormatClock(m.state.RemainingSeconds))
	b.WriteString(formatter.StyleHeader.Render("FOCUS LOCK") + "  " + clock + "\n\n")
	b.WriteString(formatter.RenderProgress(m.progress(), focusBarWidth) + "\n\n")
	b.WriteString(formatter.Dim("Blocked: ") + formatter.FormatBlockedApps(m.settings.BlockedApps) + "\n\n")

	if m.hold.Holding() {
		b.WriteString(formatter.StyleRed.Render(m.settings.BreakPrompt))
		b.WriteString(fmt.Sprintf(" %s\n", formatter.Dim(fmt.Sprintf("hold %ds, any key to stay", m.hold.Left()))))
		return b.String()
	}

	help := []string{}
	for _, k := range []key.Binding{m.keys.Break, m.keys.Quit} {
		h := k.Help()
		help = append(help, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	b.WriteString(strings.Join(help, formatter.Dim(" · ")) + "\n")
	return b.String()
}

func (m *focusModel) progress() float64 {
	if m.state.DurationSeconds == 0 {
		return 0
	}
	return float64(m.state.DurationSeconds-m.state.RemainingSeconds) / float64(m.state.DurationSeconds)
}
