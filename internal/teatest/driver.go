// Package teatest drives bubbletea models synchronously in tests: Update is
// called directly and returned Cmds are run inline, so no tea.Program or
// terminal is needed.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds chained Cmds.
const MaxDrainDepth = 100

// cmdTimeout skips Cmds that block on timers, such as tea.Tick.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced. Later sends
	// are ignored, as they would be by a stopped program.
	Quitting bool
}

func New(t *testing.T, model tea.Model) *Driver {
	return &Driver{T: t, Model: model}
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	switch msg := run(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drain(next, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
