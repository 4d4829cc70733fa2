package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashWarning
	flashError
)

const flashDuration = 3 * time.Second

type clearFlashMsg struct {
	seq int
}

func (k flashKind) style() lipgloss.Style {
	switch k {
	case flashSuccess:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case flashWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case flashError:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

// withFlash shows a transient message and schedules its removal. Newer
// flashes invalidate pending clears via the sequence counter.
func (m appModel) withFlash(kind flashKind, text string, extra ...tea.Cmd) (appModel, tea.Cmd) {
	m.flash = text
	m.flashKind = kind
	m.flashSeq++
	seq := m.flashSeq
	clear := tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
	cmds := append([]tea.Cmd{clear}, extra...)
	return m, tea.Batch(cmds...)
}
