package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tattletale/internal/constants"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case playerFetchedMsg:
		if msg.index < 0 || msg.index >= len(m.players) {
			return m, nil
		}
		m.loading[msg.index] = false
		m.fetched[msg.index] = true
		if msg.err != nil {
			m.players[msg.index].Record = nil
			m.players[msg.index].Error = msg.err.Error()
			return m, nil
		}
		m.players[msg.index].Record = msg.record
		m.players[msg.index].Error = ""
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyLeft:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case tea.KeyRight:
		if m.selected < len(m.players)-1 {
			m.selected++
		}
		return m, nil

	case tea.KeyBackspace, tea.KeyDelete:
		if buf := m.buffers[m.selected]; buf != "" {
			runes := []rune(buf)
			m.buffers[m.selected] = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyEnter:
		return m.refetchSelected()

	case tea.KeySpace:
		return m.appendRunes([]rune{' '})

	case tea.KeyRunes:
		return m.appendRunes(msg.Runes)
	}

	return m, nil
}

func (m Model) appendRunes(runes []rune) (tea.Model, tea.Cmd) {
	buf := []rune(m.buffers[m.selected])
	for _, r := range runes {
		if len(buf) >= constants.MaxNameLength {
			break
		}
		buf = append(buf, r)
	}
	m.buffers[m.selected] = string(buf)
	return m, nil
}

// refetchSelected re-runs the lookup for the selected slot under its edited
// name, dropping whatever record it had.
func (m Model) refetchSelected() (tea.Model, tea.Cmd) {
	i := m.selected
	name := m.buffers[i]
	if name == "" || m.loading[i] {
		return m, nil
	}

	m.players[i].Name = name
	m.players[i].Record = nil
	m.players[i].Error = ""
	m.fetched[i] = false
	m.skipped[i] = m.skip != nil && m.skip(name)
	if m.skipped[i] {
		m.fetched[i] = true
		return m, nil
	}

	m.loading[i] = true
	return m, fetchPlayerCmd(m.ctx, m.fetch, i, name)
}
