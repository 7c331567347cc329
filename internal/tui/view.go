package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tattletale/internal/domain"
)

const panelWidth = 30

// View renders the lobby grid.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Players:"))
	b.WriteString("\n")
	b.WriteString(m.renderNameRow())
	b.WriteString("\n\n")
	b.WriteString(m.renderPanels())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[←/→] select  [type] edit name  [enter] look up  [esc] quit"))
	return b.String()
}

// renderNameRow renders the editable names, marking the selected slot and
// any buffer that diverges from the looked-up name.
func (m Model) renderNameRow() string {
	cells := make([]string, len(m.players))
	for i := range m.players {
		name := m.buffers[i]
		if name == "" {
			name = "?"
		}
		if m.buffers[i] != m.players[i].Name {
			name += " (*)"
		}
		if i == m.selected {
			cells[i] = selectedNameStyle.Render(name)
		} else {
			cells[i] = nameStyle.Render(name)
		}
	}
	return strings.Join(cells, "  ")
}

func (m Model) renderPanels() string {
	panels := make([]string, len(m.players))
	for i := range m.players {
		lines := m.panelLines(i)
		for j, line := range lines {
			lines[j] = truncate(line, panelWidth)
		}
		content := strings.Join(lines, "\n")

		style := panelStyle
		if i == m.selected {
			style = selectedPanelStyle
		}
		panels[i] = style.Width(panelWidth).Render(content)
	}

	// Wrap panels into rows when the terminal is too narrow for one row.
	perRow := len(panels)
	if m.width > 0 {
		if fit := m.width / (panelWidth + 2); fit > 0 && fit < perRow {
			perRow = fit
		}
	}

	var rows []string
	for start := 0; start < len(panels); start += perRow {
		end := start + perRow
		if end > len(panels) {
			end = len(panels)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) panelLines(i int) []string {
	player := m.players[i]
	switch {
	case m.skipped[i]:
		return []string{faintStyle.Render("skipped")}
	case m.loading[i]:
		return []string{faintStyle.Render("looking up...")}
	case player.Error != "":
		return []string{errorStyle.Render("error"), player.Error}
	case player.Record == nil:
		if m.fetched[i] {
			return []string{faintStyle.Render("not found")}
		}
		return []string{faintStyle.Render("...")}
	}
	return PlayerLines(player)
}

// PlayerLines renders one looked-up player as plain text lines. The grid
// panels and the non-interactive output share this layout.
func PlayerLines(player domain.LobbyPlayer) []string {
	r := player.Record
	lines := []string{
		"Level:    " + r.Level,
		"Hours:    " + r.Hours,
		"Created:  " + r.Created,
		"Status:   " + r.Status,
		"Alt name: " + r.AltName,
		"",
		"Ranked conquest",
		"MMR:     " + r.MMR,
		"Matches: " + r.Matches,
		"Last:    " + r.Last,
	}

	lines = append(lines, "", "Most played gods")
	if len(r.Gods) == 0 {
		lines = append(lines, "  none")
	}
	for _, god := range r.Gods {
		lines = append(lines,
			god.Name,
			fmt.Sprintf("  %s won %s", god.Matches, god.Wins),
			"  "+god.Last,
		)
	}

	lines = append(lines, "", "Recent matches")
	if len(r.RecentMatches) == 0 {
		lines = append(lines, "  none")
	}
	for _, match := range r.RecentMatches {
		lines = append(lines, fmt.Sprintf("%s %s %s %s %s",
			match.Outcome, match.Length, match.Role, match.God, match.KDA))
	}
	return lines
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
