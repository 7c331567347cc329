// Package tui renders the lobby grid: one panel per player, editable names,
// asynchronous lookups.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tattletale/internal/domain"
)

// FetchFunc looks up one player. A nil record with a nil error means the
// player was not found.
type FetchFunc func(ctx context.Context, name string) (*domain.PlayerRecord, error)

// SkipFunc reports whether a name is on the skip list and should never be
// looked up.
type SkipFunc func(name string) bool

// Model is the bubbletea model for the lobby grid.
type Model struct {
	players []domain.LobbyPlayer

	// buffers holds the editable name per slot; it diverges from the
	// player's name while the user types.
	buffers []string

	loading []bool
	fetched []bool
	skipped []bool

	selected int
	width    int
	height   int
	quitting bool

	fetch FetchFunc
	skip  SkipFunc
	ctx   context.Context
}

// NewModel builds the grid for a roster. Players that already carry a record
// (a lobby loaded from history) are not re-fetched.
func NewModel(ctx context.Context, players []domain.LobbyPlayer, fetch FetchFunc, skip SkipFunc) Model {
	m := Model{
		players: players,
		buffers: make([]string, len(players)),
		loading: make([]bool, len(players)),
		fetched: make([]bool, len(players)),
		skipped: make([]bool, len(players)),
		fetch:   fetch,
		skip:    skip,
		ctx:     ctx,
	}
	for i, player := range players {
		m.buffers[i] = player.Name
		if player.Record != nil || player.Error != "" {
			m.fetched[i] = true
		}
		if skip != nil && skip(player.Name) {
			m.skipped[i] = true
			m.fetched[i] = true
		}
	}
	return m
}

// Init kicks off a lookup for every slot that still needs one.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.players {
		if !m.fetched[i] && !m.skipped[i] {
			m.loading[i] = true
			cmds = append(cmds, fetchPlayerCmd(m.ctx, m.fetch, i, m.players[i].Name))
		}
	}
	return tea.Batch(cmds...)
}

// Players returns the roster with the lookup results merged in, for saving
// to history after the grid closes.
func (m Model) Players() []domain.LobbyPlayer {
	return m.players
}

// fetchPlayerCmd returns a command that looks up one slot.
func fetchPlayerCmd(ctx context.Context, fetch FetchFunc, index int, name string) tea.Cmd {
	return func() tea.Msg {
		record, err := fetch(ctx, name)
		return playerFetchedMsg{index: index, record: record, err: err}
	}
}
