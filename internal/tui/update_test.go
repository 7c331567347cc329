package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tattletale/internal/constants"
	"tattletale/internal/domain"
)

// recordingFetch counts lookups per name and serves canned records.
type recordingFetch struct {
	mu      sync.Mutex
	calls   map[string]int
	records map[string]*domain.PlayerRecord
	err     error
}

func newRecordingFetch() *recordingFetch {
	return &recordingFetch{
		calls:   map[string]int{},
		records: map[string]*domain.PlayerRecord{},
	}
}

func (f *recordingFetch) fetch(ctx context.Context, name string) (*domain.PlayerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[name], nil
}

func (f *recordingFetch) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func newTestModel(t *testing.T, fetch *recordingFetch, names ...string) Model {
	t.Helper()
	players := make([]domain.LobbyPlayer, len(names))
	for i, name := range names {
		players[i] = domain.LobbyPlayer{Name: name}
	}
	return NewModel(context.Background(), players, fetch.fetch, nil)
}

func TestInit_FetchesEverySlot(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout", "Ymir Main")

	cmd := model.Init()
	require.NotNil(t, cmd)
	drainCmd(cmd)

	assert.Equal(t, 1, fetch.count("Scout"))
	assert.Equal(t, 1, fetch.count("Ymir Main"))
}

func TestInit_SkipsPreloadedRecords(t *testing.T) {
	fetch := newRecordingFetch()
	players := []domain.LobbyPlayer{
		{Name: "Scout", Record: &domain.PlayerRecord{Level: "42"}},
		{Name: "Fresh"},
	}
	model := NewModel(context.Background(), players, fetch.fetch, nil)

	drainCmd(model.Init())

	assert.Zero(t, fetch.count("Scout"))
	assert.Equal(t, 1, fetch.count("Fresh"))
}

func TestInit_SkipList(t *testing.T) {
	fetch := newRecordingFetch()
	players := []domain.LobbyPlayer{{Name: "Scout"}, {Name: "Smurf"}}
	skip := func(name string) bool { return name == "Smurf" }
	model := NewModel(context.Background(), players, fetch.fetch, skip)

	drainCmd(model.Init())

	assert.Equal(t, 1, fetch.count("Scout"))
	assert.Zero(t, fetch.count("Smurf"))
	assert.True(t, model.skipped[1])
}

func TestUpdate_PlayerFetched(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout")
	model.loading[0] = true

	updated, _ := model.Update(playerFetchedMsg{
		index:  0,
		record: &domain.PlayerRecord{Level: "42"},
	})
	m := updated.(Model)

	assert.False(t, m.loading[0])
	assert.True(t, m.fetched[0])
	require.NotNil(t, m.players[0].Record)
	assert.Equal(t, "42", m.players[0].Record.Level)
}

func TestUpdate_PlayerFetchedError(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout")

	updated, _ := model.Update(playerFetchedMsg{index: 0, err: fmt.Errorf("boom")})
	m := updated.(Model)

	assert.Nil(t, m.players[0].Record)
	assert.Equal(t, "boom", m.players[0].Error)
	assert.True(t, m.fetched[0])
}

func TestUpdate_IgnoresOutOfRangeFetch(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout")

	updated, cmd := model.Update(playerFetchedMsg{index: 9})
	assert.Nil(t, cmd)
	assert.NotNil(t, updated)
}

func TestHandleKeyPress_Navigation(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "A", "B", "C")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRight})
	m := updated.(Model)
	assert.Equal(t, 1, m.selected)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	assert.Equal(t, 0, m.selected)

	// Cannot move past the ends.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)
	assert.Equal(t, 0, m.selected)
}

func TestHandleKeyPress_EditBuffer(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout")

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m := updated.(Model)
	assert.Equal(t, "Scoutx", m.buffers[0])

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = updated.(Model)
	assert.Equal(t, "Scout", m.buffers[0])

	// The looked-up name only changes on enter.
	assert.Equal(t, "Scout", m.players[0].Name)
}

func TestHandleKeyPress_BufferLengthCapped(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "")

	long := strings.Repeat("a", constants.MaxNameLength+10)
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long)})
	m := updated.(Model)

	assert.Len(t, []rune(m.buffers[0]), constants.MaxNameLength)
}

func TestHandleKeyPress_EnterRefetches(t *testing.T) {
	fetch := newRecordingFetch()
	fetch.records["Scout2"] = &domain.PlayerRecord{Level: "7"}
	model := newTestModel(t, fetch, "Scout")
	model.players[0].Record = &domain.PlayerRecord{Level: "42"}
	model.fetched[0] = true
	model.buffers[0] = "Scout2"

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := updated.(Model)

	// The stale record is dropped before the new lookup lands.
	assert.Nil(t, m.players[0].Record)
	assert.Equal(t, "Scout2", m.players[0].Name)
	assert.True(t, m.loading[0])
	require.NotNil(t, cmd)

	msg := cmd()
	fetched, ok := msg.(playerFetchedMsg)
	require.True(t, ok)
	assert.Equal(t, 0, fetched.index)
	require.NotNil(t, fetched.record)
	assert.Equal(t, "7", fetched.record.Level)
}

func TestHandleKeyPress_EnterEmptyBufferIsNoop(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout")
	model.buffers[0] = ""

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestHandleKeyPress_Quit(t *testing.T) {
	fetch := newRecordingFetch()
	model := newTestModel(t, fetch, "Scout")

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m := updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// drainCmd executes a command tree, discarding the messages.
func drainCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			drainCmd(sub)
		}
	}
}
