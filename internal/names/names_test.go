package names

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tattletale/internal/domain"
	"tattletale/internal/repository"
)

type stubHistory struct {
	lobby *repository.Lobby
	err   error
}

func (s *stubHistory) GetLobby(ctx context.Context, nth int) (*repository.Lobby, error) {
	return s.lobby, s.err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve_Args(t *testing.T) {
	players, fromHistory, err := Resolve(context.Background(), Inputs{Args: []string{"Scout", " Kapitán "}}, nil)
	require.NoError(t, err)
	assert.False(t, fromHistory)
	require.Len(t, players, 2)
	assert.Equal(t, "Scout", players[0].Name)
	assert.Equal(t, "Kapitán", players[1].Name)
}

func TestResolve_NoSource(t *testing.T) {
	_, _, err := Resolve(context.Background(), Inputs{}, nil)
	assert.ErrorContains(t, err, "no players selected")
}

func TestResolve_MutuallyExclusiveSources(t *testing.T) {
	_, _, err := Resolve(context.Background(), Inputs{Args: []string{"Scout"}, HistoryN: 1}, nil)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestResolve_PlainTextFile(t *testing.T) {
	path := writeFile(t, "Scout\n\n  Ymir Main  \n")

	players, fromHistory, err := Resolve(context.Background(), Inputs{File: path}, nil)
	require.NoError(t, err)
	assert.False(t, fromHistory)
	require.Len(t, players, 2)
	assert.Equal(t, "Scout", players[0].Name)
	assert.Equal(t, "Ymir Main", players[1].Name)
}

func TestResolve_JSONFile(t *testing.T) {
	path := writeFile(t, `[{"name":"Scout","info":{"level":"42"}},{"name":"Nobody"}]`)

	players, _, err := Resolve(context.Background(), Inputs{File: path}, nil)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Scout", players[0].Name)
	require.NotNil(t, players[0].Record)
	assert.Equal(t, "42", players[0].Record.Level)
	assert.Nil(t, players[1].Record)
}

func TestResolve_EmptyFile(t *testing.T) {
	path := writeFile(t, "\n\n")

	_, _, err := Resolve(context.Background(), Inputs{File: path}, nil)
	assert.ErrorContains(t, err, "holds no players")
}

func TestResolve_MissingFile(t *testing.T) {
	_, _, err := Resolve(context.Background(), Inputs{File: filepath.Join(t.TempDir(), "nope.txt")}, nil)
	assert.ErrorContains(t, err, "failed to read names file")
}

func TestResolve_History(t *testing.T) {
	stub := &stubHistory{lobby: &repository.Lobby{
		ID:      "abc123",
		Players: []domain.LobbyPlayer{{Name: "Scout"}},
	}}

	players, fromHistory, err := Resolve(context.Background(), Inputs{HistoryN: 1}, stub)
	require.NoError(t, err)
	assert.True(t, fromHistory)
	require.Len(t, players, 1)
	assert.Equal(t, "Scout", players[0].Name)
}

func TestResolve_HistoryError(t *testing.T) {
	stub := &stubHistory{err: fmt.Errorf("no lobby #7 in history")}

	_, _, err := Resolve(context.Background(), Inputs{HistoryN: 7}, stub)
	assert.ErrorContains(t, err, "no lobby #7")
}
