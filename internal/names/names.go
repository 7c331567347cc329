// Package names resolves the lobby roster from the tool's inputs: names
// given directly, a names file, or a previously saved lobby.
package names

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tattletale/internal/domain"
	"tattletale/internal/repository"
)

// LobbyGetter is the slice of the history repository Resolve needs.
type LobbyGetter interface {
	GetLobby(ctx context.Context, nth int) (*repository.Lobby, error)
}

// Inputs describes where the roster comes from. Exactly one source must be
// set.
type Inputs struct {
	Args     []string
	File     string
	HistoryN int
}

// Resolve produces the lobby roster. fromHistory reports whether the roster
// was loaded from a saved lobby (those are not re-saved).
func Resolve(ctx context.Context, in Inputs, history LobbyGetter) (players []domain.LobbyPlayer, fromHistory bool, err error) {
	sources := 0
	if len(in.Args) > 0 {
		sources++
	}
	if in.File != "" {
		sources++
	}
	if in.HistoryN > 0 {
		sources++
	}
	if sources > 1 {
		return nil, false, fmt.Errorf("player names, a names file and a history entry are mutually exclusive")
	}

	switch {
	case in.HistoryN > 0:
		lobby, err := history.GetLobby(ctx, in.HistoryN)
		if err != nil {
			return nil, false, err
		}
		return lobby.Players, true, nil

	case in.File != "":
		players, err := fromFile(in.File)
		return players, false, err

	case len(in.Args) > 0:
		for _, name := range in.Args {
			players = append(players, domain.LobbyPlayer{Name: strings.TrimSpace(name)})
		}
		return players, false, nil

	default:
		return nil, false, fmt.Errorf("no players selected")
	}
}

// fromFile loads a roster from a file: either a JSON lobby dump or plain
// text with one name per line.
func fromFile(path string) ([]domain.LobbyPlayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read names file: %w", err)
	}

	var players []domain.LobbyPlayer
	if err := json.Unmarshal(data, &players); err == nil {
		if len(players) == 0 {
			return nil, fmt.Errorf("names file %s holds no players", path)
		}
		return players, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			players = append(players, domain.LobbyPlayer{Name: name})
		}
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("names file %s holds no players", path)
	}
	return players, nil
}
