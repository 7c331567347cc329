package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"tattletale/internal/constants"
	"tattletale/internal/domain"
)

// Lobby is one saved lookup: the players in screen order with whatever each
// lookup produced.
type Lobby struct {
	ID        string
	CreatedAt time.Time
	Players   []domain.LobbyPlayer
}

// HistoryRepository persists looked-up lobbies.
type HistoryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewHistoryRepository(db *sql.DB, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// SaveLobby stores a lobby and returns its id.
func (r *HistoryRepository) SaveLobby(ctx context.Context, players []domain.LobbyPlayer) (string, error) {
	if len(players) == 0 {
		return "", fmt.Errorf("refusing to save an empty lobby")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, err := gonanoid.New(constants.LobbyIDLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate lobby id: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO lobbies (id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC(),
	); err != nil {
		return "", fmt.Errorf("failed to insert lobby: %w", err)
	}

	for position, player := range players {
		var recordJSON sql.NullString
		if player.Record != nil {
			data, err := json.Marshal(player.Record)
			if err != nil {
				return "", fmt.Errorf("failed to marshal record for %q: %w", player.Name, err)
			}
			recordJSON = sql.NullString{String: string(data), Valid: true}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lobby_players (lobby_id, position, name, record_json, error)
			 VALUES (?, ?, ?, ?, ?)`,
			id, position, player.Name, recordJSON, player.Error,
		); err != nil {
			return "", fmt.Errorf("failed to insert lobby player %q: %w", player.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit lobby: %w", err)
	}

	r.logger.Info().Str("lobby_id", id).Int("players", len(players)).Msg("lobby saved")
	return id, nil
}

// ListLobbies returns the most recent lobbies, newest first, with players
// attached.
func (r *HistoryRepository) ListLobbies(ctx context.Context, limit int) ([]Lobby, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM lobbies ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list lobbies: %w", err)
	}
	defer rows.Close()

	var lobbies []Lobby
	for rows.Next() {
		var lobby Lobby
		if err := rows.Scan(&lobby.ID, &lobby.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lobby: %w", err)
		}
		lobbies = append(lobbies, lobby)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lobbies: %w", err)
	}

	for i := range lobbies {
		players, err := r.lobbyPlayers(ctx, lobbies[i].ID)
		if err != nil {
			return nil, err
		}
		lobbies[i].Players = players
	}
	return lobbies, nil
}

// GetLobby returns the nth most recent lobby, 1 being the newest.
func (r *HistoryRepository) GetLobby(ctx context.Context, nth int) (*Lobby, error) {
	if nth < 1 {
		return nil, fmt.Errorf("history index must be positive, got %d", nth)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var lobby Lobby
	err := r.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM lobbies ORDER BY created_at DESC, id LIMIT 1 OFFSET ?`,
		nth-1,
	).Scan(&lobby.ID, &lobby.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no lobby #%d in history", nth)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lobby: %w", err)
	}

	players, err := r.lobbyPlayers(ctx, lobby.ID)
	if err != nil {
		return nil, err
	}
	lobby.Players = players
	return &lobby, nil
}

func (r *HistoryRepository) lobbyPlayers(ctx context.Context, lobbyID string) ([]domain.LobbyPlayer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, record_json, error FROM lobby_players
		 WHERE lobby_id = ? ORDER BY position`,
		lobbyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load lobby players: %w", err)
	}
	defer rows.Close()

	var players []domain.LobbyPlayer
	for rows.Next() {
		var player domain.LobbyPlayer
		var recordJSON sql.NullString
		if err := rows.Scan(&player.Name, &recordJSON, &player.Error); err != nil {
			return nil, fmt.Errorf("failed to scan lobby player: %w", err)
		}
		if recordJSON.Valid {
			var record domain.PlayerRecord
			if err := json.Unmarshal([]byte(recordJSON.String), &record); err != nil {
				return nil, fmt.Errorf("failed to unmarshal record for %q: %w", player.Name, err)
			}
			player.Record = &record
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lobby players: %w", err)
	}
	return players, nil
}
