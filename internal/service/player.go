package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"tattletale/internal/api"
	"tattletale/internal/constants"
	"tattletale/internal/domain"
)

// PlayerService turns a player name into a normalized PlayerRecord by
// fanning out the three API lookups a record is assembled from.
type PlayerService struct {
	api    *api.Client
	logger zerolog.Logger

	queueID int

	// now is swapped out in tests.
	now func() time.Time
}

func NewPlayerService(client *api.Client, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		api:     client,
		logger:  logger.With().Str("component", "player-service").Logger(),
		queueID: constants.QueueRankedConquest,
		now:     time.Now,
	}
}

type callResult[T any] struct {
	rows []T
	err  error
}

// Fetch looks up one player. It returns (nil, nil) when the player does not
// exist; any other failure is an error. The three API calls are issued
// concurrently and harvested in stages: a failed prerequisite cancels the
// calls still in flight, since partial statistics are never shown.
func (s *PlayerService) Fetch(ctx context.Context, name string) (*domain.PlayerRecord, error) {
	logger := s.logger.With().
		Str("lookup_id", uuid.New().String()).
		Str("player", name).
		Logger()

	ctx, cancel := context.WithTimeout(ctx, constants.LookupTimeout)
	defer cancel()

	profileCh := make(chan callResult[api.PlayerProfile], 1)
	queueCh := make(chan callResult[api.QueueStat], 1)
	historyCh := make(chan callResult[api.Match], 1)

	go func() {
		rows, err := s.api.GetPlayer(ctx, name)
		profileCh <- callResult[api.PlayerProfile]{rows: rows, err: err}
	}()
	go func() {
		rows, err := s.api.GetQueueStats(ctx, name, s.queueID)
		queueCh <- callResult[api.QueueStat]{rows: rows, err: err}
	}()
	go func() {
		rows, err := s.api.GetMatchHistory(ctx, name)
		historyCh <- callResult[api.Match]{rows: rows, err: err}
	}()

	profile := <-profileCh
	if profile.err != nil {
		cancel()
		logger.Error().Err(profile.err).Msg("failed to fetch profile")
		return nil, fmt.Errorf("failed to fetch profile: %w", profile.err)
	}
	if len(profile.rows) == 0 {
		cancel()
		logger.Info().Msg("player not found")
		return nil, nil
	}

	record := normalizeProfile(&profile.rows[0])

	queue := <-queueCh
	if queue.err != nil {
		cancel()
		logger.Error().Err(queue.err).Msg("failed to fetch queue stats")
		return nil, &QueryError{Stage: "queue stats", Err: queue.err}
	}
	s.applyQueueStats(record, queue.rows)

	history := <-historyCh
	if history.err != nil {
		logger.Error().Err(history.err).Msg("failed to fetch match history")
		return nil, &QueryError{Stage: "match history", Err: history.err}
	}
	s.applyMatchHistory(record, history.rows)

	logger.Info().Msg("player fetched")
	return record, nil
}

// FetchAll looks up each name with a bounded fan-out. One player's failure
// never blocks another's; failures are recorded per slot.
func (s *PlayerService) FetchAll(ctx context.Context, names []string) []domain.LobbyPlayer {
	players := make([]domain.LobbyPlayer, len(names))

	g := new(errgroup.Group)
	g.SetLimit(constants.MaxConcurrentLookups)

	for i, name := range names {
		players[i].Name = name
		g.Go(func() error {
			record, err := s.Fetch(ctx, name)
			if err != nil {
				players[i].Error = err.Error()
				return nil
			}
			players[i].Record = record
			return nil
		})
	}

	g.Wait()
	return players
}

// normalizeProfile coerces the raw profile to display strings. Private
// profiles arrive with zeroed integers and null strings; those pass through
// as-is, no privacy state is inferred.
func normalizeProfile(p *api.PlayerProfile) *domain.PlayerRecord {
	created := "None"
	if p.CreatedDatetime != nil {
		created = fullDate(*p.CreatedDatetime)
	}

	return &domain.PlayerRecord{
		Level:   strconv.Itoa(p.Level),
		Hours:   strconv.Itoa(p.HoursPlayed),
		Created: created,
		Status:  p.PersonalStatusMessage,
		AltName: p.Name,
		MMR:     fmt.Sprintf("%.0f", p.RankStatConquest),
	}
}

func (s *PlayerService) applyQueueStats(record *domain.PlayerRecord, stats []api.QueueStat) {
	total := 0
	for _, st := range stats {
		total += st.Matches
	}
	record.Matches = strconv.Itoa(total)

	// Top gods by match count; equal counts keep the API's order.
	top := make([]api.QueueStat, len(stats))
	copy(top, stats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Matches > top[j].Matches })
	if len(top) > constants.TopGodCount {
		top = top[:constants.TopGodCount]
	}

	now := s.now()
	for _, st := range top {
		record.Gods = append(record.Gods, domain.GodStat{
			Name:    st.God,
			Matches: formatShare(st.Matches, total),
			Wins:    formatShare(st.Wins, st.Matches),
			Last:    s.ago(st.LastPlayed, now),
		})
	}
}

func (s *PlayerService) applyMatchHistory(record *domain.PlayerRecord, history []api.Match) {
	var ranked []api.Match
	for _, m := range history {
		if m.QueueID == s.queueID {
			ranked = append(ranked, m)
		}
	}

	recent := ranked
	if len(recent) > constants.TopMatchCount {
		recent = recent[:constants.TopMatchCount]
	}
	for _, m := range recent {
		record.RecentMatches = append(record.RecentMatches, domain.MatchRecord{
			Outcome: m.WinStatus,
			Length:  fmt.Sprintf("%dm", m.Minutes),
			Role:    m.Role,
			God:     m.God,
			KDA:     fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists),
		})
	}

	record.Last = "None"
	if len(ranked) > 0 {
		record.Last = s.ago(ranked[0].MatchTime, s.now())
	}
}

// ago renders a relative date for an API datetime, falling back to the raw
// value when it does not parse.
func (s *PlayerService) ago(value string, now time.Time) string {
	ts, err := parseAPITime(value)
	if err != nil {
		return value
	}
	return agoString(ts, now)
}
