package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tattletale/internal/config"
	"tattletale/internal/domain"
	"tattletale/internal/names"
	"tattletale/internal/repository"
	"tattletale/internal/service"
	"tattletale/internal/tui"
)

type lookupOptions struct {
	file    string
	history int
	noSave  bool
	plain   bool
}

func newRootCommand() *cobra.Command {
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:   "tattletale [name]...",
		Short: "Scout Smite lobby players' ranked history",
		Long: `tattletale looks up Smite players and shows their level, ranked-conquest
record, most played gods and recent matches, one panel per player.

Names come from the arguments, from a file (--file), or from a previously
saved lobby (--history). Looked-up lobbies are recorded so they can be
reopened later.`,
		Example: `  # Look up a lobby
  tattletale Scout "Ymir Main" Weaver

  # Names from a file, printed instead of the interactive grid
  tattletale --file lobby.txt --plain

  # Reopen the second most recent lobby
  tattletale --history 2`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read names from a file (plain text or a saved lobby JSON)")
	cmd.Flags().IntVar(&opts.history, "history", 0, "reopen the nth most recent lobby (1 = newest)")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not record this lobby in history")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the records instead of opening the grid")
	cmd.MarkFlagsMutuallyExclusive("file", "history")

	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newPingCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func runLookup(cmd *cobra.Command, opts *lookupOptions, args []string) error {
	ctx := cmd.Context()

	var (
		cfg  *config.Config
		svc  *service.PlayerService
		repo *repository.HistoryRepository
		log  zerolog.Logger
	)
	app, err := startApp(ctx, !opts.plain, &cfg, &svc, &repo, &log)
	if err != nil {
		return err
	}
	defer stopApp(app)

	inputs := names.Inputs{Args: args, File: opts.file, HistoryN: opts.history}
	players, fromHistory, err := names.Resolve(ctx, inputs, repo)
	if err != nil {
		return err
	}

	if opts.plain {
		players = lookupPlain(ctx, cmd, svc, cfg, players)
	} else {
		model := tui.NewModel(ctx, players, svc.Fetch, cfg.IsSkipped)
		program := tea.NewProgram(model, tea.WithAltScreen())
		final, err := program.Run()
		if err != nil {
			return fmt.Errorf("failed to run lobby grid: %w", err)
		}
		if m, ok := final.(tui.Model); ok {
			players = m.Players()
		}
	}

	// Lobbies reopened from history are not recorded again.
	if fromHistory || opts.noSave {
		return nil
	}
	id, err := repo.SaveLobby(ctx, players)
	if err != nil {
		return fmt.Errorf("failed to save lobby: %w", err)
	}
	log.Info().Str("lobby_id", id).Msg("lobby recorded")
	return nil
}

// lookupPlain fills in the roster's missing records and prints every player.
func lookupPlain(ctx context.Context, cmd *cobra.Command, svc *service.PlayerService, cfg *config.Config, players []domain.LobbyPlayer) []domain.LobbyPlayer {
	var (
		pendingIdx   []int
		pendingNames []string
	)
	for i, player := range players {
		if player.Record != nil || player.Error != "" || cfg.IsSkipped(player.Name) {
			continue
		}
		pendingIdx = append(pendingIdx, i)
		pendingNames = append(pendingNames, player.Name)
	}

	fetched := svc.FetchAll(ctx, pendingNames)
	for j, i := range pendingIdx {
		players[i] = fetched[j]
	}

	out := cmd.OutOrStdout()
	for i, player := range players {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "=== %s ===\n", player.Name)
		switch {
		case cfg.IsSkipped(player.Name):
			fmt.Fprintln(out, "skipped")
		case player.Error != "":
			fmt.Fprintln(out, "error:", player.Error)
		case player.Record == nil:
			fmt.Fprintln(out, "not found")
		default:
			for _, line := range tui.PlayerLines(player) {
				fmt.Fprintln(out, line)
			}
		}
	}
	return players
}
