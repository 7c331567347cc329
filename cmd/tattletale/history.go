package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tattletale/internal/constants"
	"tattletale/internal/repository"
)

func newHistoryCommand() *cobra.Command {
	limit := constants.HistoryListLimit

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently looked-up lobbies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", constants.HistoryListLimit, "number of lobbies to list")
	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()

	var repo *repository.HistoryRepository
	app, err := startApp(ctx, false, &repo)
	if err != nil {
		return err
	}
	defer stopApp(app)

	lobbies, err := repo.ListLobbies(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(lobbies) == 0 {
		fmt.Fprintln(out, "no lobbies recorded yet")
		return nil
	}
	for i, lobby := range lobbies {
		playerNames := make([]string, len(lobby.Players))
		for j, player := range lobby.Players {
			playerNames[j] = player.Name
		}
		fmt.Fprintf(out, "%2d  %s  %s\n",
			i+1,
			lobby.CreatedAt.UTC().Format("2006-01-02 15:04"),
			strings.Join(playerNames, ", "),
		)
	}
	return nil
}
