package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tattletale/internal/api"
)

func newPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the Smite API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var client *api.Client
			app, err := startApp(ctx, false, &client)
			if err != nil {
				return err
			}
			defer stopApp(app)

			reply, err := client.Ping(ctx)
			if err != nil {
				return fmt.Errorf("failed to ping the API: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
