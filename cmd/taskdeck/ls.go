package main

import (
	"github.com/spf13/cobra"

	"taskdeck/internal/tui"
)

func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Browse tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(app.store, app.prefs, app.tr)
		},
	}
}
