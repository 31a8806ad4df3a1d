package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	var (
		prefsPath   string
		pollSeconds int
	)

	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "Browse a live record feed as a searchable, sortable grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.configPath,
				PrefsPath:  prefsPath,
				PollEvery:  pollSeconds,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config path (defaults to ~/.config/tally/config.toml)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences path (defaults to ~/.config/tally/prefs.toml)")
	cmd.Flags().IntVar(&pollSeconds, "poll", 0, "refresh interval in seconds (defaults to 5s)")

	cmd.AddCommand(newQueryCommand(opts))

	return cmd
}
