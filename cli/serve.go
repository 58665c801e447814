package cli

import (
	"cyberx/api"
	"cyberx/config"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scan API server",
		Long: "Run the HTTP API backed by Redis. Settings come from the environment " +
			"and an optional .env file (see CYBERX_ENV_FILE).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return api.Run(cmd.Context(), cfg)
		},
	}
}
