package cmd

import (
	"encoding/json"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lloydmeta/esversions/internal/api/models/version"
	"github.com/lloydmeta/esversions/internal/infra/server"
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.AddCommand(showConfigCmd, showTableCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show information",
	Long:  `Sometimes you just need to know more`,
}

var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config",
	Long:  `Renders the config that we end up using`,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := json.MarshalIndent(&appConfig, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Error marshalling config to JSON")
		} else {
			log.Info().Msg(string(out))
		}
	},
}

var showTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show the version table",
	Long:  `Renders every ECMAScript version the configured table knows about, including ones not ratified yet`,
	Run: func(cmd *cobra.Command, args []string) {
		registry, err := server.NewRegistry(appConfig.Registry, clockwork.NewRealClock())
		if err != nil {
			log.Fatal().Err(err).Msg("Could not generate the version table")
		}
		out, err := json.MarshalIndent(version.FromDomainVersions(registry.All()), "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Error marshalling version table to JSON")
		} else {
			_, _ = cmd.OutOrStdout().Write(append(out, '\n'))
		}
	},
}
