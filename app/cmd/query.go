package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	versionController "github.com/lloydmeta/esversions/internal/api/controllers/version"
	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/config"
	"github.com/lloydmeta/esversions/internal/domain/version"
	"github.com/lloydmeta/esversions/internal/infra/server"
)

var (
	queryAt         string
	queryYearOffset int
)

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.PersistentFlags().StringVar(&queryAt, "at", "", "date (YYYY-MM-DD or RFC3339) to query by, defaults to the reference clock")
	queryCmd.PersistentFlags().IntVar(&queryYearOffset, "year-offset", 0, "years to shift the date by")
	queryCmd.AddCommand(queryListCmd, queryLatestCmd, queryEditionCmd, queryVersionCmd, querySortCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query ECMAScript versions",
	Long:  `Answers questions about ECMAScript versions without running the server`,
}

var queryListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List the versions ratified by a date",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.OutOrStdout(), appConfig.Registry, func(ctx context.Context, c versionController.Controller) (interface{}, error) {
			at, err := parseQueryAt(queryAt)
			if err != nil {
				return nil, err
			}
			return orApiError(c.List(ctx, at, queryYearOffset))
		})
	},
}

var queryLatestCmd = &cobra.Command{
	Use:          "latest",
	Short:        "Show the latest version ratified by a date",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.OutOrStdout(), appConfig.Registry, func(ctx context.Context, c versionController.Controller) (interface{}, error) {
			at, err := parseQueryAt(queryAt)
			if err != nil {
				return nil, err
			}
			return orApiError(c.Latest(ctx, at, queryYearOffset))
		})
	},
}

var queryEditionCmd = &cobra.Command{
	Use:          "edition N",
	Short:        "Show the version with the given edition number",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		edition, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid edition [%v]", args[0])
		}
		return runQuery(cmd.OutOrStdout(), appConfig.Registry, func(ctx context.Context, c versionController.Controller) (interface{}, error) {
			return orApiError(c.ByEdition(ctx, version.Edition(edition)))
		})
	},
}

var queryVersionCmd = &cobra.Command{
	Use:          "version ID",
	Short:        "Show the version with the given identifier, e.g. ES2015",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		id := version.Identifier(args[0])
		return runQuery(cmd.OutOrStdout(), appConfig.Registry, func(ctx context.Context, c versionController.Controller) (interface{}, error) {
			return orApiError(c.ByIdentifier(ctx, id))
		})
	},
}

var querySortCmd = &cobra.Command{
	Use:          "sort ID...",
	Short:        "Sort identifiers by ratification date",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]version.Identifier, 0, len(args))
		for _, arg := range args {
			ids = append(ids, version.Identifier(arg))
		}
		return runQuery(cmd.OutOrStdout(), appConfig.Registry, func(ctx context.Context, c versionController.Controller) (interface{}, error) {
			return orApiError(c.Sort(ctx, ids))
		})
	},
}

type queryFunc func(ctx context.Context, c versionController.Controller) (interface{}, error)

// runQuery builds a registry and clock from config, runs the query against them and writes the
// result to out as JSON
func runQuery(out io.Writer, registryConfig config.Registry, query queryFunc) error {
	source := clockwork.NewRealClock()
	registry, err := server.NewRegistry(registryConfig, source)
	if err != nil {
		return err
	}
	clock, err := server.NewClock(registryConfig, source)
	if err != nil {
		return err
	}
	result, err := query(context.Background(), versionController.New(registry, clock))
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func parseQueryAt(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	at, err := common.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// orApiError turns a nil *common.ApiError into a nil error
func orApiError(result interface{}, apiErr *common.ApiError) (interface{}, error) {
	if apiErr != nil {
		return nil, apiErr
	}
	return result, nil
}
