package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"assetdirectory/internal/config"
	"assetdirectory/internal/core/logger"
	"assetdirectory/internal/querystate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assetdir",
		Short:         "Asset directory access layer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "assetdir.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newListCmd(),
		newResolveCmd(),
		newScanCmd(),
		newExportCmd(),
	)

	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime loads the configuration and logger every subcommand shares.
func runtime(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("filter", "f", nil, "Filter as key=value, repeatable (e.g. facility=<id>)")
	cmd.Flags().String("query", "", "Shareable query string, e.g. copied from a list link")
}

// filtersFromFlags merges --query and --filter values into a FilterSet.
func filtersFromFlags(cmd *cobra.Command, pageSize int) (querystate.FilterSet, error) {
	raw, _ := cmd.Flags().GetString("query")
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return querystate.FilterSet{}, fmt.Errorf("invalid --query: %w", err)
	}

	pairs, _ := cmd.Flags().GetStringArray("filter")
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return querystate.FilterSet{}, fmt.Errorf("invalid --filter %q, expected key=value", pair)
		}
		parsed, err := querystate.ParseKey(strings.TrimSpace(key))
		if err != nil {
			return querystate.FilterSet{}, fmt.Errorf("invalid --filter %q: %w", pair, err)
		}
		values.Set(string(parsed), strings.TrimSpace(value))
	}

	return querystate.Decode(values, pageSize)
}
