package cmd

import (
	"fmt"

	"assetdirectory/internal/resolver"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <scanned-text>",
		Short: "Resolve scanned QR text to its asset page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := runtime(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			b, err := openBackend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()
			c := b.catalog

			notifier := newFailureNotifier(log)
			navigator := resolver.NavigatorFunc(func(path string) {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			})

			resolver.New(c, c, navigator, notifier, log).Resolve(cmd.Context(), args[0])
			return notifier.Err()
		},
	}
}
