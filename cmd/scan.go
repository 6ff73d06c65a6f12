package cmd

import (
	"bufio"
	"fmt"

	"assetdirectory/internal/resolver"
	"assetdirectory/internal/scanner"
	"assetdirectory/pkg/notification"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Read scanned QR text line by line from stdin and resolve each",
		Long: `Each stdin line is treated as one capture from a QR scanner. With --once
the command stops after the first resolution.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			out := cmd.OutOrStdout()
			notifier := notification.NotifierFunc(func(msg string) {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg)
			})
			navigator := resolver.NavigatorFunc(func(path string) {
				fmt.Fprintln(out, path)
			})

			controller := scanner.NewController(resolver.New(c, c, navigator, notifier, log), nil, notifier, log)
			once, _ := cmd.Flags().GetBool("once")

			return runScan(cmd, controller, once)
		},
	}
	scanCmd.Flags().Bool("once", false, "Stop after the first resolved capture")

	return scanCmd
}

func runScan(cmd *cobra.Command, controller *scanner.Controller, once bool) error {
	defer controller.Deactivate()

	lines := bufio.NewScanner(cmd.InOrStdin())
	controller.Activate()
	for lines.Scan() {
		if _, handled := controller.OnCapture(cmd.Context(), lines.Text()); !handled {
			continue
		}
		if once {
			return nil
		}
		controller.Activate()
	}

	if err := lines.Err(); err != nil {
		controller.OnCaptureError(err)
		return err
	}
	return nil
}
