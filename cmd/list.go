package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"
	"time"

	"assetdirectory/internal/querystate"
	"assetdirectory/pkg/metadata"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of assets matching the filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := runtime(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			filters, err := filtersFromFlags(cmd, cfg.PageSize)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("page") {
				page, _ := cmd.Flags().GetInt("page")
				if filters, err = filters.WithPage(page); err != nil {
					return err
				}
			}

			b, err := openBackend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()
			c := b.catalog

			notifier := newFailureNotifier(log)
			sync := querystate.NewSynchronizer(c, notifier, log, filters)
			sync.Refresh(cmd.Context())
			if err := notifier.Err(); err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				view := sync.View()
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"count":   view.Count,
					"results": view.Results,
					"query":   sync.Params().Encode(),
				})
			}

			return printView(cmd.OutOrStdout(), sync.View(), sync.Params(), time.Now())
		},
	}
	addFilterFlags(listCmd)
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Bool("json", false, "Print the page as JSON")

	return listCmd
}

func printView(out io.Writer, view querystate.View, params url.Values, now time.Time) error {
	if !view.ResultsExist() {
		msg := "No assets found"
		if view.Filters.IsFiltered() {
			msg = "No assets match the filters"
		}
		_, err := fmt.Fprintln(out, msg)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tQR CODE\tCLASS\tSTATUS\tLOCATION\tFACILITY\tWARRANTY")
	for _, a := range view.Results {
		class, _ := metadata.NewAssetClass(a.AssetClass)
		warranty := "-"
		if validity := metadata.ClassifyWarranty(a.WarrantyAMCEndOfValidity, now); validity.HasIndicator() {
			warranty = validity.Label()
		}
		status := a.Status
		if metadata.IsDown(a.LatestStatus) {
			status += " (down)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Name,
			a.QRCodeID,
			class.Label(),
			status,
			a.Location.Name,
			a.Location.Facility.Name,
			warranty,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\npage %d, %d of %d assets\nquery: %s\n",
		view.Filters.Page, len(view.Results), view.Count, params.Encode())
	return err
}
