package cmd

import (
	"errors"
	"fmt"
	"os"

	"assetdirectory/internal/config"
	"assetdirectory/internal/export"
	"assetdirectory/internal/integrations/googlesheets"
	"assetdirectory/internal/querystate"
	"assetdirectory/pkg/models"
	"assetdirectory/pkg/roles"
	"assetdirectory/pkg/security"

	"github.com/spf13/cobra"
)

var errExportForbidden = errors.New("export requires an import/export role")

func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export every asset matching the filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := runtime(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			token, _ := cmd.Flags().GetString("token")
			userID, err := authorizeExport(cfg, token)
			if err != nil {
				return err
			}

			formatName, _ := cmd.Flags().GetString("format")
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			filters, err := filtersFromFlags(cmd, cfg.PageSize)
			if err != nil {
				return err
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

			out := cmd.OutOrStdout()
			if sync.View().Count == 0 {
				fmt.Fprintln(out, "No assets to export")
				return nil
			}

			exporter := export.NewExporter(sync, c, c, export.DefaultSerializers(), log)

			if sheet, _ := cmd.Flags().GetString("sheet"); sheet != "" || cfg.SpreadsheetID != "" {
				if sheet == "" {
					sheet = cfg.SpreadsheetID
				}
				records, facilityID, err := exporter.Records(cmd.Context())
				if err != nil {
					return err
				}
				service, err := googlesheets.NewSheetsService(cmd.Context(), cfg.GoogleSheetsCredentialsJSON, cfg.GoogleSheetsCredentialsFile, log)
				if err != nil {
					return err
				}
				rows, err := googlesheets.NewPublisher(googlesheets.NewSheetsWriter(service), log).
					Publish(cmd.Context(), sheet, cfg.SheetRange, records)
				if err != nil {
					return err
				}
				b.auditLog.Log(cmd.Context(), "publish", map[string]interface{}{
					"spreadsheet_id": sheet,
					"rows":           rows,
				}, models.ExportEvent{FacilityID: facilityID, Format: "sheet", Records: len(records), UserID: userID})
				fmt.Fprintf(out, "published %d rows to spreadsheet %s\n", rows, sheet)
				return nil
			}

			payload, err := exporter.ExportAll(cmd.Context(), format)
			if err != nil {
				return err
			}
			if payload == nil {
				fmt.Fprintln(out, "No assets to export")
				return nil
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "-" {
				_, err = out.Write(payload.Data)
				return err
			}
			if output == "" {
				output = payload.FileName
			}
			if err := os.WriteFile(output, payload.Data, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			b.auditLog.Log(cmd.Context(), "export", map[string]interface{}{
				"format":    format,
				"file_name": output,
				"records":   payload.Records,
			}, models.ExportEvent{FacilityID: payload.FacilityID, Format: string(format), Records: payload.Records, UserID: userID})
			fmt.Fprintf(out, "exported %d assets to %s\n", payload.Records, output)
			return nil
		},
	}
	addFilterFlags(exportCmd)
	exportCmd.Flags().String("format", string(export.FormatCSV), "Export format (csv or json)")
	exportCmd.Flags().StringP("output", "o", "", "Output file; defaults to the generated name, - for stdout")
	exportCmd.Flags().String("sheet", "", "Publish to this Google spreadsheet id instead of a file")
	exportCmd.Flags().String("token", os.Getenv("ASSETDIR_TOKEN"), "Bearer token carrying the caller role")

	return exportCmd
}

// authorizeExport checks the caller token against the configured JWT secret
// and returns the caller's user id. Without a secret nobody may export.
func authorizeExport(cfg *config.Config, token string) (string, error) {
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("%w: JWT_SECRET is not configured", errExportForbidden)
	}
	if token == "" {
		return "", fmt.Errorf("%w: no token, pass --token or set ASSETDIR_TOKEN", errExportForbidden)
	}

	claims, err := security.ParseToken([]byte(cfg.JWTSecret), token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errExportForbidden, err)
	}
	if !roles.IsAuthorized(claims.UserRole(), cfg.AllowedExportRoles()) {
		return "", errExportForbidden
	}

	return claims.UserID, nil
}
