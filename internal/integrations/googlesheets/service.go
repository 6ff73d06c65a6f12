package googlesheets

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultCredentialsFile = "configs/google-credentials.json"

// NewSheetsService builds an authorized Sheets client. Inline credentials
// win over the credentials file, which is meant for local development.
func NewSheetsService(ctx context.Context, credentialsJSON, credentialsFile string, logger *zap.Logger) (*sheets.Service, error) {
	var raw []byte
	if credentialsJSON != "" {
		logger.Debug("using google credentials from environment")
		raw = []byte(credentialsJSON)
	} else {
		if credentialsFile == "" {
			credentialsFile = defaultCredentialsFile
		}
		logger.Debug("using google credentials file", zap.String("path", credentialsFile))

		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google credentials: %w", err)
		}
		raw = b
	}

	credentials, err := google.CredentialsFromJSON(ctx, raw, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create google sheets client: %w", err)
	}

	return service, nil
}

// SheetsWriter writes value ranges through the Sheets API.
type SheetsWriter struct {
	service *sheets.Service
}

func NewSheetsWriter(service *sheets.Service) *SheetsWriter {
	return &SheetsWriter{service: service}
}

func (w *SheetsWriter) Clear(ctx context.Context, spreadsheetID, writeRange string) error {
	_, err := w.service.Spreadsheets.Values.
		Clear(spreadsheetID, writeRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

func (w *SheetsWriter) Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) (int64, error) {
	resp, err := w.service.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, err
	}

	return resp.UpdatedRows, nil
}
