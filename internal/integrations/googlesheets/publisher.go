// Package googlesheets publishes asset exports to a spreadsheet.
package googlesheets

import (
	"context"
	"errors"
	"fmt"

	"assetdirectory/internal/export"
	"assetdirectory/pkg/models"

	"go.uber.org/zap"
)

const DefaultSheetRange = "Assets!A1"

var ErrMissingSpreadsheet = errors.New("spreadsheet id is required")

// ValuesWriter is the part of the Sheets values API the publisher needs.
type ValuesWriter interface {
	Clear(ctx context.Context, spreadsheetID, writeRange string) error
	Update(ctx context.Context, spreadsheetID, writeRange string, rows [][]interface{}) (int64, error)
}

type Publisher struct {
	writer ValuesWriter
	logger *zap.Logger
}

func NewPublisher(writer ValuesWriter, logger *zap.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

// Publish replaces the target range with a header row followed by one row
// per asset, in the same column order as CSV exports.
func (p *Publisher) Publish(ctx context.Context, spreadsheetID, writeRange string, assets []models.Asset) (int64, error) {
	if spreadsheetID == "" {
		return 0, ErrMissingSpreadsheet
	}
	if writeRange == "" {
		writeRange = DefaultSheetRange
	}

	if err := p.writer.Clear(ctx, spreadsheetID, writeRange); err != nil {
		return 0, fmt.Errorf("clear sheet range %s: %w", writeRange, err)
	}

	updated, err := p.writer.Update(ctx, spreadsheetID, writeRange, BuildRows(assets))
	if err != nil {
		p.logger.Error("sheet update failed", zap.String("spreadsheet_id", spreadsheetID), zap.Error(err))
		return 0, fmt.Errorf("update sheet range %s: %w", writeRange, err)
	}

	p.logger.Info("assets published to sheet",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("range", writeRange),
		zap.Int64("rows", updated),
	)
	return updated, nil
}

func BuildRows(assets []models.Asset) [][]interface{} {
	rows := make([][]interface{}, 0, len(assets)+1)
	rows = append(rows, toCells(export.CSVHeader))
	for _, asset := range assets {
		rows = append(rows, toCells(export.Row(asset)))
	}
	return rows
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
