// Package export produces a full snapshot of the filtered asset list.
package export

import (
	"context"
	"fmt"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/querystate"
	"assetdirectory/pkg/models"

	"go.uber.org/zap"
)

const unscopedName = "all"

// Source is the list state an export snapshots. *querystate.Synchronizer
// satisfies it. The view's filters and count come from the same applied
// response, so a failed refetch cannot pair a new filter set with an old total.
type Source interface {
	View() querystate.View
}

type Payload struct {
	FileName    string
	ContentType string
	Data        []byte
	Records     int
	FacilityID  string
}

type Exporter struct {
	source      Source
	searcher    catalog.Searcher
	facilities  catalog.FacilityLookup
	serializers map[Format]Serializer
	logger      *zap.Logger
}

func NewExporter(source Source, searcher catalog.Searcher, facilities catalog.FacilityLookup, serializers map[Format]Serializer, logger *zap.Logger) *Exporter {
	return &Exporter{
		source:      source,
		searcher:    searcher,
		facilities:  facilities,
		serializers: serializers,
		logger:      logger,
	}
}

// ExportAll refetches the current filters as one page sized to the current
// total and serializes the records. Callers check authorization and a
// non-zero total first; with nothing to export it returns a nil payload.
func (e *Exporter) ExportAll(ctx context.Context, format Format) (*Payload, error) {
	serializer, ok := e.serializers[format]
	if !ok {
		return nil, fmt.Errorf("no serializer registered for %q", format)
	}

	view := e.source.View()
	records, err := e.fetch(ctx, view)
	if err != nil || len(records) == 0 {
		return nil, err
	}

	data, err := serializer.Serialize(records)
	if err != nil {
		return nil, fmt.Errorf("serialize %s export: %w", format, err)
	}

	e.logger.Info("assets exported",
		zap.String("format", string(format)),
		zap.Int("records", len(records)),
	)

	return &Payload{
		FileName:    fmt.Sprintf("assets_%s.%s", e.scopeName(ctx, view.Filters.Facility), format),
		ContentType: format.ContentType(),
		Data:        data,
		Records:     len(records),
		FacilityID:  view.Filters.Facility,
	}, nil
}

// Records fetches every record of the last applied view in one request and
// returns the facility that view was scoped to.
func (e *Exporter) Records(ctx context.Context) ([]models.Asset, string, error) {
	view := e.source.View()
	records, err := e.fetch(ctx, view)
	return records, view.Filters.Facility, err
}

func (e *Exporter) fetch(ctx context.Context, view querystate.View) ([]models.Asset, error) {
	if view.Count <= 0 {
		e.logger.Info("export skipped, no assets")
		return nil, nil
	}

	req := view.Filters.Request()
	req.Limit = view.Count
	req.Offset = 0

	resp, err := e.searcher.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch assets for export: %w", err)
	}
	if resp == nil {
		return nil, nil
	}
	if len(resp.Results) < view.Count {
		e.logger.Warn("export returned fewer records than the listed total",
			zap.Int("expected", view.Count),
			zap.Int("records", len(resp.Results)),
		)
	}

	return resp.Results, nil
}

func (e *Exporter) scopeName(ctx context.Context, facilityID string) string {
	if facilityID == "" || e.facilities == nil {
		return unscopedName
	}

	facility, err := e.facilities.Facility(ctx, facilityID)
	if err != nil || facility == nil || facility.Name == "" {
		e.logger.Warn("facility name unavailable for export", zap.String("facility_id", facilityID), zap.Error(err))
		return unscopedName
	}
	return facility.Name
}
