// Package resolver turns a scanned QR payload into a single asset.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/identifier"
	"assetdirectory/pkg/models"
	"assetdirectory/pkg/notification"

	"go.uber.org/zap"
)

// searchLimit is one above the single expected match so that a code shared
// by several assets is reported instead of silently picking one.
const searchLimit = 2

type Reason string

const (
	ReasonInvalidInput       Reason = "invalid_input"
	ReasonRegistryLookupMiss Reason = "registry_lookup_miss"
	ReasonCatalogMiss        Reason = "catalog_miss"
	ReasonAmbiguous          Reason = "ambiguous"
)

const (
	MessageInvalidAssetID = "Invalid Asset Id"
	MessageAssetNotFound  = "Asset not found"
	MessageAmbiguousAsset = "More than one asset is registered under this QR code"
)

// Message is the notification shown for a failure reason.
func (r Reason) Message() string {
	switch r {
	case ReasonCatalogMiss:
		return MessageAssetNotFound
	case ReasonAmbiguous:
		return MessageAmbiguousAsset
	default:
		return MessageInvalidAssetID
	}
}

// Outcome is the terminal result of one resolution. Reason is empty on
// success. Err keeps the underlying cause of a failure, e.g. a transport
// fault reported to the user as a registry miss.
type Outcome struct {
	FacilityID string
	AssetID    string
	Reason     Reason
	Err        error
}

func (o Outcome) Succeeded() bool {
	return o.Reason == ""
}

// Path is the asset page the outcome navigates to.
func (o Outcome) Path() string {
	return AssetPath(o.FacilityID, o.AssetID)
}

func AssetPath(facilityID, assetID string) string {
	return fmt.Sprintf("/facility/%s/assets/%s", facilityID, assetID)
}

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

type Resolver struct {
	registry  catalog.Registry
	searcher  catalog.Searcher
	navigator Navigator
	notifier  notification.Notifier
	logger    *zap.Logger
}

func New(registry catalog.Registry, searcher catalog.Searcher, navigator Navigator, notifier notification.Notifier, logger *zap.Logger) *Resolver {
	return &Resolver{
		registry:  registry,
		searcher:  searcher,
		navigator: navigator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Resolve runs the pipeline and applies exactly one side effect: a
// navigation on success or a notification on failure.
func (r *Resolver) Resolve(ctx context.Context, raw string) Outcome {
	outcome := r.lookup(ctx, raw)

	if outcome.Succeeded() {
		r.logger.Info("asset resolved",
			zap.String("facility_id", outcome.FacilityID),
			zap.String("asset_id", outcome.AssetID),
		)
		r.navigator.Navigate(outcome.Path())
		return outcome
	}

	r.logger.Info("asset resolution failed",
		zap.String("reason", string(outcome.Reason)),
		zap.Error(outcome.Err),
	)
	r.notifier.Error(outcome.Reason.Message())
	return outcome
}

func (r *Resolver) lookup(ctx context.Context, raw string) Outcome {
	candidate, err := identifier.Extract(raw)
	if err != nil {
		return Outcome{Reason: ReasonInvalidInput, Err: err}
	}

	record, err := r.registry.LookupRegistry(ctx, candidate.String())
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			r.logger.Error("registry lookup fault", zap.String("code", candidate.String()), zap.Error(err))
		}
		return Outcome{Reason: ReasonRegistryLookupMiss, Err: err}
	}
	if record == nil {
		return Outcome{Reason: ReasonRegistryLookupMiss}
	}

	resp, err := r.searcher.Search(ctx, catalog.SearchRequest{
		QRCodeID: record.SearchKey(candidate.String()),
		Limit:    searchLimit,
	})
	if err != nil {
		r.logger.Error("catalog search fault", zap.String("code", candidate.String()), zap.Error(err))
		return Outcome{Reason: ReasonRegistryLookupMiss, Err: err}
	}

	return matchOutcome(resp)
}

func matchOutcome(resp *catalog.SearchResponse) Outcome {
	if resp == nil {
		return Outcome{Reason: ReasonCatalogMiss}
	}

	switch {
	case len(resp.Results) > 1 || resp.Count > 1:
		return Outcome{Reason: ReasonAmbiguous}
	case len(resp.Results) == 0:
		return Outcome{Reason: ReasonCatalogMiss}
	}

	return navigable(resp.Results[0])
}

func navigable(asset models.Asset) Outcome {
	if !asset.HasIdentity() || asset.FacilityID() == "" {
		return Outcome{Reason: ReasonCatalogMiss}
	}

	return Outcome{FacilityID: asset.FacilityID(), AssetID: asset.ID}
}
