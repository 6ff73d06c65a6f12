// Package catalog is the boundary to the authoritative asset store.
package catalog

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"assetdirectory/pkg/models"
)

var ErrNotFound = errors.New("catalog: not found")

// SearchRequest mirrors the catalog list endpoint. Empty fields are
// unconstrained.
type SearchRequest struct {
	Limit                          int
	Offset                         int
	Name                           string
	SerialNumber                   string
	QRCodeID                       string
	SearchText                     string
	Facility                       string
	AssetClass                     string
	Location                       string
	Status                         string
	WarrantyAMCEndOfValidityBefore string
	WarrantyAMCEndOfValidityAfter  string
}

// Values encodes the populated fields as query parameters.
func (r SearchRequest) Values() url.Values {
	values := url.Values{}
	if r.Limit > 0 {
		values.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Offset > 0 {
		values.Set("offset", strconv.Itoa(r.Offset))
	}

	for key, value := range map[string]string{
		"name":                                r.Name,
		"serial_number":                       r.SerialNumber,
		"qr_code_id":                          r.QRCodeID,
		"search_text":                         r.SearchText,
		"facility":                            r.Facility,
		"asset_class":                         r.AssetClass,
		"location":                            r.Location,
		"status":                              r.Status,
		"warranty_amc_end_of_validity_before": r.WarrantyAMCEndOfValidityBefore,
		"warranty_amc_end_of_validity_after":  r.WarrantyAMCEndOfValidityAfter,
	} {
		if value != "" {
			values.Set(key, value)
		}
	}

	return values
}

type SearchResponse struct {
	Results []models.Asset `json:"results"`
	Count   int            `json:"count"`
}

type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// Registry resolves printed QR codes. A code with no entry yields ErrNotFound.
type Registry interface {
	LookupRegistry(ctx context.Context, code string) (*models.RegistryRecord, error)
}

type FacilityLookup interface {
	Facility(ctx context.Context, id string) (*models.Facility, error)
}

type Catalog interface {
	Searcher
	Registry
	FacilityLookup
}
