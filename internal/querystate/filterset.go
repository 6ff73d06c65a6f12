package querystate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"assetdirectory/internal/catalog"
	"assetdirectory/pkg/metadata"
)

type Key string

const (
	KeyName           Key = "name"
	KeySerialNumber   Key = "serial_number"
	KeyQRCodeID       Key = "qr_code_id"
	KeyFacility       Key = "facility"
	KeyLocation       Key = "location"
	KeyAssetClass     Key = "asset_class"
	KeyStatus         Key = "status"
	KeyWarrantyBefore Key = "warranty_amc_end_of_validity_before"
	KeyWarrantyAfter  Key = "warranty_amc_end_of_validity_after"
	KeySearch         Key = "search"
	KeyPage           Key = "page"
	KeyLimit          Key = "limit"
)

// FilterKeys lists the non-pagination keys in their canonical order.
var FilterKeys = []Key{
	KeyName,
	KeySerialNumber,
	KeyQRCodeID,
	KeyFacility,
	KeyLocation,
	KeyAssetClass,
	KeyStatus,
	KeyWarrantyBefore,
	KeyWarrantyAfter,
	KeySearch,
}

const (
	DefaultPageSize = 18
	dateLayout      = "2006-01-02"
)

var (
	ErrUnknownKey              = errors.New("unknown filter key")
	ErrLocationWithoutFacility = errors.New("location filter requires a facility")
	ErrInvalidPage             = errors.New("page must be a positive number")
)

func (k Key) IsPagination() bool {
	return k == KeyPage || k == KeyLimit
}

// ParseKey accepts the filter and pagination keys a caller may set.
func ParseKey(name string) (Key, error) {
	key := Key(name)
	if key.IsPagination() || key.isFilter() {
		return key, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, name)
}

func (k Key) isFilter() bool {
	for _, key := range FilterKeys {
		if key == k {
			return true
		}
	}
	return false
}

// FilterSet is the canonical list state. Empty strings mean unconstrained.
type FilterSet struct {
	Name           string
	SerialNumber   string
	QRCodeID       string
	Facility       string
	Location       string
	AssetClass     string
	Status         string
	WarrantyBefore string
	WarrantyAfter  string
	Search         string
	Page           int
	Limit          int
}

func NewFilterSet(pageSize int) FilterSet {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return FilterSet{Page: 1, Limit: pageSize}
}

func (f *FilterSet) field(key Key) *string {
	switch key {
	case KeyName:
		return &f.Name
	case KeySerialNumber:
		return &f.SerialNumber
	case KeyQRCodeID:
		return &f.QRCodeID
	case KeyFacility:
		return &f.Facility
	case KeyLocation:
		return &f.Location
	case KeyAssetClass:
		return &f.AssetClass
	case KeyStatus:
		return &f.Status
	case KeyWarrantyBefore:
		return &f.WarrantyBefore
	case KeyWarrantyAfter:
		return &f.WarrantyAfter
	case KeySearch:
		return &f.Search
	default:
		return nil
	}
}

// Get returns the value of a non-pagination key.
func (f FilterSet) Get(key Key) string {
	if p := f.field(key); p != nil {
		return *p
	}
	return ""
}

// With returns a copy with key set to value. Changing the facility drops the
// location and any filter change moves back to the first page. Setting the
// value a filter already holds is not a change.
func (f FilterSet) With(key Key, value string) (FilterSet, error) {
	p := f.field(key)
	if p == nil {
		return f, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	value, err := normalize(key, value)
	if err != nil {
		return f, err
	}
	if key == KeyLocation && value != "" && f.Facility == "" {
		return f, ErrLocationWithoutFacility
	}
	if value == *p {
		return f, nil
	}

	next := f
	*next.field(key) = value
	if key == KeyFacility && value != f.Facility {
		next.Location = ""
	}
	next.Page = 1

	return next, nil
}

// Without clears keys. Pagination keys are kept; clearing a set filter
// resets the page to 1.
func (f FilterSet) Without(keys ...Key) (FilterSet, error) {
	next := f
	for _, key := range keys {
		if key.IsPagination() {
			continue
		}
		p := next.field(key)
		if p == nil {
			return f, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		if *p == "" && !(key == KeyFacility && next.Location != "") {
			continue
		}
		*p = ""
		if key == KeyFacility {
			next.Location = ""
		}
		next.Page = 1
	}

	return next, nil
}

// Cleared drops every filter, keeping the page size.
func (f FilterSet) Cleared() FilterSet {
	return NewFilterSet(f.Limit)
}

func (f FilterSet) WithPage(page int) (FilterSet, error) {
	if page < 1 {
		return f, ErrInvalidPage
	}
	next := f
	next.Page = page
	return next, nil
}

func (f FilterSet) WithLimit(limit int) (FilterSet, error) {
	if limit < 1 {
		return f, fmt.Errorf("page size must be positive, got %d", limit)
	}
	next := f
	next.Limit = limit
	next.Page = 1
	return next, nil
}

func (f FilterSet) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// Request maps the filters onto a catalog search. The location filter only
// applies within a facility.
func (f FilterSet) Request() catalog.SearchRequest {
	req := catalog.SearchRequest{
		Limit:                          f.Limit,
		Offset:                         f.Offset(),
		Name:                           f.Name,
		SerialNumber:                   f.SerialNumber,
		QRCodeID:                       f.QRCodeID,
		SearchText:                     f.Search,
		Facility:                       f.Facility,
		AssetClass:                     f.AssetClass,
		Status:                         f.Status,
		WarrantyAMCEndOfValidityBefore: f.WarrantyBefore,
		WarrantyAMCEndOfValidityAfter:  f.WarrantyAfter,
	}
	if f.Facility != "" {
		req.Location = f.Location
	}

	return req
}

// IsFiltered reports whether any non-pagination filter is set.
func (f FilterSet) IsFiltered() bool {
	for _, key := range FilterKeys {
		if f.Get(key) != "" {
			return true
		}
	}
	return false
}

func normalize(key Key, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch key {
	case KeyAssetClass:
		class, err := metadata.NewAssetClass(value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		return class.String(), nil
	case KeyStatus:
		if _, err := metadata.NewStatus(value); err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
	case KeyWarrantyBefore, KeyWarrantyAfter:
		if _, err := time.Parse(dateLayout, value); err != nil {
			return "", fmt.Errorf("%s: expected YYYY-MM-DD, got %q", key, value)
		}
	}

	return value, nil
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 0, ErrInvalidPage
	}
	return n, nil
}
