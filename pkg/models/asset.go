package models

import (
	"time"
)

const validityDateLayout = "2006-01-02"

type Asset struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	SerialNumber             string   `json:"serial_number"`
	QRCodeID                 string   `json:"qr_code_id"`
	AssetClass               string   `json:"asset_class"`
	Status                   string   `json:"status"`
	IsWorking                bool     `json:"is_working"`
	LatestStatus             string   `json:"latest_status"`
	WarrantyAMCEndOfValidity string   `json:"warranty_amc_end_of_validity,omitempty"`
	Location                 Location `json:"location_object"`
}

// FacilityID is the id of the facility owning the asset's location.
func (a *Asset) FacilityID() string {
	return a.Location.Facility.ID
}

// HasIdentity reports whether the record carries an id. Placeholder records
// returned while a list is still empty do not.
func (a *Asset) HasIdentity() bool {
	return a.ID != ""
}

type FlatAssetRecord struct {
	ID                       string     `db:"asset_id"`
	Name                     string     `db:"asset_name"`
	SerialNumber             string     `db:"serial_number"`
	QRCodeID                 string     `db:"qr_code_id"`
	AssetClass               string     `db:"asset_class"`
	Status                   string     `db:"status"`
	IsWorking                bool       `db:"is_working"`
	LatestStatus             string     `db:"latest_status"`
	WarrantyAMCEndOfValidity *time.Time `db:"warranty_amc_end_of_validity"`
	LocationID               string     `db:"location_id"`
	LocationName             string     `db:"location_name"`
	FacilityID               string     `db:"facility_id"`
	FacilityName             string     `db:"facility_name"`
}

func (fa *FlatAssetRecord) TransformToAsset() Asset {
	asset := Asset{
		ID:           fa.ID,
		Name:         fa.Name,
		SerialNumber: fa.SerialNumber,
		QRCodeID:     fa.QRCodeID,
		AssetClass:   fa.AssetClass,
		Status:       fa.Status,
		IsWorking:    fa.IsWorking,
		LatestStatus: fa.LatestStatus,
		Location: Location{
			ID:   fa.LocationID,
			Name: fa.LocationName,
			Facility: Facility{
				ID:   fa.FacilityID,
				Name: fa.FacilityName,
			},
		},
	}
	if fa.WarrantyAMCEndOfValidity != nil {
		asset.WarrantyAMCEndOfValidity = fa.WarrantyAMCEndOfValidity.Format(validityDateLayout)
	}

	return asset
}
