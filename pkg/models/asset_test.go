package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlatAssetRecord_TransformToAsset(t *testing.T) {
	validity := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		flat     FlatAssetRecord
		expected Asset
	}{
		{
			name: "with warranty date",
			flat: FlatAssetRecord{
				ID:                       "A9",
				Name:                     "Ventilator 1",
				QRCodeID:                 "QR123",
				IsWorking:                true,
				WarrantyAMCEndOfValidity: &validity,
				LocationID:               "L1",
				LocationName:             "ICU",
				FacilityID:               "F2",
				FacilityName:             "District Hospital",
			},
			expected: Asset{
				ID:                       "A9",
				Name:                     "Ventilator 1",
				QRCodeID:                 "QR123",
				IsWorking:                true,
				WarrantyAMCEndOfValidity: "2025-03-09",
				Location: Location{
					ID:       "L1",
					Name:     "ICU",
					Facility: Facility{ID: "F2", Name: "District Hospital"},
				},
			},
		},
		{
			name: "without warranty date",
			flat: FlatAssetRecord{ID: "A1", FacilityID: "F1"},
			expected: Asset{
				ID:       "A1",
				Location: Location{Facility: Facility{ID: "F1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := tt.flat.TransformToAsset()
			assert.Equal(t, tt.expected, actual)
			assert.Equal(t, tt.expected.Location.Facility.ID, actual.FacilityID())
		})
	}
}

func TestRegistryRecord_SearchKey(t *testing.T) {
	assert.Equal(t, "K1", (&RegistryRecord{QRCodeID: "K1"}).SearchKey("QR123"))
	assert.Equal(t, "QR123", (&RegistryRecord{AssetID: "A9"}).SearchKey("QR123"))
}
