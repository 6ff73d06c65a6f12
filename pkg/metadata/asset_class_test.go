package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssetClass(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AssetClass
		wantErr bool
	}{
		{"ventilator", "VENTILATOR", AssetClassVentilator, false},
		{"lowercase with spaces", " hl7monitor ", AssetClassHL7Monitor, false},
		{"none", "NONE", AssetClassNone, false},
		{"unknown", "toaster", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAssetClass(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewStatus(t *testing.T) {
	_, err := NewStatus("ACTIVE")
	assert.NoError(t, err)

	_, err = NewStatus("in_stock")
	assert.Error(t, err)

	assert.True(t, IsDown("Down"))
	assert.False(t, IsDown("Up"))
}
