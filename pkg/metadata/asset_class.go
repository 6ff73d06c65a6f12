package metadata

import (
	"fmt"
	"strings"
)

type AssetClass string

const (
	AssetClassONVIF      AssetClass = "ONVIF"
	AssetClassHL7Monitor AssetClass = "HL7MONITOR"
	AssetClassVentilator AssetClass = "VENTILATOR"
	AssetClassNone       AssetClass = "NONE"
)

func (a AssetClass) IsValid() bool {
	switch a {
	case AssetClassONVIF, AssetClassHL7Monitor, AssetClassVentilator, AssetClassNone:
		return true
	default:
		return false
	}
}

func NewAssetClass(value string) (AssetClass, error) {
	class := AssetClass(strings.ToUpper(strings.TrimSpace(value)))
	if !class.IsValid() {
		return class, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s",
			AssetClassONVIF, AssetClassHL7Monitor, AssetClassVentilator, AssetClassNone,
		)
	}

	return class, nil
}

// Label is the display name of the class.
func (a AssetClass) Label() string {
	switch a {
	case AssetClassONVIF:
		return "ONVIF Camera"
	case AssetClassHL7Monitor:
		return "HL7 Vitals Monitor"
	case AssetClassVentilator:
		return "Ventilator"
	default:
		return "None"
	}
}

func (a AssetClass) String() string {
	return string(a)
}
