package metadata

import (
	"math"
	"time"
)

type WarrantyValidity string

const (
	WarrantyValid           WarrantyValidity = ""
	WarrantyExpired         WarrantyValidity = "expired"
	WarrantyExpiringUrgent  WarrantyValidity = "expiring_soon_urgent"
	WarrantyExpiringWarning WarrantyValidity = "expiring_soon_warning"
)

const (
	urgentWindowDays  = 30
	warningWindowDays = 90
)

var validityLayouts = []string{"2006-01-02", time.RFC3339}

// ClassifyWarranty buckets a warranty/AMC end date relative to now. Empty or
// unparsable dates carry no indicator.
func ClassifyWarranty(endOfValidity string, now time.Time) WarrantyValidity {
	if endOfValidity == "" {
		return WarrantyValid
	}

	end, ok := parseValidity(endOfValidity)
	if !ok {
		return WarrantyValid
	}

	if end.Before(now) {
		return WarrantyExpired
	}

	days := math.Ceil(end.Sub(now).Hours() / 24)
	switch {
	case days <= urgentWindowDays:
		return WarrantyExpiringUrgent
	case days <= warningWindowDays:
		return WarrantyExpiringWarning
	default:
		return WarrantyValid
	}
}

func parseValidity(value string) (time.Time, bool) {
	for _, layout := range validityLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (w WarrantyValidity) Label() string {
	switch w {
	case WarrantyExpired:
		return "AMC/Warranty Expired"
	case WarrantyExpiringUrgent, WarrantyExpiringWarning:
		return "AMC/Warranty Expiring Soon"
	default:
		return ""
	}
}

func (w WarrantyValidity) HasIndicator() bool {
	return w != WarrantyValid
}
