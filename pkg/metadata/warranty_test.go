package metadata

import (
	"testing"
	"time"
)

func TestClassifyWarranty(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      string
		expected WarrantyValidity
	}{
		{"empty date", "", WarrantyValid},
		{"unparsable date", "soon", WarrantyValid},
		{"past date", "2024-05-31", WarrantyExpired},
		{"earlier today", "2024-06-01", WarrantyExpired},
		{"tomorrow", "2024-06-02", WarrantyExpiringUrgent},
		{"30 days left", "2024-07-01", WarrantyExpiringUrgent},
		{"31 days left", "2024-07-02", WarrantyExpiringWarning},
		{"90 days left", "2024-08-30", WarrantyExpiringWarning},
		{"91 days left", "2024-08-31", WarrantyValid},
		{"far future", "2026-01-01", WarrantyValid},
		{"rfc3339 timestamp", "2024-06-10T00:00:00Z", WarrantyExpiringUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyWarranty(tt.end, now); got != tt.expected {
				t.Errorf("ClassifyWarranty(%q) = %q, want %q", tt.end, got, tt.expected)
			}
		})
	}
}

func TestWarrantyValidity_Label(t *testing.T) {
	tests := []struct {
		validity WarrantyValidity
		label    string
		flagged  bool
	}{
		{WarrantyExpired, "AMC/Warranty Expired", true},
		{WarrantyExpiringUrgent, "AMC/Warranty Expiring Soon", true},
		{WarrantyExpiringWarning, "AMC/Warranty Expiring Soon", true},
		{WarrantyValid, "", false},
	}

	for _, tt := range tests {
		if got := tt.validity.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
		if got := tt.validity.HasIndicator(); got != tt.flagged {
			t.Errorf("HasIndicator() = %v, want %v", got, tt.flagged)
		}
	}
}
