package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"assetdirectory/internal/config"
	"assetdirectory/internal/querystate"
	"assetdirectory/internal/resolver"
	"assetdirectory/internal/scanner"
	"assetdirectory/pkg/models"
	"assetdirectory/pkg/notification"
	"assetdirectory/pkg/roles"
	"assetdirectory/pkg/security"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFiltersFromFlags(t *testing.T) {
	cmd := &cobra.Command{}
	addFilterFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--query", "?facility=F2&location=L1&page=3",
		"-f", "status=ACTIVE",
		"--filter", "asset_class=ventilator",
	}))

	filters, err := filtersFromFlags(cmd, 18)

	require.NoError(t, err)
	assert.Equal(t, "F2", filters.Facility)
	assert.Equal(t, "L1", filters.Location)
	assert.Equal(t, "ACTIVE", filters.Status)
	assert.Equal(t, "VENTILATOR", filters.AssetClass)
	assert.Equal(t, 3, filters.Page)
}

func TestFiltersFromFlags_Invalid(t *testing.T) {
	cmd := &cobra.Command{}
	addFilterFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-f", "status"}))

	_, err := filtersFromFlags(cmd, 18)
	assert.ErrorContains(t, err, "expected key=value")

	typo := &cobra.Command{}
	addFilterFlags(typo)
	require.NoError(t, typo.ParseFlags([]string{"--filter", "facilty=F2"}))

	_, err = filtersFromFlags(typo, 18)
	assert.ErrorIs(t, err, querystate.ErrUnknownKey)
}

func TestAuthorizeExport(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := authorizeExport(cfg, "")
	assert.ErrorIs(t, err, errExportForbidden)

	cfg.JWTSecret = "secret"
	_, err = authorizeExport(cfg, "")
	assert.ErrorIs(t, err, errExportForbidden)

	nurse, err := security.GenerateJWT([]byte("secret"), "1", roles.Nurse, "n", time.Hour)
	require.NoError(t, err)
	_, err = authorizeExport(cfg, nurse)
	assert.ErrorIs(t, err, errExportForbidden)

	admin, err := security.GenerateJWT([]byte("secret"), "2", roles.StateAdmin, "a", time.Hour)
	require.NoError(t, err)
	userID, err := authorizeExport(cfg, admin)
	assert.NoError(t, err)
	assert.Equal(t, "2", userID)
}

func TestPrintView(t *testing.T) {
	var out bytes.Buffer
	filters := querystate.NewFilterSet(18)
	view := querystate.View{
		Filters: filters,
		Count:   1,
		Results: []models.Asset{{
			ID:                       "A9",
			Name:                     "Ventilator",
			QRCodeID:                 "QR123",
			AssetClass:               "VENTILATOR",
			Status:                   "ACTIVE",
			LatestStatus:             "Down",
			WarrantyAMCEndOfValidity: "2024-01-01",
			Location:                 models.Location{Name: "ICU", Facility: models.Facility{Name: "PHC"}},
		}},
	}

	require.NoError(t, printView(&out, view, querystate.Encode(filters), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	text := out.String()
	assert.Contains(t, text, "Ventilator")
	assert.Contains(t, text, "ACTIVE (down)")
	assert.Contains(t, text, "AMC/Warranty Expired")
	assert.Contains(t, text, "page 1, 1 of 1 assets")
	assert.Contains(t, text, "limit=18")

	out.Reset()
	require.NoError(t, printView(&out, querystate.View{}, nil, time.Now()))
	assert.Equal(t, "No assets found\n", out.String())

	out.Reset()
	require.NoError(t, printView(&out, querystate.View{Filters: querystate.FilterSet{Name: "vent", Page: 1, Limit: 18}}, nil, time.Now()))
	assert.Equal(t, "No assets match the filters\n", out.String())
}

type scriptedResolver struct {
	seen []string
}

func (s *scriptedResolver) Resolve(_ context.Context, raw string) resolver.Outcome {
	s.seen = append(s.seen, raw)
	return resolver.Outcome{FacilityID: "F2", AssetID: "A9"}
}

func TestRunScan(t *testing.T) {
	tests := []struct {
		name     string
		once     bool
		expected []string
	}{
		{name: "continuous", once: false, expected: []string{"first", "second"}},
		{name: "once", once: true, expected: []string{"first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedResolver{}
			controller := scanner.NewController(r, nil, &notification.Recorder{}, zap.NewNop())
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader("first\n\nsecond\n"))
			cmd.SetContext(context.Background())

			require.NoError(t, runScan(cmd, controller, tt.once))

			assert.Equal(t, tt.expected, r.seen)
			assert.Equal(t, scanner.Browsing, controller.Mode())
		})
	}
}
