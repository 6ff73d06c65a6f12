package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetdirectory/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCatalogServer fakes the catalog API with a gin router.
func setupCatalogServer(t *testing.T, register func(router *gin.Engine)) *Client {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, WithToken("secret"))
	require.NoError(t, err)

	return client
}

func TestClient_Search(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth, gotRequestID string

	client := setupCatalogServer(t, func(router *gin.Engine) {
		router.GET("/api/v1/asset/", func(c *gin.Context) {
			gotQuery = map[string]string{}
			for key := range c.Request.URL.Query() {
				gotQuery[key] = c.Query(key)
			}
			gotAuth = c.GetHeader("Authorization")
			gotRequestID = c.GetHeader(requestIDHeader)

			c.JSON(http.StatusOK, gin.H{
				"count": 42,
				"results": []gin.H{
					{"id": "A9", "name": "Monitor", "location_object": gin.H{"id": "L1", "facility": gin.H{"id": "F2"}}},
				},
			})
		})
	})

	resp, err := client.Search(context.Background(), SearchRequest{
		Limit:      18,
		Offset:     36,
		SearchText: "monitor",
		Facility:   "F2",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "A9", resp.Results[0].ID)
	assert.Equal(t, "F2", resp.Results[0].FacilityID())

	assert.Equal(t, map[string]string{
		"limit":       "18",
		"offset":      "36",
		"search_text": "monitor",
		"facility":    "F2",
	}, gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err)
}

func TestClient_SearchServerError(t *testing.T) {
	client := setupCatalogServer(t, func(router *gin.Engine) {
		router.GET("/api/v1/asset/", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "boom"})
		})
	})

	_, err := client.Search(context.Background(), SearchRequest{Limit: 1})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "boom")
}

func TestClient_LookupRegistry(t *testing.T) {
	client := setupCatalogServer(t, func(router *gin.Engine) {
		router.GET("/api/v1/public/asset_qr/:code/", func(c *gin.Context) {
			switch c.Param("code") {
			case "QR123":
				c.JSON(http.StatusOK, gin.H{"id": "A9", "qr_code_id": "K1", "name": "Monitor"})
			case "EMPTY":
				c.JSON(http.StatusOK, gin.H{})
			default:
				c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			}
		})
	})

	record, err := client.LookupRegistry(context.Background(), "QR123")
	require.NoError(t, err)
	assert.Equal(t, &models.RegistryRecord{AssetID: "A9", QRCodeID: "K1", Name: "Monitor"}, record)

	_, err = client.LookupRegistry(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.LookupRegistry(context.Background(), "EMPTY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Facility(t *testing.T) {
	client := setupCatalogServer(t, func(router *gin.Engine) {
		router.GET("/api/v1/getallfacilities/:id/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "name": "District Hospital"})
		})
	})

	facility, err := client.Facility(context.Background(), "F2")
	require.NoError(t, err)
	assert.Equal(t, "District Hospital", facility.Name)
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("catalog.local/api")
	assert.Error(t, err)
}

func TestSearchRequest_Values(t *testing.T) {
	values := SearchRequest{
		Limit:                          1,
		QRCodeID:                       "K1",
		WarrantyAMCEndOfValidityBefore: "2024-01-01",
	}.Values()

	assert.Equal(t, "1", values.Get("limit"))
	assert.Equal(t, "K1", values.Get("qr_code_id"))
	assert.Equal(t, "2024-01-01", values.Get("warranty_amc_end_of_validity_before"))
	assert.False(t, values.Has("offset"))
	assert.False(t, values.Has("name"))
}
