package assets

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/export"
	"assetdirectory/internal/querystate"
	"assetdirectory/internal/rate_limiter"
	"assetdirectory/internal/resolver"
	"assetdirectory/pkg/auditlog"
	"assetdirectory/pkg/metadata"
	"assetdirectory/pkg/models"
	"assetdirectory/pkg/notification"
	"assetdirectory/pkg/roles"
	"assetdirectory/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HandlerConfig struct {
	PageSize    int
	ExportRoles []roles.Role
	JWTSecret   []byte
	Limiter     *rate_limiter.RateLimiter
	Audit       *auditlog.Auditlog
}

type AssetHandler struct {
	catalog catalog.Catalog
	config  HandlerConfig
	logger  *zap.Logger
	now     func() time.Time
}

func NewAssetHandler(c catalog.Catalog, config HandlerConfig, logger *zap.Logger) *AssetHandler {
	if config.PageSize < 1 {
		config.PageSize = querystate.DefaultPageSize
	}

	return &AssetHandler{
		catalog: c,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/assets", h.ListAssets)

	resolve := []gin.HandlerFunc{h.ResolveAsset}
	if h.config.Limiter != nil {
		resolve = append([]gin.HandlerFunc{rate_limiter.Middleware(h.config.Limiter)}, resolve...)
	}
	router.GET("/assets/resolve", resolve...)

	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware(h.config.JWTSecret))
	{
		protectedRoutes.GET("/assets/export", security.Authorize(h.config.ExportRoles...), h.ExportAssets)
	}
}

type assetResponse struct {
	models.Asset
	WarrantyStatus metadata.WarrantyValidity `json:"warranty_status,omitempty"`
}

// ListAssets serves one page of the catalog for the filters in the query
// string and echoes them back in their shareable form.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	sync, ok := h.synchronize(c)
	if !ok {
		return
	}

	view := sync.View()
	now := h.now()
	results := make([]assetResponse, 0, len(view.Results))
	for _, asset := range view.Results {
		results = append(results, assetResponse{
			Asset:          asset,
			WarrantyStatus: metadata.ClassifyWarranty(asset.WarrantyAMCEndOfValidity, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         view.Count,
		"results":       results,
		"results_exist": view.ResultsExist(),
		"filtered":      view.Filters.IsFiltered(),
		"page":          view.Filters.Page,
		"limit":         view.Filters.Limit,
		"query":         sync.Params().Encode(),
	})
}

// ResolveAsset turns scanned text into the asset page it identifies.
func (h *AssetHandler) ResolveAsset(c *gin.Context) {
	code := c.Query("code")

	var path string
	recorder := &notification.Recorder{}
	navigator := resolver.NavigatorFunc(func(p string) { path = p })

	outcome := resolver.New(h.catalog, h.catalog, navigator, recorder, h.logger).Resolve(c.Request.Context(), code)
	if !outcome.Succeeded() {
		c.JSON(resolveStatus(outcome), gin.H{
			"error":  recorder.Last(),
			"reason": outcome.Reason,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"facility_id": outcome.FacilityID,
		"asset_id":    outcome.AssetID,
		"path":        path,
	})
}

// ExportAssets downloads every asset matching the filters in the query
// string. An empty result answers 204.
func (h *AssetHandler) ExportAssets(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export format", "details": err.Error()})
		return
	}

	sync, ok := h.synchronize(c)
	if !ok {
		return
	}
	if sync.View().Count == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	exporter := export.NewExporter(sync, h.catalog, h.catalog, export.DefaultSerializers(), h.logger)
	payload, err := exporter.ExportAll(c.Request.Context(), format)
	if err != nil {
		h.logger.Error("asset export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to export assets"})
		return
	}
	if payload == nil {
		c.Status(http.StatusNoContent)
		return
	}

	if h.config.Audit != nil {
		h.config.Audit.Log(c.Request.Context(), "export", gin.H{
			"format":    format,
			"file_name": payload.FileName,
			"records":   payload.Records,
		}, models.ExportEvent{
			FacilityID: payload.FacilityID,
			Format:     string(format),
			Records:    payload.Records,
			UserID:     security.UserIDFromContext(c),
		})
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.FileName))
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}

// synchronize loads the page described by the request query. It writes the
// error response itself and reports false when there is nothing to serve.
func (h *AssetHandler) synchronize(c *gin.Context) (*querystate.Synchronizer, bool) {
	filters, err := querystate.Decode(c.Request.URL.Query(), h.config.PageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter", "details": err.Error()})
		return nil, false
	}

	recorder := &notification.Recorder{}
	sync := querystate.NewSynchronizer(h.catalog, recorder, h.logger, filters)
	sync.Refresh(c.Request.Context())

	if msg := recorder.Last(); msg != "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return nil, false
	}

	return sync, true
}

func resolveStatus(outcome resolver.Outcome) int {
	switch outcome.Reason {
	case resolver.ReasonInvalidInput:
		return http.StatusBadRequest
	case resolver.ReasonAmbiguous:
		return http.StatusConflict
	case resolver.ReasonRegistryLookupMiss:
		if outcome.Err != nil && !errors.Is(outcome.Err, catalog.ErrNotFound) {
			return http.StatusBadGateway
		}
	}
	return http.StatusNotFound
}
