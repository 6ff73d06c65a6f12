package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	auditLogRepo "assetdirectory/internal/auditlog"
	"assetdirectory/internal/catalog"
	"assetdirectory/internal/config"
	"assetdirectory/internal/database"
	"assetdirectory/internal/inventory/assets"
	"assetdirectory/internal/middleware"
	"assetdirectory/internal/rate_limiter"
	"assetdirectory/internal/repository"
	"assetdirectory/pkg/auditlog"

	"go.uber.org/zap"
)

const Version = "1.0.0"

type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *sql.DB
	Catalog      catalog.Catalog
	AssetHandler *assets.AssetHandler
	Health       *middleware.HealthChecker
	AuditLog     *auditlog.Auditlog
}

// NewCatalog connects the configured catalog backend. db is nil for the
// http backend.
func NewCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.Catalog, *sql.DB, error) {
	switch cfg.CatalogBackend {
	case config.BackendHTTP:
		client, err := catalog.NewClient(cfg.CatalogURL,
			catalog.WithToken(cfg.CatalogToken),
			catalog.WithTimeout(cfg.CatalogTimeout),
			catalog.WithLogger(logger.Named("catalog")),
		)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case config.BackendPostgres:
		db, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to the database successfully")
		return assets.NewRepository(repository.NewRepository(db)), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
}

// NewAppContainer wires the HTTP surface. The rate limiter lives as long as
// ctx.
func NewAppContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c, db, err := NewCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var pinger middleware.Pinger
	if db != nil {
		pinger = db
	}

	auditLog := NewAuditLog(db, logger)
	assetHandler := assets.NewAssetHandler(c, assets.HandlerConfig{
		PageSize:    cfg.PageSize,
		ExportRoles: cfg.AllowedExportRoles(),
		JWTSecret:   []byte(cfg.JWTSecret),
		Limiter:     rate_limiter.NewRateLimiter(ctx, cfg.ResolveLimit, windowOrDefault(cfg.ResolveWindow)),
		Audit:       auditLog,
	}, logger.Named("assets"))

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Catalog:      c,
		AssetHandler: assetHandler,
		Health:       middleware.NewHealthChecker(cfg.CatalogBackend, Version, pinger),
		AuditLog:     auditLog,
	}, nil
}

// NewAuditLog persists audit entries when a database is available and only
// logs them otherwise.
func NewAuditLog(db *sql.DB, logger *zap.Logger) *auditlog.Auditlog {
	var store auditlog.Store
	if db != nil {
		store = auditLogRepo.NewRepository(repository.NewRepository(db))
	}
	return auditlog.NewAuditLog(store, logger.Named("audit"))
}

func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

func windowOrDefault(window time.Duration) time.Duration {
	if window <= 0 {
		return time.Minute
	}
	return window
}
