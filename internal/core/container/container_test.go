package container

import (
	"context"
	"testing"

	"assetdirectory/internal/catalog"
	"assetdirectory/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewAppContainer_HTTPBackend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.DefaultConfig()
	cfg.CatalogURL = "https://care.example.org"
	cfg.JWTSecret = "secret"

	c, err := NewAppContainer(ctx, cfg, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &catalog.Client{}, c.Catalog)
	assert.Nil(t, c.DB)
	assert.NotNil(t, c.AssetHandler)
	assert.NoError(t, c.Close())
}

func TestNewCatalog_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CatalogURL = "relative/path"
	_, _, err := NewCatalog(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.CatalogBackend = "mongo"
	_, _, err = NewCatalog(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown catalog backend")
}
