package routes

import (
	"os"

	"assetdirectory/internal/core/container"
	"assetdirectory/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const openapiFilePath = "./docs/index.html"

// NewRouter builds the engine with the shared middleware and every route.
func NewRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(c.Logger),
		middleware.RequestLogger(c.Logger.Named("http")),
		middleware.TimeoutMiddleware(c.Config.RequestTimeout),
	)

	RegisterPublicRoutes(router, c)
	RegisterUtilityRoutes(router, c)

	return router
}

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.AssetHandler.RegisterRoutes(router)
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/health", c.Health.Handler())

	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(ctx *gin.Context) {
			ctx.File(openapiFilePath)
		})
		c.Logger.Info("Route docs/index.html registered successfully")
	} else {
		c.Logger.Debug("openapi docs not found, route not registered", zap.String("path", openapiFilePath))
	}
}
