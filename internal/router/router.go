package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "apkdownloader/docs"
	"apkdownloader/internal/config"
	"apkdownloader/internal/handler"
	"apkdownloader/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
// metricsHandler may be nil, in which case /metrics is not served.
func Setup(
	cfg *config.Config,
	uploadH *handler.UploadHandler,
	filesH *handler.FilesHandler,
	healthH *handler.HealthHandler,
	metricsHandler http.Handler,
) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.MaxMultipartMemory = cfg.Server.MaxMultipartMemoryMB << 20

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Identity and health checks
	r.GET("/", healthH.Index)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Upload routes, reachable with and without the trailing slash
	r.POST("/upload", uploadH.Upload)
	r.POST("/upload/", uploadH.Upload)

	// Listing routes
	r.GET("/files", filesH.List)
	r.GET("/files/", filesH.List)
	r.GET("/files/export", filesH.Export)

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
