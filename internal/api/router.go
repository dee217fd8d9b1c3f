package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/api/admin"
	"github.com/liliang-cn/agribot/internal/api/app"
	"github.com/liliang-cn/agribot/internal/api/middleware"
	"github.com/liliang-cn/agribot/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	services app.Services,
	adminService *service.AdminService,
	cfg RouterConfig,
	logger *zap.Logger,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.Session())
	r.Use(middleware.Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	SetupStaticRoutes(r)

	appHandler := app.NewHandler(services, logger)
	appHandler.RegisterRoutes(r.Group("/api"))
	r.GET("/ws", middleware.RequireSession(), appHandler.ServeWs)

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)
	appHandler.RegisterAdminRoutes(adminGroup)

	return r
}
