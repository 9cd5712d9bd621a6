package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/propertyhub/marketplace-api/internal/api/handler"
	"github.com/propertyhub/marketplace-api/internal/api/middleware"
	"github.com/propertyhub/marketplace-api/internal/core/domain"
	"github.com/propertyhub/marketplace-api/internal/core/service"
	mongodb "github.com/propertyhub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/propertyhub/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	propertyRepo := mongodb.NewPropertyRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	statsCache := redisdb.NewStatsCache(rdb, log)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	propertyService := service.NewPropertyService(propertyRepo, userRepo, log)
	adminService := service.NewAdminService(propertyRepo, userRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	adminHandler := handler.NewAdminHandler(adminService)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public listing routes ---
	properties := e.Group("/api/properties")
	properties.GET("", propertyHandler.List)
	properties.GET("/user/my-properties", propertyHandler.MyProperties, authRequired)
	properties.GET("/:id", propertyHandler.Get)

	// --- Authenticated listing routes ---
	properties.POST("", propertyHandler.Create, authRequired)
	properties.PUT("/:id", propertyHandler.Update, authRequired)
	properties.DELETE("/:id", propertyHandler.Delete, authRequired)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, adminOnly)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/properties", adminHandler.ListProperties)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/properties/:id/status", adminHandler.SetStatus)
	admin.PUT("/properties/:id/featured", adminHandler.ToggleFeatured)
	admin.DELETE("/properties/:id", adminHandler.DeleteProperty)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
