package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cloudkitchenpro/backend/config"
	"github.com/cloudkitchenpro/backend/internal/api"
	"github.com/cloudkitchenpro/backend/internal/middleware"
	"github.com/cloudkitchenpro/backend/internal/service"
)

// Server wires the services, middleware and routes into one HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *logrus.Logger
}

// New builds the full API surface on top of the given database and Redis
// connections. Redis may be nil; analytics routes then run unthrottled.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	matcher := service.SubstringMatcher{}
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	inventoryService := service.NewInventoryService(db)
	availabilityService := service.NewAvailabilityService(db, matcher)
	alertService := service.NewAlertService(db, cfg)
	insightsService := service.NewInsightsService(db, matcher)
	reportService := service.NewReportService(db, matcher, availabilityService)

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     30,
			KeyPrefix: "ratelimit:analytics",
		})
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, availabilityService, authService).RegisterRoutes(v1)
	api.NewInventoryHandler(inventoryService, alertService, insightsService, authService, limiter).RegisterRoutes(v1)
	api.NewReportHandler(reportService, authService, limiter).RegisterRoutes(v1)

	return &Server{
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.http.Addr).Info("starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
