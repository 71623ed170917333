package handlers

import (
	"net/http"
	"time"

	"gridsense/internal/logger"
	"gridsense/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the non-service collaborators of the HTTP layer.
type Options struct {
	// Metrics serves GET /metrics; nil disables the route.
	Metrics http.Handler
	// StreamInterval is the default websocket push period.
	StreamInterval time.Duration
	// MinStreamInterval bounds ?interval from below.
	MinStreamInterval time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.StreamInterval <= 0 {
		opts.StreamInterval = defaultInterval
	}
	if opts.MinStreamInterval <= 0 {
		opts.MinStreamInterval = minInterval
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public read-only endpoints
	router.GET("/health", h.health)
	router.GET("/status", h.getStatus)
	router.GET("/status/download", h.downloadStatus)
	if h.opts.Metrics != nil {
		router.GET("/metrics", h.metrics)
	}

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live status stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSignalRoutes(api)
		h.registerAssessmentRoutes(api)
		h.registerHistoryRoutes(api)
	}
}

func (h *Handler) registerSignalRoutes(api *gin.RouterGroup) {
	signals := api.Group("/signals")
	{
		signals.GET("", h.getSignals)
		// Body example: {"temperature":95,"current_topology":"Rerouted-B/A"}
		signals.PATCH("", h.overrideSignals)
		// Body example: {"critical":true}
		signals.POST("/random", h.randomizeSignals)
	}
}

func (h *Handler) registerAssessmentRoutes(api *gin.RouterGroup) {
	api.POST("/assess", h.assess)
	api.POST("/evaluate", h.evaluate)
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	api.GET("/reports", h.getReports)
	api.GET("/events", h.getEvents)
}
