package handlers

import (
	"net/http"
	"time"

	"bookfans"
	"bookfans/internal/logger"
	"bookfans/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	defaultLimit   int
	maxLimit       int
	allowedOrigins map[string]struct{}
	allowAnyOrigin bool
	wsDefault      time.Duration
	wsMax          time.Duration

	registry *prometheus.Registry
	metrics  *httpMetrics
}

type Option func(*Handler)

// WithPagination sets the default and maximum page size for list endpoints.
func WithPagination(defaultLimit, maxLimit int) Option {
	return func(h *Handler) {
		h.defaultLimit = defaultLimit
		h.maxLimit = maxLimit
	}
}

// WithAllowedOrigins restricts CORS to the given origins. "*" allows any.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) {
		h.allowedOrigins = make(map[string]struct{}, len(origins))
		h.allowAnyOrigin = false
		for _, o := range origins {
			if o == "*" {
				h.allowAnyOrigin = true
				continue
			}
			h.allowedOrigins[o] = struct{}{}
		}
	}
}

// WithStreamIntervals bounds the push interval of the stats websocket.
func WithStreamIntervals(def, limit time.Duration) Option {
	return func(h *Handler) {
		h.wsDefault = def
		h.wsMax = limit
	}
}

// WithMetrics registers HTTP metrics in reg and serves them on /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(h *Handler) { h.registry = reg }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:       services,
		log:            log,
		defaultLimit:   100,
		maxLimit:       1000,
		allowAnyOrigin: true,
		wsDefault:      defaultInterval,
		wsMax:          maxInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry != nil {
		h.metrics = newHTTPMetrics(h.registry)
	}
	useJSONFieldNames()
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.cors, h.requestLogger)
	if h.metrics != nil {
		router.Use(h.metrics.observe)
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.welcome)
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Catalog statistics stream (HTTP upgrade) on the same port
	router.GET("/ws/stats", h.wsStats)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/login/", h.login)
		h.registerUserRoutes(api)
		h.registerBookRoutes(api)
		h.registerCategoryRoutes(api)
		api.GET("/activity", h.userIdentity, h.listActivity)
		api.GET("/stats", h.getStats)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.POST("/", h.createUser)
		users.GET("/", h.listUsers)
		users.GET("/me", h.userIdentity, h.currentUser)
		users.GET("/:id", h.getUser)
	}
}

func (h *Handler) registerBookRoutes(api *gin.RouterGroup) {
	books := api.Group("/books")
	{
		books.POST("/", h.createBook)
		books.GET("/", h.listBooks)
		books.GET("/:id", h.getBook)
		books.GET("/:id/reviews", h.listReviews)
		books.POST("/:id/reviews", h.userIdentity, h.createReview)
	}
}

func (h *Handler) registerCategoryRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.POST("/", h.createCategory)
		categories.GET("/", h.listCategories)
		categories.GET("/:id", h.getCategory)
	}
}

// @Summary  Welcome message
// @Tags     meta
// @Produce  json
// @Success  200  {object}  bookfans.MessageResponse
// @Router   / [get]
func (h *Handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, bookfans.MessageResponse{Message: "Welcome to the BookFans API"})
}

// @Summary  Liveness probe
// @Tags     meta
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
