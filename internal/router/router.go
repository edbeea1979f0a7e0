package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/handler"
	promHandler "github.com/jwalitptl/hospital-api/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/session"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine     *gin.Engine
	h          *handler.Handler
	hospitalH  Handler
	sessions   *session.Store
	config     RouterConfig
	httpMetric *promHandler.Handler
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	MaxBodyBytes     int64
	CORSConfig       middleware.CORSConfig
	SecurityConfig   middleware.SecurityConfig
	SessionConfig    middleware.SessionConfig
	ValidationConfig middleware.ValidationConfig
}

func NewRouter(
	h *handler.Handler,
	hospitalH Handler,
	sessions *session.Store,
	httpMetric *promHandler.Handler,
	config RouterConfig,
) *Router {
	engine := gin.New()

	middleware.RegisterValidation()

	r := &Router{
		engine:     engine,
		h:          h,
		hospitalH:  hospitalH,
		sessions:   sessions,
		config:     config,
		httpMetric: httpMetric,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.httpMetric.Middleware(),
		middleware.SecurityHeaders(config.SecurityConfig),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	// Health and metrics stay outside the session scope
	r.h.RegisterRoutes(api)

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if r.config.MaxBodyBytes > 0 {
		sizeLimit.MaxBodySize = r.config.MaxBodyBytes
	}

	sessionScoped := api.Group("")
	sessionScoped.Use(
		middleware.SizeLimit(sizeLimit),
		middleware.ErrorHandler(r.config.ValidationConfig),
		middleware.Session(r.sessions, r.config.SessionConfig),
	)
	r.hospitalH.RegisterRoutes(sessionScoped)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
