package http

import (
	"net/http"
	"time"

	"task_tracker/internal/http/handlers"
	"task_tracker/internal/http/middleware"
	"task_tracker/internal/service"
	"task_tracker/internal/ws"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// RouterConfig carries everything the router needs
type RouterConfig struct {
	Tasks   *service.TaskService
	Hub     *ws.Hub
	Redis   *redis.Client // nil selects the in-memory rate limiter
	Version string

	RateLimit  int
	RateWindow time.Duration

	CORSAllowedOrigins []string
	WSAllowedOrigin    string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.Metrics())

	var feed interface{ ClientCount() int }
	if cfg.Hub != nil {
		feed = cfg.Hub
	}
	healthHandler := handlers.NewHealthHandler(cfg.Tasks, feed, cfg.Version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Hub != nil {
		r.GET("/ws/tasks/", ws.HandleWS(cfg.Hub, cfg.WSAllowedOrigin))
	}

	h := handlers.NewHandler(cfg.Tasks)

	root := r.Group("/")
	api := r.Group("/api")

	// RateLimit 0 leaves the task routes unlimited
	if cfg.RateLimit > 0 {
		rateWindow := cfg.RateWindow
		if rateWindow <= 0 {
			rateWindow = time.Minute
		}
		// one limiter shared by both mounts so /api cannot double the budget
		rl := middleware.RateLimit(cfg.Redis, cfg.RateLimit, rateWindow)
		root.Use(rl)
		api.Use(rl)
	}

	registerTaskRoutes(root, h)
	// the same API under /api
	registerTaskRoutes(api, h)

	return r
}

func registerTaskRoutes(g *gin.RouterGroup, h *handlers.Handler) {
	g.POST("/register/", h.RegisterTask)
	g.GET("/tasks/", h.ListTasks)
	g.GET("/task/:id/", h.TaskDetail)
	g.PUT("/update/:id/", h.UpdateTask)
	g.DELETE("/delete/:id/", h.DeleteTask)
	g.DELETE("/delete-all/", h.DeleteAllTasks)
}

// NewHandler wraps the router with CORS.
func NewHandler(cfg RouterConfig) http.Handler {
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization", middleware.RequestIDHeader}),
		gorillahandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(NewRouter(cfg))
}
