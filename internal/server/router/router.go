package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/babytrack/internal/server/handlers"
)

// Deps groups what the router mounts.
type Deps struct {
	Tracker *handlers.TrackerHandler
	// Auth is nil when token authentication is disabled.
	Auth *handlers.AuthHandler
	// Identity resolves the acting parent for every /api route.
	Identity gin.HandlerFunc
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Deps, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if deps.Auth != nil {
		api.POST("/auth/register", deps.Auth.Register)
		api.POST("/auth/login", deps.Auth.Login)
	}

	api.GET("/vocabulary", handlers.Vocabulary)
	api.GET("/foods", handlers.ListFoods)
	api.GET("/foods/:id", handlers.GetFood)

	h := deps.Tracker
	scoped := api.Group("")
	if deps.Identity != nil {
		scoped.Use(deps.Identity)
	}

	scoped.GET("/babies", h.ListBabies)
	scoped.POST("/babies", h.CreateBaby)
	scoped.GET("/babies/:id", h.GetBaby)
	scoped.PATCH("/babies/:id", h.UpdateBaby)
	scoped.GET("/babies/:id/summary", h.Summary)
	scoped.GET("/babies/:id/recommendations", h.Recommendations)

	scoped.GET("/babies/:id/feeding-logs", h.ListFeedingLogs)
	scoped.POST("/babies/:id/feeding-logs", h.CreateFeedingLog)
	scoped.DELETE("/feeding-logs/:id", h.DeleteFeedingLog)

	scoped.GET("/babies/:id/growth-records", h.ListGrowthRecords)
	scoped.POST("/babies/:id/growth-records", h.CreateGrowthRecord)
	scoped.DELETE("/growth-records/:id", h.DeleteGrowthRecord)

	scoped.GET("/babies/:id/milestones", h.ListMilestones)
	scoped.PATCH("/milestones/:id", h.UpdateMilestone)

	if logger != nil {
		logger.Info("router initialized", zap.Bool("auth_enabled", deps.Auth != nil))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
