package main

import (
	"os"
	"strings"
	"time"

	"codeberg.org/capworks/portal/api/rest/auth"
	"codeberg.org/capworks/portal/cap/jobs"
	"codeberg.org/capworks/portal/cap/users"
	"codeberg.org/capworks/portal/internal/config"
	"codeberg.org/capworks/portal/internal/logger"
	ws "codeberg.org/capworks/portal/internal/websocket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.ServerConfig) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	srv := &Server{
		config:   cfg,
		userRepo: users.NewSeededRepository(),
		jobStore: jobs.NewStore(),
		limiter:  auth.NewLoginLimiter(cfg.LoginAttempts),
		hub:      ws.NewHub(),
		router:   router,
	}

	RegisterRoutes(router, srv)

	return srv
}

// allows the configured origins and the Authorization header
func CORSMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour

	var origins []string
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}

// logs one line per request through the shared slog logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"user_id", c.GetString("user_id"),
		)
	}
}
