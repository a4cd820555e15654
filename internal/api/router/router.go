package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"hooplog/backend/config"
	"hooplog/backend/internal/api/handler"
	"hooplog/backend/internal/api/middleware"
	"hooplog/backend/pkg/jwt"
	"hooplog/backend/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// locally stored uploads
	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	authLimit := middleware.RateLimit(rdb, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authLimit, h.Auth.Signup)
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.POST("/refresh", authLimit, h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			authorized.PUT("/user/profile", h.User.UpdateProfile)

			sessions := authorized.Group("/sessions")
			{
				sessions.GET("/prebuilt", h.Session.ListPrebuilt)
				sessions.GET("/mylist", h.Session.ListMine)
				sessions.GET("/mylist/export", h.Export.ExportMySessions)
				sessions.POST("", h.Session.Create)
				sessions.POST("/reset-progress", h.Progress.ResetAll)

				sessions.GET("/:id", h.Session.Get)
				sessions.PUT("/:id", h.Session.Update)
				sessions.DELETE("/:id", h.Session.Delete)

				sessions.POST("/:id/subscribe", h.Progress.Subscribe)
				sessions.DELETE("/:id/unsubscribe", h.Progress.Unsubscribe)
				sessions.PUT("/:id/progress", h.Progress.UpdateProgress)
				sessions.POST("/:id/favorite", h.Progress.ToggleFavorite)
			}

			authorized.GET("/settings", h.Setting.Get)
			authorized.PUT("/settings", h.Setting.Update)

			authorized.GET("/quote/random", h.Quote.Random)
		}
	}

	return r
}
