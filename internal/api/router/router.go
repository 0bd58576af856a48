package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/api/handler"
	"github.com/Diwak4r/ERP-System/internal/api/middleware"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/pkg/jwt"
	"github.com/Diwak4r/ERP-System/pkg/redis"
)

// Setup builds the Gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	var (
		blacklist middleware.TokenChecker
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist, limiter = rdb, rdb
	}

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitKB << 10))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": rdb != nil})
	})

	adminOnly := middleware.RoleAuth(production.RoleAdmin)
	loginLimit := middleware.RateLimit(limiter, cfg.Server.LoginLimit, config.Duration(cfg.Server.LoginWindow, time.Minute))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/refresh", loginLimit, h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			users := authorized.Group("/users", adminOnly)
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", h.User.Create)
				users.PUT("/:id", h.User.Update)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}

			sections := authorized.Group("/sections")
			{
				sections.GET("", h.Section.List)
				sections.GET("/available", h.Section.Available)
				sections.GET("/:id", h.Section.Get)
				sections.POST("", adminOnly, h.Section.Create)
				sections.PUT("/:id", adminOnly, h.Section.Update)
				sections.DELETE("/:id", adminOnly, h.Section.Delete)
				sections.PUT("/:id/supervisors", adminOnly, h.Section.SetSupervisors)
			}

			workers := authorized.Group("/workers")
			{
				workers.GET("", h.Worker.List)
				workers.GET("/:id", h.Worker.Get)
				workers.POST("", adminOnly, h.Worker.Create)
				workers.POST("/import", adminOnly, h.Worker.Import)
				workers.PUT("/:id", adminOnly, h.Worker.Update)
				workers.DELETE("/:id", adminOnly, h.Worker.Delete)
			}

			items := authorized.Group("/items")
			{
				items.GET("", h.Item.List)
				items.GET("/:id", h.Item.Get)
				items.POST("", adminOnly, h.Item.Create)
				items.PUT("/:id", adminOnly, h.Item.Update)
				items.DELETE("/:id", adminOnly, h.Item.Delete)
			}

			rules := authorized.Group("/target-rules")
			{
				rules.GET("", h.TargetRule.List)
				rules.GET("/resolve", h.TargetRule.Resolve)
				rules.GET("/calendar.ics", h.TargetRule.Calendar)
				rules.GET("/:id", h.TargetRule.Get)
				rules.POST("", adminOnly, h.TargetRule.Create)
				rules.PUT("/:id", adminOnly, h.TargetRule.Update)
				rules.DELETE("/:id", adminOnly, h.TargetRule.Delete)
			}

			// section-level permission is checked in the service
			entries := authorized.Group("/production/entries")
			{
				entries.POST("", h.Production.Submit)
				entries.GET("", h.Production.List)
				entries.GET("/row", h.Production.NewRow)
				entries.GET("/:id", h.Production.Get)
			}

			reports := authorized.Group("/reports")
			{
				reports.GET("/daily", h.Report.DailySummary)
				reports.GET("/item-aggregate", h.Report.ItemAggregate)
				reports.GET("/worker-history", h.Report.WorkerHistory)
			}

			authorized.GET("/export/daily", h.Export.DailyWorkbook)
		}
	}

	return r
}
