package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"provider-market.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	businessHandler     *handlers.BusinessHandler
	documentHandler     *handlers.DocumentHandler
	notificationHandler *handlers.NotificationHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Provider-facing routes
		businesses := v1.Group("/businesses")
		{
			businesses.POST("/apply", d.businessHandler.Apply)
			businesses.POST("/:id/documents", d.documentHandler.Upload)
		}

		users := v1.Group("/users")
		{
			users.GET("/:id/notifications", d.notificationHandler.ListLogs)
		}

		// Admin review routes
		admin := v1.Group("/admin")
		{
			admin.GET("/businesses", d.businessHandler.List)
			admin.GET("/businesses/:id/summary", d.businessHandler.GetSummary)
			admin.POST("/businesses/:id/approve", d.businessHandler.Approve)
			admin.POST("/businesses/:id/reject", d.businessHandler.Reject)
			admin.POST("/businesses/:id/suspend", d.businessHandler.Suspend)
			admin.POST("/businesses/:id/reset", d.businessHandler.Reset)

			admin.POST("/documents/:id/verify", d.documentHandler.Verify)
			admin.POST("/documents/:id/reject", d.documentHandler.Reject)
			admin.POST("/documents/:id/under-review", d.documentHandler.MarkUnderReview)

			admin.POST("/notifications/dispatch", d.notificationHandler.Dispatch)
			admin.GET("/notification-templates", d.notificationHandler.ListTemplates)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-User-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
