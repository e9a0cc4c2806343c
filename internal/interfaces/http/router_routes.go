package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trackd/internal/interfaces/http/middleware"
	"trackd/internal/shared/logger"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(allowedOrigins []string, log logger.Interface) {
	r.engine.Use(middleware.Logger(log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")

	r.setupTrackerRoutes(api)
	r.setupTicketRoutes(api)
	r.setupNotificationRoutes(api)
	r.setupWebhookRoutes(api)
}

func (r *Router) setupTrackerRoutes(api *gin.RouterGroup) {
	// Reads resolve the anonymous tier without a token.
	api.GET("/users/:user_id/trackers/:name", r.authMiddleware.OptionalAuth(), r.trackerHandler.Get)

	trackers := api.Group("/trackers")
	trackers.Use(r.authMiddleware.RequireAuth())
	{
		trackers.POST("", r.trackerHandler.Create)
		trackers.GET("", r.trackerHandler.List)
		trackers.PATCH("/:tracker_id", r.trackerHandler.Update)
		trackers.DELETE("/:tracker_id", r.trackerHandler.Delete)

		trackers.PUT("/:tracker_id/access/:user_id", r.trackerHandler.GrantAccess)
		trackers.DELETE("/:tracker_id/access/:user_id", r.trackerHandler.RevokeAccess)

		trackers.POST("/:tracker_id/labels", r.trackerHandler.CreateLabel)
		trackers.DELETE("/:tracker_id/labels/:label_id", r.trackerHandler.DeleteLabel)

		trackers.PUT("/:tracker_id/subscription", r.trackerHandler.Subscribe)
		trackers.DELETE("/:tracker_id/subscription", r.trackerHandler.Unsubscribe)
	}
}

func (r *Router) setupTicketRoutes(api *gin.RouterGroup) {
	tickets := api.Group("/trackers/:tracker_id/tickets")
	{
		tickets.GET("", r.authMiddleware.OptionalAuth(), r.ticketHandler.List)
		tickets.GET("/:scoped_id", r.authMiddleware.OptionalAuth(), r.ticketHandler.Get)
		tickets.GET("/:scoped_id/events", r.authMiddleware.OptionalAuth(), r.ticketHandler.ListEvents)

		tickets.POST("", r.authMiddleware.RequireAuth(), r.ticketHandler.Submit)
		tickets.PATCH("/:scoped_id", r.authMiddleware.RequireAuth(), r.ticketHandler.Update)
		tickets.PUT("/:scoped_id/subscription", r.authMiddleware.RequireAuth(), r.ticketHandler.Subscribe)
		tickets.DELETE("/:scoped_id/subscription", r.authMiddleware.RequireAuth(), r.ticketHandler.Unsubscribe)
	}
}

func (r *Router) setupNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications")
	notifications.Use(r.authMiddleware.RequireAuth())
	{
		notifications.GET("", r.notificationHandler.List)
		notifications.GET("/unread", r.notificationHandler.UnreadCount)
		notifications.POST("/:notification_id/read", r.notificationHandler.MarkRead)
		notifications.POST("/read-all", r.notificationHandler.MarkAllRead)
	}
}

func (r *Router) setupWebhookRoutes(api *gin.RouterGroup) {
	webhooks := api.Group("/webhooks")
	webhooks.Use(r.authMiddleware.RequireAuth())
	{
		webhooks.POST("", r.webhookHandler.Create)
		webhooks.GET("", r.webhookHandler.List)
		webhooks.DELETE("/:subscription_id", r.webhookHandler.Delete)
	}
}
